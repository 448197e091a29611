package turno

import (
	"context"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/dto"
)

// ListByClient alimenta la vista "mis turnos" del cliente: colección
// completa, el filtrado/paginado lo deriva el handler.
type ListByClient struct {
	repo domain.Repository
}

func NewListByClient(repo domain.Repository) *ListByClient {
	return &ListByClient{repo: repo}
}

func (uc *ListByClient) Execute(
	ctx context.Context,
	salonID uint,
	clientID uint,
) ([]dto.TurnoListDTO, error) {

	turnos, err := uc.repo.ListTurnosByClient(ctx, salonID, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TurnoListDTO, 0, len(turnos))
	for _, t := range turnos {
		out = append(out, dto.FromTurno(t))
	}

	return out, nil
}
