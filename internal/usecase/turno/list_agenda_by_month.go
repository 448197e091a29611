package turno

import (
	"context"
	"time"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/dto"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

type ListAgendaByMonth struct {
	repo domain.Repository
}

func NewListAgendaByMonth(
	repo domain.Repository,
) *ListAgendaByMonth {
	return &ListAgendaByMonth{
		repo: repo,
	}
}

func (uc *ListAgendaByMonth) Execute(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	year int,
	month int,
) ([]dto.TurnoListDTO, error) {

	shop, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	turnos, err := uc.repo.ListTurnosForPeriod(ctx, salonID, professionalID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TurnoListDTO, 0, len(turnos))
	for _, t := range turnos {
		out = append(out, dto.FromTurno(t))
	}

	return out, nil
}
