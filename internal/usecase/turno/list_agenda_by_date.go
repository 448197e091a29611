package turno

import (
	"context"
	"time"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/dto"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

// AgendaCache es el contrato de lectura del cache de agenda del día
type AgendaCache interface {
	AgendaInvalidator
	Get(ctx context.Context, salonID, professionalID uint, day string) ([]models.Turno, bool)
	Set(ctx context.Context, salonID, professionalID uint, day string, turnos []models.Turno)
}

type ListAgendaByDate struct {
	repo  domain.Repository
	cache AgendaCache
}

func NewListAgendaByDate(
	repo domain.Repository,
	cache AgendaCache,
) *ListAgendaByDate {
	return &ListAgendaByDate{
		repo:  repo,
		cache: cache,
	}
}

// Execute trae la colección COMPLETA del día (sin paginar): el handler
// deriva filtros y página en memoria con listview.
func (uc *ListAgendaByDate) Execute(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	date time.Time,
) ([]dto.TurnoListDTO, error) {

	shop, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	day := start.Format("2006-01-02")

	turnos, hit := uc.cache.Get(ctx, salonID, professionalID, day)
	if !hit {
		turnos, err = uc.repo.ListTurnosForPeriod(ctx, salonID, professionalID, start, end)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, salonID, professionalID, day, turnos)
	}

	out := make([]dto.TurnoListDTO, 0, len(turnos))
	for _, t := range turnos {
		out = append(out, dto.FromTurno(t))
	}

	return out, nil
}
