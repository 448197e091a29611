package turno

import (
	"context"
	"time"

	"github.com/estudionova/salon-agenda/internal/audit"
	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
	"github.com/estudionova/salon-agenda/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateTurnoInput struct {
	SalonID uint
	// UserID es nil cuando reserva el propio cliente (booking público)
	UserID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProfessionalID uint
	ServiceID      uint

	Date        string
	Time        string
	ClientNotes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AgendaInvalidator
}

func NewCreateTurno(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AgendaInvalidator,
) *CreateTurno {
	return &CreateTurno{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateTurno) Execute(
	ctx context.Context,
	in CreateTurnoInput,
) (*models.Turno, error) {

	// 1. Salón (timezone y reglas de reserva)
	shop, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// 2. Fecha y hora en el timezone del salón
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 3. Antelación mínima
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// 4. Servicio (duración + precio snapshot)
	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// 5. Profesional disponible
	pro, err := uc.repo.GetProfessional(ctx, in.SalonID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	if !pro.Available {
		return nil, httperr.ErrBusiness("professional_unavailable")
	}

	// 6. Horario de trabajo + pausa
	wh, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID, int(start.Weekday()))
	if err != nil || !withinWorkingHours(wh, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// 7. Cliente, identificado por teléfono normalizado
	phone := validators.NormalizePhone(in.ClientPhone)
	if !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		phone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// 8. Conflicto + creación, serializados por la transacción
	var created *models.Turno

	err = uc.repo.InTransaction(ctx, func(repo domain.Repository) error {

		if err := repo.AssertNoTimeConflict(ctx, in.ProfessionalID, start, end); err != nil {
			return err
		}

		t := &models.Turno{
			SalonID:        in.SalonID,
			ClientID:       client.ID,
			ProfessionalID: in.ProfessionalID,
			ServiceID:      service.ID,
			ScheduledAt:    start,
			EndTime:        end,
			Status:         string(domain.InitialStatus()),
			ClientNotes:    in.ClientNotes,
			FinalPrice:     service.Price,
		}

		if err := repo.CreateTurno(ctx, t); err != nil {
			return err
		}

		created = t
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "turno_creado",
		Entity:   "turno",
		EntityID: &created.ID,
	})

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.SalonID)
	}

	return created, nil
}

// withinWorkingHours valida horario de atención y pausa del profesional
func withinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	loc := start.Location()
	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := parseHM(wh.BreakStart)
		breakEnd := parseHM(wh.BreakEnd)
		if start.Before(breakEnd) && end.After(breakStart) {
			return false
		}
	}

	return true
}
