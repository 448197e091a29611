package turno

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/audit"
	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/timezone"
)

// AgendaInvalidator desacopla el cache de agenda del use case
type AgendaInvalidator interface {
	Invalidate(ctx context.Context, salonID uint)
}

// ======================================================
// INPUT
// ======================================================

type ApplyTransitionInput struct {
	SalonID uint
	UserID  uint
	TurnoID uint

	Target    domain.Status
	StaffNote string

	// ClientID restringe la operación al dueño del turno cuando la
	// transición la pide el propio cliente (cancelación)
	ClientID *uint
}

// ======================================================
// USE CASE
// ======================================================

// ApplyTransition es el único camino de cambio de status: quick-actions,
// selector manual y cancelación del cliente pasan todos por acá.
type ApplyTransition struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AgendaInvalidator
}

func NewApplyTransition(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AgendaInvalidator,
) *ApplyTransition {
	return &ApplyTransition{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ApplyTransition) Execute(
	ctx context.Context,
	in ApplyTransitionInput,
) (*models.Turno, error) {

	if !domain.IsValidStatus(in.Target) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	shop, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	var (
		updated *models.Turno
		from    domain.Status
	)

	// lock de fila dentro de la transacción: dos transiciones
	// simultáneas sobre el mismo turno se serializan y la segunda
	// valida contra el status ya actualizado
	err = uc.repo.InTransaction(ctx, func(repo domain.Repository) error {

		t, err := repo.GetTurnoForUpdate(ctx, in.TurnoID, in.SalonID)
		if err != nil {
			// solo la ausencia del registro es 404; una falla de la
			// base sube como error de update, no como turno inexistente
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("turno_not_found")
			}
			return err
		}

		if in.ClientID != nil && t.ClientID != *in.ClientID {
			return httperr.ErrBusiness("turno_not_found")
		}

		from = domain.Status(t.Status)
		now := timezone.NowIn(shop.Timezone)

		if err := domain.Transition(t, in.Target, in.StaffNote, now); err != nil {
			return err
		}

		if err := repo.UpdateTurno(ctx, t); err != nil {
			return err
		}

		updated = t
		return nil
	})

	if err != nil {
		return nil, err
	}

	// UserID 0 es una acción del propio cliente, sin usuario de staff
	var actor *uint
	if in.UserID != 0 {
		actor = &in.UserID
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   actor,
		Action:   "turno_" + string(in.Target),
		Entity:   "turno",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"from": string(from),
			"to":   string(in.Target),
		},
	})

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.SalonID)
	}

	return updated, nil
}
