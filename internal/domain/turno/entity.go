package turno

import (
	"time"

	"github.com/estudionova/salon-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica un cambio de status validado contra la tabla.
// Falla de forma atómica: si la transición no es válida el turno
// no se toca (ni status, ni notas, ni timestamps).
func Transition(t *models.Turno, target Status, staffNote string, now time.Time) error {
	if err := CanTransition(Status(t.Status), target); err != nil {
		return err
	}

	t.Status = string(target)
	if staffNote != "" {
		t.StaffNotes = staffNote
	}

	switch target {
	case StatusConfirmado:
		t.ConfirmedAt = &now
	case StatusEnProceso:
		t.StartedAt = &now
	case StatusCompletado:
		t.CompletedAt = &now
	case StatusCancelado:
		t.CancelledAt = &now
	case StatusNoAsistio:
		t.NoShowAt = &now
	}

	return nil
}

func Confirm(t *models.Turno, now time.Time) error {
	return Transition(t, StatusConfirmado, "", now)
}

func Start(t *models.Turno, now time.Time) error {
	return Transition(t, StatusEnProceso, "", now)
}

func Complete(t *models.Turno, now time.Time) error {
	return Transition(t, StatusCompletado, "", now)
}

func Cancel(t *models.Turno, now time.Time) error {
	return Transition(t, StatusCancelado, "", now)
}

func MarkNoShow(t *models.Turno, now time.Time) error {
	return Transition(t, StatusNoAsistio, "", now)
}
