package turno

import (
	"errors"
	"testing"
	"time"

	"github.com/estudionova/salon-agenda/internal/models"
)

func allowed(from, to Status) bool {
	for _, t := range AllowedTargets(from) {
		if t == to {
			return true
		}
	}
	return false
}

func TestTransitionTable(t *testing.T) {
	want := map[Status][]Status{
		StatusPendiente:  {StatusConfirmado, StatusCancelado},
		StatusConfirmado: {StatusEnProceso, StatusCancelado, StatusNoAsistio},
		StatusEnProceso:  {StatusCompletado, StatusCancelado},
		StatusCompletado: {},
		StatusCancelado:  {},
		StatusNoAsistio:  {},
	}

	for from, targets := range want {
		got := AllowedTargets(from)
		if len(got) != len(targets) {
			t.Fatalf("AllowedTargets(%s) = %v, want %v", from, got, targets)
		}
		for i, target := range targets {
			if got[i] != target {
				t.Fatalf("AllowedTargets(%s) = %v, want %v", from, got, targets)
			}
		}
	}
}

// Todo par (from, to) fuera de la tabla tiene que fallar con
// InvalidTransitionError, incluyendo self-transitions.
func TestCanTransitionExhaustive(t *testing.T) {
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			err := CanTransition(from, to)

			if allowed(from, to) {
				if err != nil {
					t.Errorf("CanTransition(%s, %s) = %v, want nil", from, to, err)
				}
				continue
			}

			var ite *InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Errorf("CanTransition(%s, %s) = %v, want InvalidTransitionError", from, to, err)
				continue
			}
			if ite.From != from || ite.To != to {
				t.Errorf("error identifies %s -> %s, want %s -> %s", ite.From, ite.To, from, to)
			}
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	terminals := []Status{StatusCompletado, StatusCancelado, StatusNoAsistio}

	for _, from := range terminals {
		if !IsTerminal(from) {
			t.Fatalf("expected %s to be terminal", from)
		}
		if len(AllowedTargets(from)) != 0 {
			t.Fatalf("expected no targets from %s", from)
		}
		for _, to := range AllStatuses() {
			if CanTransition(from, to) == nil {
				t.Errorf("CanTransition(%s, %s) succeeded, want error", from, to)
			}
		}
	}
}

func TestTransitionMutatesOnlyWhenValid(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tr := &models.Turno{Status: string(StatusPendiente), StaffNotes: "previa"}
	if err := Transition(tr, StatusConfirmado, "llamé al cliente", now); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if tr.Status != string(StatusConfirmado) {
		t.Fatalf("status = %s, want confirmado", tr.Status)
	}
	if tr.StaffNotes != "llamé al cliente" {
		t.Fatalf("staff notes = %q", tr.StaffNotes)
	}
	if tr.ConfirmedAt == nil || !tr.ConfirmedAt.Equal(now) {
		t.Fatalf("confirmed_at not stamped")
	}

	// transición inválida: nada se toca
	bad := &models.Turno{Status: string(StatusPendiente), StaffNotes: "previa"}
	err := Transition(bad, StatusCompletado, "nota que no debe quedar", now)
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if bad.Status != string(StatusPendiente) || bad.StaffNotes != "previa" || bad.CompletedAt != nil {
		t.Fatalf("invalid transition partially applied: %+v", bad)
	}
}

func TestTransitionKeepsNotesWhenEmpty(t *testing.T) {
	now := time.Now()
	tr := &models.Turno{Status: string(StatusConfirmado), StaffNotes: "cliente avisado"}
	if err := Start(tr, now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if tr.StaffNotes != "cliente avisado" {
		t.Fatalf("quick action overwrote notes: %q", tr.StaffNotes)
	}
	if tr.StartedAt == nil {
		t.Fatalf("started_at not stamped")
	}
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusPendiente, StatusConfirmado, StatusEnProceso} {
		if err := CanCancel(from); err != nil {
			t.Errorf("CanCancel(%s) = %v, want nil", from, err)
		}
	}
	for _, from := range []Status{StatusCompletado, StatusCancelado, StatusNoAsistio} {
		if err := CanCancel(from); err == nil {
			t.Errorf("CanCancel(%s) succeeded, want error", from)
		}
	}
}
