package turno

import "fmt"

// ===============================
// Turno Status
// ===============================

type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmado Status = "confirmado"
	StatusEnProceso  Status = "en_proceso"
	StatusCompletado Status = "completado"
	StatusCancelado  Status = "cancelado"
	StatusNoAsistio  Status = "no_asistio"
)

// InitialStatus es el status de todo turno recién creado
func InitialStatus() Status {
	return StatusPendiente
}

// ===============================
// Transition table (data, not ifs)
// ===============================

// transitions es la única fuente de verdad del ciclo de vida.
// Los status terminales no aparecen como clave.
var transitions = map[Status][]Status{
	StatusPendiente:  {StatusConfirmado, StatusCancelado},
	StatusConfirmado: {StatusEnProceso, StatusCancelado, StatusNoAsistio},
	StatusEnProceso:  {StatusCompletado, StatusCancelado},
}

// AllStatuses en el orden del ciclo de vida
func AllStatuses() []Status {
	return []Status{
		StatusPendiente,
		StatusConfirmado,
		StatusEnProceso,
		StatusCompletado,
		StatusCancelado,
		StatusNoAsistio,
	}
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPendiente, StatusConfirmado, StatusEnProceso,
		StatusCompletado, StatusCancelado, StatusNoAsistio:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return IsValidStatus(s) && len(transitions[s]) == 0
}

// AllowedTargets devuelve los destinos válidos desde un status.
// La misma lista alimenta los quick-actions y el selector manual,
// nunca un superset.
func AllowedTargets(from Status) []Status {
	targets := transitions[from]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// ===============================
// Validations
// ===============================

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// CanTransition valida un par (origen, destino) contra la tabla
func CanTransition(from, to Status) error {
	for _, t := range transitions[from] {
		if t == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// CanCancel: la cancelación vale desde cualquier status no terminal
// (staff, profesional y cliente pasan por el mismo camino)
func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelado)
}
