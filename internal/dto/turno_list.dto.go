package dto

import (
	"time"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/models"
)

type TurnoListDTO struct {
	ID               uint      `json:"id"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	ProfessionalName string    `json:"professional_name"`
	ServiceName      string    `json:"service_name"`
	ClientNotes      string    `json:"client_notes"`
	StaffNotes       string    `json:"staff_notes"`
	FinalPrice       float64   `json:"final_price"`

	// destinos válidos desde el status actual, para que la UI nunca
	// ofrezca una transición fuera de la tabla
	AllowedTargets []domain.Status `json:"allowed_targets"`
}

func FromTurno(t models.Turno) TurnoListDTO {
	return TurnoListDTO{
		ID:               t.ID,
		ScheduledAt:      t.ScheduledAt,
		EndTime:          t.EndTime,
		Status:           t.Status,
		ClientName:       t.Client.Name,
		ProfessionalName: t.Professional.Name,
		ServiceName:      t.Service.Name,
		ClientNotes:      t.ClientNotes,
		StaffNotes:       t.StaffNotes,
		FinalPrice:       t.FinalPrice,
		AllowedTargets:   domain.AllowedTargets(domain.Status(t.Status)),
	}
}
