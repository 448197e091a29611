package turno

import (
	"context"
	"time"

	"github.com/estudionova/salon-agenda/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		salonID uint,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Turno (create / conflict) --------
	CreateTurno(
		ctx context.Context,
		t *models.Turno,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Turno (state change) --------
	// GetTurnoForUpdate trae el turno con lock de fila para que dos
	// transiciones simultáneas sobre el mismo turno se serialicen.
	GetTurnoForUpdate(
		ctx context.Context,
		turnoID uint,
		salonID uint,
	) (*models.Turno, error)

	UpdateTurno(
		ctx context.Context,
		t *models.Turno,
	) error

	InTransaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListTurnosForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Turno, error)

	// -------- Listing (full collection, unpaginated) --------
	ListTurnosForPeriod(
		ctx context.Context,
		salonID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Turno, error)

	ListTurnosByClient(
		ctx context.Context,
		salonID uint,
		clientID uint,
	) ([]models.Turno, error)
}
