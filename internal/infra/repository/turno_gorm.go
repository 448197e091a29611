package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/models"
)

type TurnoGormRepository struct {
	db *gorm.DB
}

func NewTurnoGormRepository(db *gorm.DB) *TurnoGormRepository {
	return &TurnoGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *TurnoGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *TurnoGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *TurnoGormRepository) GetProfessional(
	ctx context.Context,
	salonID uint,
	professionalID uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", professionalID, salonID).
		First(&pro).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *TurnoGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Turno (create / conflict)
// --------------------------------------------------

func (r *TurnoGormRepository) CreateTurno(
	ctx context.Context,
	t *models.Turno,
) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TurnoGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) error {

	// solo los status activos bloquean el horario
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Turno{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"professional_id = ? AND status IN ('pendiente', 'confirmado', 'en_proceso') AND scheduled_at < ? AND end_time > ?",
			professionalID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Turno (state change)
// --------------------------------------------------

func (r *TurnoGormRepository) GetTurnoForUpdate(
	ctx context.Context,
	turnoID uint,
	salonID uint,
) (*models.Turno, error) {

	var t models.Turno
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND salon_id = ?", turnoID, salonID).
		First(&t).Error; err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TurnoGormRepository) UpdateTurno(
	ctx context.Context,
	t *models.Turno,
) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TurnoGormRepository) InTransaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TurnoGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *TurnoGormRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *TurnoGormRepository) ListTurnosForDay(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Select("scheduled_at", "end_time").
		Where(
			"professional_id = ? AND status IN ('pendiente', 'confirmado', 'en_proceso') AND scheduled_at >= ? AND scheduled_at < ?",
			professionalID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

// --------------------------------------------------
// Listing (full collection, unpaginated)
// --------------------------------------------------

func (r *TurnoGormRepository) ListTurnosForPeriod(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Turno, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Where(
			"salon_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			salonID, start, end,
		)

	// professionalID 0 significa la agenda de todo el salón
	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var turnos []models.Turno
	if err := q.Order("scheduled_at ASC").Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

func (r *TurnoGormRepository) ListTurnosByClient(
	ctx context.Context,
	salonID uint,
	clientID uint,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Where("salon_id = ? AND client_id = ?", salonID, clientID).
		Order("scheduled_at DESC").
		Find(&turnos).Error; err != nil {
		return nil, err
	}

	return turnos, nil
}

// Compile-time check
var _ domain.Repository = (*TurnoGormRepository)(nil)
