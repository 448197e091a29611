package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/dto"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/httpresp"
	"github.com/estudionova/salon-agenda/internal/listview"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/models"
	ucturno "github.com/estudionova/salon-agenda/internal/usecase/turno"
)

// ======================================================
// USE CASE CONTRACTS
// ======================================================

type turnoCreator interface {
	Execute(ctx context.Context, in ucturno.CreateTurnoInput) (*models.Turno, error)
}

type transitionExecutor interface {
	Execute(ctx context.Context, in ucturno.ApplyTransitionInput) (*models.Turno, error)
}

type agendaByDateLister interface {
	Execute(ctx context.Context, salonID, professionalID uint, date time.Time) ([]dto.TurnoListDTO, error)
}

type agendaByMonthLister interface {
	Execute(ctx context.Context, salonID, professionalID uint, year, month int) ([]dto.TurnoListDTO, error)
}

type availabilityGetter interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) ([]domain.TimeSlot, error)
}

// ======================================================
// HANDLER
// ======================================================

type TurnoHandler struct {
	db *gorm.DB

	create       turnoCreator
	transition   transitionExecutor
	listByDate   agendaByDateLister
	listByMonth  agendaByMonthLister
	availability availabilityGetter
}

func NewTurnoHandler(
	db *gorm.DB,
	create turnoCreator,
	transition transitionExecutor,
	listByDate agendaByDateLister,
	listByMonth agendaByMonthLister,
	availability availabilityGetter,
) *TurnoHandler {
	return &TurnoHandler{
		db:           db,
		create:       create,
		transition:   transition,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTurnoRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	ClientNotes    string `json:"client_notes"`
}

type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	StaffNotes string `json:"staff_notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *TurnoHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateTurnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	created, err := h.create.Execute(c.Request.Context(), ucturno.CreateTurnoInput{
		SalonID:        salonID,
		UserID:         &userID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		ClientNotes:    req.ClientNotes,
	})
	if err != nil {
		writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST (agenda del día)
// ======================================================

func (h *TurnoHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "La fecha es obligatoria.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	professionalID := uintParam(c, "professional_id")

	turnos, err := h.listByDate.Execute(c.Request.Context(), salonID, professionalID, date)
	if err != nil {
		httperr.Internal(c, "fetch_failed", "No se pudo cargar la agenda.")
		return
	}

	preds := []listview.Predicate[dto.TurnoListDTO]{
		listview.Equals(c.Query("status"), func(t dto.TurnoListDTO) string {
			return t.Status
		}),
		listview.Text(c.Query("query"), func(t dto.TurnoListDTO) []string {
			return []string{t.ClientName, t.ProfessionalName, t.ServiceName}
		}),
	}

	httpresp.Paged(c, listview.Derive(turnos, preds, pageParam(c), listview.DefaultPageSize))
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *TurnoHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	professionalID := uintParam(c, "professional_id")

	turnos, err := h.listByMonth.Execute(c.Request.Context(), salonID, professionalID, year, month)
	if err != nil {
		httperr.Internal(c, "fetch_failed", "No se pudo cargar la agenda del mes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"month":  month,
		"turnos": turnos,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *TurnoHandler) Availability(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	professionalID := uintParam(c, "professional_id")
	serviceID := uintParam(c, "service_id")

	if dateStr == "" || professionalID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "Fecha, profesional y servicio son obligatorios.")
		return
	}

	salon, ok := h.loadSalon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.Internal(c, "availability_failed", "No se pudo calcular la disponibilidad.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

// UpdateStatus es el camino "Gestionar": destino elegido por el usuario
// más una nota opcional. Los quick-actions de abajo son azúcar sobre el
// mismo use case.
func (h *TurnoHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	h.applyTransition(c, domain.Status(req.Status), req.StaffNotes)
}

func (h *TurnoHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, domain.StatusConfirmado, "")
}

func (h *TurnoHandler) Start(c *gin.Context) {
	h.applyTransition(c, domain.StatusEnProceso, "")
}

func (h *TurnoHandler) Complete(c *gin.Context) {
	h.applyTransition(c, domain.StatusCompletado, "")
}

func (h *TurnoHandler) NoShow(c *gin.Context) {
	h.applyTransition(c, domain.StatusNoAsistio, "")
}

func (h *TurnoHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, domain.StatusCancelado, "")
}

func (h *TurnoHandler) applyTransition(c *gin.Context, target domain.Status, note string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	turnoID := uintPathParam(c, "id")
	if turnoID == 0 {
		httperr.BadRequest(c, "invalid_id", "Id de turno inválido.")
		return
	}

	updated, err := h.transition.Execute(c.Request.Context(), ucturno.ApplyTransitionInput{
		SalonID:   salonID,
		UserID:    userID,
		TurnoID:   turnoID,
		Target:    target,
		StaffNote: note,
	})
	if err != nil {
		writeTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Transitions expone la fila de la tabla para el status actual: la UI
// arma el selector solo con esta lista.
func (h *TurnoHandler) Transitions(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	turnoID := uintPathParam(c, "id")

	var t models.Turno
	if err := h.db.
		Where("id = ? AND salon_id = ?", turnoID, salonID).
		First(&t).Error; err != nil {
		httperr.NotFound(c, "turno_not_found", "Turno no encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          t.Status,
		"allowed_targets": domain.AllowedTargets(domain.Status(t.Status)),
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *TurnoHandler) loadSalon(c *gin.Context, salonID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salón no encontrado.")
		return nil, false
	}
	return &salon, true
}

func uintParam(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func uintPathParam(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func writeTransitionError(c *gin.Context, err error) {
	var ite *domain.InvalidTransitionError
	switch {
	case errors.As(err, &ite):
		httperr.Conflict(c, "invalid_transition",
			fmt.Sprintf("El turno no puede pasar de %s a %s.", ite.From, ite.To))
	case httperr.IsBusiness(err, "turno_not_found"):
		httperr.NotFound(c, "turno_not_found", "Turno no encontrado.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status desconocido.")
	default:
		httperr.Internal(c, "update_rejected", "No se pudo actualizar el turno.")
	}
}

func writeCreateError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "El horario no respeta la antelación mínima.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Servicio no encontrado.")
	case httperr.IsBusiness(err, "service_inactive"):
		httperr.BadRequest(c, "service_inactive", "El servicio no está disponible.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Profesional no encontrado.")
	case httperr.IsBusiness(err, "professional_unavailable"):
		httperr.BadRequest(c, "professional_unavailable", "El profesional no está disponible.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fuera del horario de atención.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Conflicto de horario.")
	default:
		httperr.Internal(c, "failed_to_create_turno", "No se pudo crear el turno.")
	}
}
