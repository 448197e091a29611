package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/estudionova/salon-agenda/internal/domain/turno"
	"github.com/estudionova/salon-agenda/internal/dto"
	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/httpresp"
	"github.com/estudionova/salon-agenda/internal/listview"
	"github.com/estudionova/salon-agenda/internal/models"
	ucturno "github.com/estudionova/salon-agenda/internal/usecase/turno"
	"github.com/estudionova/salon-agenda/internal/validators"
)

type clientTurnosLister interface {
	Execute(ctx context.Context, salonID, clientID uint) ([]dto.TurnoListDTO, error)
}

// PublicHandler atiende el flujo del cliente: reservar, ver sus turnos
// y cancelar, sin login de staff.
type PublicHandler struct {
	db *gorm.DB

	create       turnoCreator
	transition   transitionExecutor
	availability availabilityGetter
	listByClient clientTurnosLister
}

func NewPublicHandler(
	db *gorm.DB,
	create turnoCreator,
	transition transitionExecutor,
	availability availabilityGetter,
	listByClient clientTurnosLister,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		transition:   transition,
		availability: availability,
		listByClient: listByClient,
	}
}

// --------- Requests ---------

type PublicBookingRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	ClientNotes    string `json:"client_notes"`
}

type PublicCancelRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

// ======================================================
// SERVICES (catálogo público)
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "fetch_failed", "No se pudo cargar el catálogo.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	professionalID := uintParam(c, "professional_id")
	serviceID := uintParam(c, "service_id")

	if dateStr == "" || professionalID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "Fecha, profesional y servicio son obligatorios.")
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:        salon.ID,
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
// BOOKING
// ======================================================

func (h *PublicHandler) CreateTurno(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	created, err := h.create.Execute(c.Request.Context(), ucturno.CreateTurnoInput{
		SalonID:        salon.ID,
		UserID:         nil, // reserva del propio cliente
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
// MIS TURNOS
// ======================================================

func (h *PublicHandler) ListMyTurnos(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	client, ok := h.clientByPhone(c, salon.ID)
	if !ok {
		return
	}

	turnos, err := h.listByClient.Execute(c.Request.Context(), salon.ID, client.ID)
	if err != nil {
		httperr.Internal(c, "fetch_failed", "No se pudieron cargar tus turnos.")
		return
	}

	preds := []listview.Predicate[dto.TurnoListDTO]{
		listview.Equals(c.Query("status"), func(t dto.TurnoListDTO) string {
			return t.Status
		}),
	}

	httpresp.Paged(c, listview.Derive(turnos, preds, pageParam(c), listview.DefaultPageSize))
}

// ======================================================
// CANCEL (cliente)
// ======================================================

// La cancelación del cliente es una transición de status, no un DELETE:
// pasa por el mismo camino validado que el resto del ciclo de vida.
func (h *PublicHandler) CancelTurno(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	turnoID := uintPathParam(c, "id")
	if turnoID == 0 {
		httperr.BadRequest(c, "invalid_id", "Id de turno inválido.")
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("salon_id = ? AND phone = ?", salon.ID, validators.NormalizePhone(req.ClientPhone)).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "turno_not_found", "Turno no encontrado.")
		return
	}

	updated, err := h.transition.Execute(c.Request.Context(), ucturno.ApplyTransitionInput{
		SalonID:  salon.ID,
		TurnoID:  turnoID,
		Target:   domain.StatusCancelado,
		ClientID: &client.ID,
	})
	if err != nil {
		writeTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salón no encontrado.")
		return nil, false
	}

	return &salon, true
}

func (h *PublicHandler) clientByPhone(c *gin.Context, salonID uint) (*models.Client, bool) {
	phone := validators.NormalizePhone(c.Query("phone"))
	if phone == "" {
		httperr.BadRequest(c, "missing_phone", "El teléfono es obligatorio.")
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return nil, false
	}

	return &client, true
}
