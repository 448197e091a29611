package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingHoursEntry struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`
}

type UpdateWorkingHoursRequest struct {
	Entries []WorkingHoursEntry `json:"entries" binding:"required"`
}

// Get devuelve los 7 días del profesional pedido
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	professionalID := uintParam(c, "professional_id")
	if professionalID == 0 {
		httperr.BadRequest(c, "missing_professional", "El profesional es obligatorio.")
		return
	}

	if !h.professionalBelongs(salonID, professionalID) {
		httperr.NotFound(c, "professional_not_found", "Profesional no encontrado.")
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "fetch_failed", "No se pudo cargar el horario.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update reemplaza el horario semanal completo del profesional
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	professionalID := uintParam(c, "professional_id")
	if professionalID == 0 {
		httperr.BadRequest(c, "missing_professional", "El profesional es obligatorio.")
		return
	}

	if !h.professionalBelongs(salonID, professionalID) {
		httperr.NotFound(c, "professional_not_found", "Profesional no encontrado.")
		return
	}

	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, e := range req.Entries {
			wh := models.WorkingHours{
				ProfessionalID: professionalID,
				Weekday:        e.Weekday,
				StartTime:      e.StartTime,
				EndTime:        e.EndTime,
				BreakStart:     e.BreakStart,
				BreakEnd:       e.BreakEnd,
				Active:         e.Active,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_update_hours", "No se pudo actualizar el horario.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(req.Entries)})
}

func (h *WorkingHoursHandler) professionalBelongs(salonID, professionalID uint) bool {
	var count int64
	h.db.Model(&models.Professional{}).
		Where("id = ? AND salon_id = ?", professionalID, salonID).
		Count(&count)
	return count > 0
}
