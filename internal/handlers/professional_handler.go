package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/httpresp"
	"github.com/estudionova/salon-agenda/internal/listview"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/models"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Available *bool   `json:"available,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var pros []models.Professional
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "fetch_failed", "No se pudo cargar la lista de profesionales.")
		return
	}

	preds := []listview.Predicate[models.Professional]{
		listview.Text(c.Query("query"), func(p models.Professional) []string {
			return []string{p.Name, p.Email, p.Phone, p.Specialty}
		}),
		listview.Equals(c.Query("specialty"), func(p models.Professional) string {
			return p.Specialty
		}),
		listview.Bool(c.Query("available"), func(p models.Professional) bool {
			return p.Available
		}),
	}

	httpresp.Paged(c, listview.Derive(pros, preds, pageParam(c), listview.DefaultPageSize))
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ProfessionalHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	pro := models.Professional{
		SalonID:   salonID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Available: true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "No se pudo crear el profesional.")
		return
	}

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profesional no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "No se pudo cargar el profesional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Email != nil {
		pro.Email = *req.Email
	}
	if req.Phone != nil {
		pro.Phone = *req.Phone
	}
	if req.Specialty != nil {
		pro.Specialty = *req.Specialty
	}
	if req.Available != nil {
		pro.Available = *req.Available
	}

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "No se pudo actualizar el profesional.")
		return
	}

	c.JSON(http.StatusOK, pro)
}
