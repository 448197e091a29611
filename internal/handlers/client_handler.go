package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estudionova/salon-agenda/internal/httperr"
	"github.com/estudionova/salon-agenda/internal/httpresp"
	"github.com/estudionova/salon-agenda/internal/listview"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/models"
	"github.com/estudionova/salon-agenda/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	DNI      string `json:"dni"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	DNI      *string `json:"dni,omitempty"`
}

// ======================================================
// LIST
// ======================================================

// La colección se trae completa y el filtrado/paginado se deriva en
// memoria, igual que en el resto de los listados.
func (h *ClientHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var clients []models.Client
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "fetch_failed", "No se pudo cargar la lista de clientes.")
		return
	}

	preds := []listview.Predicate[models.Client]{
		listview.Text(c.Query("query"), func(cl models.Client) []string {
			return []string{cl.Name, cl.Email, cl.Phone, cl.DNI, cl.Username}
		}),
	}

	page := pageParam(c)
	httpresp.Paged(c, listview.Derive(clients, preds, page, listview.DefaultPageSize))
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	client := models.Client{
		SalonID:  salonID,
		Name:     req.Name,
		Username: req.Username,
		Phone:    validators.NormalizePhone(req.Phone),
		Email:    req.Email,
		DNI:      req.DNI,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "No se pudo crear el cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&client).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "No se pudo cargar el cliente.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Username != nil {
		client.Username = *req.Username
	}
	if req.Phone != nil {
		client.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.DNI != nil {
		client.DNI = *req.DNI
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "No se pudo actualizar el cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

// pageParam: page ausente o inválida es 1; los handlers que reciben un
// filtro nuevo sin page explícita arrancan siempre en la primera página
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
