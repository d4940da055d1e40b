package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/models"
	"salespipe/internal/services"
)

type SettingsHandler struct {
	service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// @Summary  Current entity/currency mode
// @Tags     Settings
// @Produce  json
// @Success  200  {object}  models.Settings
// @Router   /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.service.Get()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary  Update entity/currency mode
// @Tags     Settings
// @Accept   json
// @Produce  json
// @Param    settings  body      models.Settings  true  "Modes"
// @Success  200       {object}  models.Settings
// @Router   /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var in models.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.service.Update(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
