package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/models"
	"salespipe/internal/services"
)

type RateHandler struct {
	service *services.RateService
}

func NewRateHandler(service *services.RateService) *RateHandler {
	return &RateHandler{service: service}
}

// @Summary  List exchange rates
// @Tags     Rates
// @Produce  json
// @Success  200  {array}  models.ExchangeRate
// @Router   /rates [get]
func (h *RateHandler) List(c *gin.Context) {
	rates, err := h.service.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// @Summary  Create exchange rate
// @Tags     Rates
// @Accept   json
// @Produce  json
// @Param    rate  body      models.ExchangeRate  true  "Rate"
// @Success  201   {object}  models.ExchangeRate
// @Router   /rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	var er models.ExchangeRate
	if err := c.ShouldBindJSON(&er); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(&er)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary  Update exchange rate
// @Tags     Rates
// @Accept   json
// @Produce  json
// @Param    id    path      int                  true  "Rate ID"
// @Param    rate  body      models.ExchangeRate  true  "Rate"
// @Success  200   {object}  models.ExchangeRate
// @Router   /rates/{id} [put]
func (h *RateHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var er models.ExchangeRate
	if err := c.ShouldBindJSON(&er); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(id, &er)
	if err != nil {
		fail(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rate not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary  Deactivate exchange rate
// @Description  Rates referenced by historical conversions are retired, never deleted
// @Tags     Rates
// @Param    id  path  int  true  "Rate ID"
// @Success  204
// @Router   /rates/{id} [delete]
func (h *RateHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
