package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/middleware"
	"salespipe/internal/models"
	"salespipe/internal/services"
)

type TargetHandler struct {
	service   *services.TargetService
	dashboard *services.DashboardService
}

func NewTargetHandler(service *services.TargetService, dashboard *services.DashboardService) *TargetHandler {
	return &TargetHandler{service: service, dashboard: dashboard}
}

// @Summary  Create sales target
// @Tags     Targets
// @Accept   json
// @Produce  json
// @Param    target  body      models.SalesTarget  true  "Target"
// @Success  201     {object}  models.SalesTarget
// @Router   /targets [post]
func (h *TargetHandler) Create(c *gin.Context) {
	var t models.SalesTarget
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(&t)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary  Update sales target
// @Tags     Targets
// @Accept   json
// @Produce  json
// @Param    id      path      int                 true  "Target ID"
// @Param    target  body      models.SalesTarget  true  "Target"
// @Success  200     {object}  models.SalesTarget
// @Router   /targets/{id} [put]
func (h *TargetHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var t models.SalesTarget
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(id, &t)
	if err != nil {
		fail(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary  List sales targets visible to the requester
// @Tags     Targets
// @Produce  json
// @Param    period  query  string  false  "YYYY-MM"
// @Success  200  {array}  models.SalesTarget
// @Router   /targets [get]
func (h *TargetHandler) List(c *gin.Context) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	sc, _, err := h.dashboard.ResolveScope(u)
	if err != nil {
		fail(c, err)
		return
	}
	targets, err := h.service.ListScoped(sc, c.Query("period"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}
