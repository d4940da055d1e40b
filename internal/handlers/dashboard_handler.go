package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/middleware"
	"salespipe/internal/services"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// @Summary      Scoped pipeline summary
// @Description  Counts, home-currency totals, stage breakdown and recent activity for the requester's scope
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  services.Summary
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	sum, err := h.service.Summary(u)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Scored opportunity rows
// @Description  Per-record display probability, performance score and presented amounts
// @Tags         Dashboard
// @Produce      json
// @Success      200  {array}  services.Row
// @Router       /dashboard/rows [get]
func (h *DashboardHandler) Rows(c *gin.Context) {
	u, ok := middleware.Requester(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no requester in context"})
		return
	}
	rows, _, err := h.service.Rows(u)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
