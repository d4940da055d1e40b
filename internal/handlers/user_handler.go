package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipe/internal/services"
)

type UserHandler struct {
	service         services.UserService
	settingsService *services.SettingsService
}

func NewUserHandler(service services.UserService, settingsService *services.SettingsService) *UserHandler {
	return &UserHandler{service: service, settingsService: settingsService}
}

// @Summary      List users with pending status
// @Description  Pending profiles are excluded from hierarchy rollups until assigned
// @Tags         Users
// @Produce      json
// @Success      200  {array}  services.UserWithStatus
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		fail(c, err)
		return
	}
	users, err := h.service.List(settings.EntityMode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary  Get user
// @Tags     Users
// @Produce  json
// @Param    id  path  int  true  "User ID"
// @Success  200  {object}  models.UserProfile
// @Router   /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.service.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type assignmentRequest struct {
	Role         string `json:"role" binding:"required"`
	EntityID     *int   `json:"entity_id"`
	DivisionID   *int   `json:"division_id"`
	DepartmentID *int   `json:"department_id"`
}

// @Summary      Complete hierarchy assignment
// @Description  Admin sets the role-required hierarchy fields; until then the profile stays pending
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id          path      int                true  "User ID"
// @Param        assignment  body      assignmentRequest  true  "Assignment"
// @Success      200         {object}  models.UserProfile
// @Router       /users/{id}/assignment [put]
func (h *UserHandler) CompleteAssignment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.service.CompleteAssignment(id, req.Role, req.EntityID, req.DivisionID, req.DepartmentID)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
