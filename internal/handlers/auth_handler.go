package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"salespipe/internal/middleware"
	"salespipe/internal/models"
	"salespipe/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	log         *logrus.Logger
}

func NewAuthHandler(userService services.UserService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, log: log}
}

// @Summary      Log in
// @Description  Authenticates a user and returns a bearer token carrying the hierarchy claims
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.userService.GetByEmail(email)
	if err != nil || user == nil {
		h.log.WithField("email", email).Info("login rejected: unknown user")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !h.userService.CheckPassword(user.PasswordHash, req.Password) {
		h.log.WithField("user_id", user.ID).Info("login rejected: password mismatch")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	claims := &middleware.Claims{
		UserID:       user.ID,
		Role:         user.Role,
		EntityID:     user.EntityID,
		DivisionID:   user.DivisionID,
		DepartmentID: user.DepartmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(8 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTKey)
	if err != nil {
		h.log.WithError(err).Error("sign token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// @Summary      Register
// @Description  Creates a profile; new users stay pending until an admin assigns their hierarchy position
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body      registerRequest  true  "Profile"
// @Success      201   {object}  models.UserProfile
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u := &models.UserProfile{Name: req.Name, Email: strings.TrimSpace(req.Email), Role: req.Role}
	if err := h.userService.Register(u, req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}
