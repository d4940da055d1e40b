package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salespipe/internal/currency"
	"salespipe/internal/services"
	"salespipe/internal/stage"
)

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "100"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	return size, (page - 1) * size
}

// statusFor maps the core error taxonomy onto HTTP statuses. AlreadyTerminal
// is deliberately absent: handlers treat it as a 200 no-op, not a failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, stage.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, currency.ErrAmbiguousCurrency):
		return http.StatusBadRequest
	case errors.Is(err, stage.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, currency.ErrRateNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
