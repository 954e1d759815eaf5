package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-storefront/models"
	"hotel-storefront/services"
	"hotel-storefront/utils"
)

// statusFor maps a service error to the status and message the page sees.
func statusFor(err error) (int, string) {
	var se *services.StatusError
	var te *services.TransportError
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrNotAuthenticated):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, models.ErrNotStaff):
		return http.StatusForbidden, "staff access required"
	case errors.Is(err, models.ErrRoomNotFound):
		return http.StatusNotFound, "room not found"
	case errors.As(err, &se):
		return http.StatusBadGateway, fmt.Sprintf("hotel API answered %d", se.Status)
	case errors.As(err, &te):
		return http.StatusBadGateway, "hotel API unreachable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	utils.JSONError(c, code, msg)
}
