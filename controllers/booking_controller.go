package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-storefront/models"
	"hotel-storefront/services"
	"hotel-storefront/utils"
)

type BookingController struct {
	Reservations *services.ReservationService
	Dashboard    *services.DashboardService
}

func NewBookingController(res *services.ReservationService, dash *services.DashboardService) *BookingController {
	return &BookingController{Reservations: res, Dashboard: dash}
}

// ----------------------------------------------------
// Reservation form (POST /api/rooms/:slug/book)
// ----------------------------------------------------

// Book answers 201 with the booking and a cleared form, or an error with the
// submitted form so the page can keep the user's input.
func (bc *BookingController) Book(c *gin.Context) {
	var form services.ReservationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation payload")
		return
	}

	res, err := bc.Reservations.Submit(c.Request.Context(), c.Param("slug"), form)
	if err != nil {
		code, msg := statusFor(err)
		utils.JSONErrorWithData(c, code, msg, res)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// ----------------------------------------------------
// Staff dashboard (/api/dashboard)
// ----------------------------------------------------

// GetCheckedIn lists rooms currently checked in; ?refresh=true refetches.
func (bc *BookingController) GetCheckedIn(c *gin.Context) {
	var (
		rows []models.CheckIn
		err  error
	)
	if c.Query("refresh") == "true" {
		rows, err = bc.Dashboard.Load(c.Request.Context())
	} else {
		rows, err = bc.Dashboard.CheckedIn(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (bc *BookingController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "pk (room id) required")
		return
	}
	if err := bc.Dashboard.Checkout(c.Request.Context(), req.RoomID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": req.RoomID})
}
