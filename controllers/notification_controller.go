package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-storefront/services"
	"hotel-storefront/utils"
)

type NotificationController struct {
	Feed *services.NotificationFeed
}

func NewNotificationController(feed *services.NotificationFeed) *NotificationController {
	return &NotificationController{Feed: feed}
}

// GET /api/notifications drains pending toasts, oldest first.
func (nc *NotificationController) Drain(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, nc.Feed.Drain())
}
