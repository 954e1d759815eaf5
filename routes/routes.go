package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-storefront/controllers"
	"hotel-storefront/logger"
	"hotel-storefront/middleware"
	"hotel-storefront/services"
)

// Controllers bundles everything the router dispatches to.
type Controllers struct {
	Rooms         *controllers.RoomController
	Auth          *controllers.AuthController
	Bookings      *controllers.BookingController
	Notifications *controllers.NotificationController
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(origins []string, log logger.Logger, session *services.SessionStore, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))
	r.Use(cors.New(corsConfig(origins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "session_ready": session.Hydrated()})
	})

	api := r.Group("/api")
	api.Use(middleware.HydrationGate(session))
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			// static paths sit beside /:slug
			rooms.GET("/all", ctl.Rooms.GetAllRooms)
			rooms.GET("/featured", ctl.Rooms.GetFeaturedRooms)
			rooms.GET("/:slug", ctl.Rooms.GetRoomBySlug)
			rooms.GET("/:slug/live", ctl.Rooms.GetLiveRoom)
			rooms.POST("/:slug/book", ctl.Bookings.Book)
		}

		filters := api.Group("/filters")
		{
			filters.PUT("/category", ctl.Rooms.SetCategory)
			filters.PUT("/price", ctl.Rooms.SetPrice)
			filters.POST("/availability", ctl.Rooms.ToggleAvailability)
			filters.DELETE("", ctl.Rooms.ClearFilters)
		}

		api.POST("/catalog/reload", ctl.Rooms.ReloadCatalog)

		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/register", ctl.Auth.Register)
			auth.POST("/logout", ctl.Auth.Logout)
			auth.GET("/me", ctl.Auth.Me)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireStaff(session))
		{
			dashboard.GET("/checked-in", ctl.Bookings.GetCheckedIn)
			dashboard.POST("/checkout", ctl.Bookings.Checkout)
		}

		api.GET("/notifications", ctl.Notifications.Drain)
	}

	return r
}
