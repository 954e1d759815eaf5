package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-storefront/models"
	"hotel-storefront/utils"
)

// Hydration is the part of the session store the gate watches.
type Hydration interface {
	Hydrated() bool
}

// HydrationGate holds every request off with 503 until the persisted session
// has been read.
func HydrationGate(h Hydration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.Hydrated() {
			c.Header("Retry-After", "1")
			utils.JSONError(c, http.StatusServiceUnavailable, "session loading")
			c.Abort()
			return
		}
		c.Next()
	}
}

type IdentitySource interface {
	Identity() (models.Identity, bool)
}

func RequireStaff(s IdentitySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.Identity()
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "login required")
			c.Abort()
			return
		}
		if !id.IsStaff {
			utils.JSONError(c, http.StatusForbidden, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
