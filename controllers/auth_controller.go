package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-storefront/models"
	"hotel-storefront/services"
	"hotel-storefront/utils"
)

type AuthController struct {
	Session *services.SessionStore
}

func NewAuthController(session *services.SessionStore) *AuthController {
	return &AuthController{Session: session}
}

type sessionView struct {
	State    models.SessionState `json:"state"`
	Identity *models.Identity    `json:"identity,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

func (ac *AuthController) view(out services.Outcome) sessionView {
	v := sessionView{State: out.State, Redirect: out.Redirect}
	if id, ok := ac.Session.Identity(); ok {
		v.Identity = &id
	}
	return v
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)

	out, err := ac.Session.Login(c.Request.Context(), creds)
	if err != nil {
		var se *services.StatusError
		if errors.As(err, &se) && se.Status < http.StatusInternalServerError {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ac.view(out))
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email, username, password and password2 required")
		return
	}
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Username = strings.TrimSpace(reg.Username)

	out, err := ac.Session.Register(c.Request.Context(), reg)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, ac.view(out))
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	out := ac.Session.Logout(c.Request.Context())
	utils.JSONSuccess(c, http.StatusOK, ac.view(out))
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, ac.view(services.Outcome{State: ac.Session.State()}))
}
