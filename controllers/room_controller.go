package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-storefront/logger"
	"hotel-storefront/models"
	"hotel-storefront/services"
	"hotel-storefront/utils"
)

// RoomFetcher reads one room straight from the hotel API.
type RoomFetcher interface {
	GetRoom(ctx context.Context, slug string, ts services.TokenSource) (models.Room, error)
}

type RoomController struct {
	Catalog *services.CatalogStore
	API     RoomFetcher
	Session *services.SessionStore
	Log     logger.Logger
}

func NewRoomController(catalog *services.CatalogStore, api RoomFetcher, session *services.SessionStore, log logger.Logger) *RoomController {
	return &RoomController{Catalog: catalog, API: api, Session: session, Log: log}
}

type roomListView struct {
	Rooms       []models.Room         `json:"rooms"`
	Criteria    models.FilterCriteria `json:"criteria"`
	PriceBounds models.PriceBounds    `json:"price_bounds"`
	Categories  []string              `json:"categories"`
	FilterMode  models.FilterMode     `json:"filter_mode"`
	SizeBounds  *sizeBounds           `json:"size_bounds,omitempty"`
}

type sizeBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (rc *RoomController) listView() roomListView {
	v := roomListView{
		Rooms:       rc.Catalog.Derived(),
		Criteria:    rc.Catalog.Criteria(),
		PriceBounds: rc.Catalog.PriceBounds(),
		Categories:  rc.Catalog.Categories(),
		FilterMode:  rc.Catalog.Mode(),
	}
	if min, max, ok := rc.Catalog.RoomSizeBounds(); ok {
		v.SizeBounds = &sizeBounds{Min: min, Max: max}
	}
	return v
}

// ----------------------------------------------------
// Room list (GET /api/rooms)
// ----------------------------------------------------

func (rc *RoomController) GetRooms(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}

func (rc *RoomController) GetAllRooms(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.Catalog.Rooms())
}

func (rc *RoomController) GetFeaturedRooms(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.Catalog.Featured())
}

// ----------------------------------------------------
// Room detail (GET /api/rooms/:slug, GET /api/rooms/:slug/live)
// ----------------------------------------------------

func (rc *RoomController) GetRoomBySlug(c *gin.Context) {
	room, ok := rc.Catalog.FindBySlug(c.Param("slug"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) GetLiveRoom(c *gin.Context) {
	var ts services.TokenSource
	if _, ok := rc.Session.Identity(); ok {
		ts = rc.Session
	}
	room, err := rc.API.GetRoom(c.Request.Context(), c.Param("slug"), ts)
	if err != nil {
		rc.Log.Error("room %s: %v", c.Param("slug"), err)
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// Filters
// ----------------------------------------------------

type categoryPayload struct {
	Category string `json:"category" binding:"required"`
}

type pricePayload struct {
	MaxPrice *float64 `json:"max_price" binding:"required"`
}

func (rc *RoomController) SetCategory(c *gin.Context) {
	var p categoryPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "category required")
		return
	}
	rc.Catalog.SetCategoryFilter(p.Category)
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}

func (rc *RoomController) SetPrice(c *gin.Context) {
	var p pricePayload
	if err := c.ShouldBindJSON(&p); err != nil || *p.MaxPrice < 0 {
		utils.JSONError(c, http.StatusBadRequest, "max_price must be a non-negative number")
		return
	}
	rc.Catalog.SetPriceThreshold(*p.MaxPrice)
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}

func (rc *RoomController) ToggleAvailability(c *gin.Context) {
	rc.Catalog.ToggleAvailabilityOnly()
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}

func (rc *RoomController) ClearFilters(c *gin.Context) {
	rc.Catalog.ClearFilters()
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}

// ReloadCatalog refetches the collection. A failed fetch still answers with
// the (now empty) list view alongside the error.
func (rc *RoomController) ReloadCatalog(c *gin.Context) {
	if err := rc.Catalog.Load(c.Request.Context()); err != nil {
		code, msg := statusFor(err)
		utils.JSONErrorWithData(c, code, msg, rc.listView())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rc.listView())
}
