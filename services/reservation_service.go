package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotel-storefront/logger"
	"hotel-storefront/models"
	"hotel-storefront/utils"
)

// ReservationForm is the booking form as the page submits it. Dates are
// kept as typed so a failed submit hands the user's input back unchanged.
type ReservationForm struct {
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone"`
	CheckingDate string `json:"checking_date" validate:"required"`
	CheckoutDate string `json:"checkout_date" validate:"required"`
}

// BookingAPI is what a reservation needs from the hotel API.
type BookingAPI interface {
	GetRoom(ctx context.Context, slug string, ts TokenSource) (models.Room, error)
	CreateBooking(ctx context.Context, req models.BookingRequest, ts TokenSource) (models.Booking, error)
}

// Session is the read side of the session store plus its bearer token.
type Session interface {
	TokenSource
	Identity() (models.Identity, bool)
}

type ReservationResult struct {
	Room    models.Room     `json:"room"`
	Booking *models.Booking `json:"booking,omitempty"`
	Form    ReservationForm `json:"form"`
}

type ReservationService struct {
	api       BookingAPI
	catalog   *CatalogStore
	session   Session
	notifier  Notifier
	publisher EventPublisher
	log       logger.Logger
	validate  *validator.Validate
}

func NewReservationService(api BookingAPI, catalog *CatalogStore, session Session, notifier Notifier, publisher EventPublisher, log logger.Logger) *ReservationService {
	if log == nil {
		log = logger.Discard()
	}
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.IsPhoneNumber(fl.Field().String())
	})
	return &ReservationService{
		api:       api,
		catalog:   catalog,
		session:   session,
		notifier:  notifier,
		publisher: publisher,
		log:       log,
		validate:  v,
	}
}

// ResolveRoom scans the catalog first and asks the API only for rooms the
// catalog does not hold.
func (s *ReservationService) ResolveRoom(ctx context.Context, slug string) (models.Room, error) {
	if s.catalog != nil {
		if room, ok := s.catalog.FindBySlug(slug); ok {
			return room, nil
		}
	}
	return s.api.GetRoom(ctx, slug, s.session)
}

// Submit books the room for the signed-in user. On success the returned
// form is empty; on any failure it is the form that was submitted.
func (s *ReservationService) Submit(ctx context.Context, slug string, form ReservationForm) (ReservationResult, error) {
	res := ReservationResult{Form: form}

	id, ok := s.session.Identity()
	if !ok {
		return res, s.fail(ctx, slug, models.ErrNotAuthenticated)
	}

	req, err := s.buildRequest(form)
	if err != nil {
		return res, s.fail(ctx, slug, err)
	}

	room, err := s.ResolveRoom(ctx, slug)
	if err != nil {
		return res, s.fail(ctx, slug, err)
	}
	res.Room = room
	req.RoomID = room.ID
	req.CustomerID = id.UserID

	booking, err := s.api.CreateBooking(ctx, req, s.session)
	if err != nil {
		return res, s.fail(ctx, slug, err)
	}

	s.log.Info("reservation: room %s booked for user %d <%s> %s", slug, id.UserID, utils.MaskEmail(req.Email), utils.FormatStay(req.CheckIn, req.CheckOut))
	notify(ctx, s.notifier, NotifySuccess, "Reservation submitted")
	publish(ctx, s.publisher, s.log, EventBookingSubmitted, map[string]interface{}{
		"room_id":     room.ID,
		"room_slug":   room.Slug,
		"customer_id": id.UserID,
		"check_in":    req.CheckIn,
		"check_out":   req.CheckOut,
	})

	res.Booking = &booking
	res.Form = ReservationForm{}
	return res, nil
}

func (s *ReservationService) buildRequest(form ReservationForm) (models.BookingRequest, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.BookingRequest{}, fmt.Errorf("%w: %s failed %s", models.ErrValidation, verrs[0].Field(), verrs[0].Tag())
		}
		return models.BookingRequest{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	in, err := utils.ParseFormTime(form.CheckingDate)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("%w: checking_date: %v", models.ErrValidation, err)
	}
	out, err := utils.ParseFormTime(form.CheckoutDate)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("%w: checkout_date: %v", models.ErrValidation, err)
	}
	if !out.After(in) {
		return models.BookingRequest{}, fmt.Errorf("%w: checkout must be after check-in", models.ErrValidation)
	}

	return models.BookingRequest{
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		CheckIn:     in,
		CheckOut:    out,
	}, nil
}

func (s *ReservationService) fail(ctx context.Context, slug string, err error) error {
	s.log.Error("reservation: room %s: %v", slug, err)
	notify(ctx, s.notifier, NotifyError, "Reservation could not be submitted")
	return err
}
