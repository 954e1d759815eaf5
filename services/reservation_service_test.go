package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-storefront/models"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.events = append(p.events, ev)
	return p.err
}

type reservationFixture struct {
	hotel   *fakeHotel
	session *SessionStore
	catalog *CatalogStore
	notes   *recordingNotifier
	events  *recordingPublisher
	svc     *ReservationService
}

func newReservationFixture(t *testing.T, signedIn bool) *reservationFixture {
	t.Helper()
	ctx := context.Background()
	hotel := newFakeHotel(t)
	hotel.on(http.MethodGet, pathRoomList, reply(http.StatusOK, `[{"id":1,"room_slug":"standard-101","category_name":"Standard","price_per_night":"100.00"}]`))
	hotel.on(http.MethodPost, pathToken, reply(http.StatusOK, fmt.Sprintf(`{"access":%q,"refresh":"r"}`, mintToken(t, 9, false, time.Now().Add(time.Hour)))))

	api := hotel.api()
	catalog := NewCatalogStore(api, models.FilterLastWins, nil)
	require.NoError(t, catalog.Load(ctx))

	session := NewSessionStore(api, newFileStore(t), nil, nil)
	session.Hydrate(ctx)
	if signedIn {
		_, err := session.Login(ctx, models.Credentials{Email: "u@x.com", Password: "pw"})
		require.NoError(t, err)
	}

	f := &reservationFixture{hotel: hotel, session: session, catalog: catalog, notes: &recordingNotifier{}, events: &recordingPublisher{}}
	f.svc = NewReservationService(api, catalog, session, f.notes, f.events, nil)
	return f
}

func validForm() ReservationForm {
	return ReservationForm{
		Email:        "guest@example.com",
		PhoneNumber:  "+66 81 234 5678",
		CheckingDate: "2025-05-01T14:00",
		CheckoutDate: "2025-05-03T11:00",
	}
}

func TestReservationSubmit(t *testing.T) {
	f := newReservationFixture(t, true)
	sent := make(chan []byte, 1)
	f.hotel.on(http.MethodPost, pathBook, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sent <- body
		reply(http.StatusCreated, `{"id":77,"room":1,"customer":9,"email":"guest@example.com"}`)(w, r)
	})

	res, err := f.svc.Submit(context.Background(), "standard-101", validForm())
	require.NoError(t, err)

	var got models.BookingRequest
	require.NoError(t, json.Unmarshal(<-sent, &got))
	require.NotNil(t, res.Booking)
	assert.Equal(t, uint(77), res.Booking.ID)
	assert.Equal(t, ReservationForm{}, res.Form)
	assert.Equal(t, uint(1), got.RoomID)
	assert.Equal(t, uint(9), got.CustomerID)
	assert.Equal(t, time.Date(2025, 5, 1, 14, 0, 0, 0, time.UTC), got.CheckIn.UTC())
	assert.Contains(t, f.hotel.lastAuth(), "Bearer ")
	assert.Equal(t, []NotificationLevel{NotifySuccess}, f.notes.levels())
	require.Len(t, f.events.events, 1)
	assert.Equal(t, EventBookingSubmitted, f.events.events[0].Type)
}

func TestReservationSubmitKeepsFormOnFailure(t *testing.T) {
	f := newReservationFixture(t, true)
	f.hotel.on(http.MethodPost, pathBook, reply(http.StatusBadRequest, `{"checking_date":["bad"]}`))
	form := validForm()

	res, err := f.svc.Submit(context.Background(), "standard-101", form)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Nil(t, res.Booking)
	assert.Equal(t, form, res.Form)
	assert.Equal(t, []NotificationLevel{NotifyError}, f.notes.levels())
	assert.Empty(t, f.events.events)
}

func TestReservationSubmitValidation(t *testing.T) {
	f := newReservationFixture(t, true)

	cases := map[string]func(*ReservationForm){
		"bad email":        func(r *ReservationForm) { r.Email = "nope" },
		"bad phone":        func(r *ReservationForm) { r.PhoneNumber = "call me" },
		"missing checkin":  func(r *ReservationForm) { r.CheckingDate = "" },
		"unparseable date": func(r *ReservationForm) { r.CheckoutDate = "tomorrow" },
		"reversed dates":   func(r *ReservationForm) { r.CheckoutDate = "2025-04-30T11:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(&form)
			res, err := f.svc.Submit(context.Background(), "standard-101", form)
			require.ErrorIs(t, err, models.ErrValidation)
			assert.Equal(t, form, res.Form)
		})
	}
	assert.Equal(t, 0, f.hotel.count(http.MethodPost, pathBook))
}

func TestReservationRequiresSession(t *testing.T) {
	f := newReservationFixture(t, false)

	_, err := f.svc.Submit(context.Background(), "standard-101", validForm())
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestReservationResolveRoomFallsBackToAPI(t *testing.T) {
	f := newReservationFixture(t, true)
	f.hotel.on(http.MethodGet, pathRoomDetail+"suite-9", reply(http.StatusOK, `{"id":9,"room_slug":"suite-9","price_per_night":250}`))

	room, err := f.svc.ResolveRoom(context.Background(), "standard-101")
	require.NoError(t, err)
	assert.Equal(t, uint(1), room.ID)
	assert.Equal(t, 0, f.hotel.count(http.MethodGet, pathRoomDetail+"standard-101"))

	room, err = f.svc.ResolveRoom(context.Background(), "suite-9")
	require.NoError(t, err)
	assert.Equal(t, uint(9), room.ID)

	_, err = f.svc.ResolveRoom(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrRoomNotFound)
}
