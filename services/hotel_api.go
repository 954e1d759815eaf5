package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"hotel-storefront/models"
)

// APIBaseURL is fixed at build time:
//
//	go build -ldflags "-X hotel-storefront/services.APIBaseURL=https://api.hotel.example"
var APIBaseURL = "http://127.0.0.1:8000"

const (
	pathToken        = "/accounts/api/v1/token/"
	pathTokenRefresh = "/accounts/api/v1/token/refresh/"
	pathRegister     = "/accounts/api/v1/register/"
	pathRoomList     = "/hotel/api/v1/get_room_list/"
	pathRoomDetail   = "/hotel/api/v1/get_a_room_detail/"
	pathBook         = "/hotel/api/v1/book/"
	pathCheckedIn    = "/hotel/api/v1/get_current_checked_in_rooms/"
	pathCheckout     = "/hotel/api/v1/checkout/"
)

// StatusError is a non-2xx answer. Body is kept as-is; the API gives no
// guarantee it carries a usable message.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// TransportError is a request that never produced a response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TokenSource hands out the bearer credential for authenticated calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type HotelAPI struct {
	baseURL string
	http    *http.Client
}

func NewHotelAPI(baseURL string, timeout time.Duration) *HotelAPI {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HotelAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (a *HotelAPI) ObtainToken(ctx context.Context, creds models.Credentials) (models.TokenPair, error) {
	var pair models.TokenPair
	err := a.do(ctx, http.MethodPost, pathToken, nil, creds, &pair, http.StatusOK)
	return pair, err
}

// RefreshToken exchanges a refresh token for a new access token. The API
// may or may not rotate the refresh token; an empty one keeps the old.
func (a *HotelAPI) RefreshToken(ctx context.Context, refresh string) (models.TokenPair, error) {
	var pair models.TokenPair
	err := a.do(ctx, http.MethodPost, pathTokenRefresh, nil, map[string]string{"refresh": refresh}, &pair, http.StatusOK)
	if err != nil {
		return models.TokenPair{}, err
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	return pair, nil
}

func (a *HotelAPI) Register(ctx context.Context, reg models.Registration) error {
	return a.do(ctx, http.MethodPost, pathRegister, nil, reg, nil, http.StatusCreated)
}

func (a *HotelAPI) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := a.do(ctx, http.MethodGet, pathRoomList, nil, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (a *HotelAPI) GetRoom(ctx context.Context, slug string, ts TokenSource) (models.Room, error) {
	var room models.Room
	err := a.do(ctx, http.MethodGet, pathRoomDetail+url.PathEscape(slug), ts, nil, &room)
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return models.Room{}, fmt.Errorf("%s: %w", slug, models.ErrRoomNotFound)
	}
	return room, err
}

func (a *HotelAPI) CreateBooking(ctx context.Context, req models.BookingRequest, ts TokenSource) (models.Booking, error) {
	var booking models.Booking
	err := a.do(ctx, http.MethodPost, pathBook, ts, req, &booking)
	return booking, err
}

func (a *HotelAPI) ListCheckedIn(ctx context.Context, ts TokenSource) ([]models.CheckIn, error) {
	var rows []models.CheckIn
	if err := a.do(ctx, http.MethodGet, pathCheckedIn, ts, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *HotelAPI) Checkout(ctx context.Context, roomID uint, ts TokenSource) error {
	return a.do(ctx, http.MethodPost, pathCheckout, ts, models.CheckoutRequest{RoomID: roomID}, nil)
}

// do sends one request. With no expected statuses any 2xx is accepted.
// A nil out discards the body.
func (a *HotelAPI) do(ctx context.Context, method, path string, ts TokenSource, in, out interface{}, expect ...int) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts != nil {
		token, err := ts.AccessToken(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	if !statusAccepted(resp.StatusCode, expect) {
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: raw}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusAccepted(status int, expect []int) bool {
	if len(expect) == 0 {
		return status >= 200 && status < 300
	}
	for _, s := range expect {
		if status == s {
			return true
		}
	}
	return false
}
