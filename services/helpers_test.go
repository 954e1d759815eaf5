package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"hotel-storefront/models"
	"hotel-storefront/storage"
)

func mintToken(t *testing.T, userID interface{}, staff bool, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    "u@x.com",
		"is_staff": staff,
		"is_admin": false,
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return fs
}

// fakeHotel serves a handler per "METHOD path" and records what it saw.
type fakeHotel struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    []string
	auth     []string
	srv      *httptest.Server
}

func newFakeHotel(t *testing.T) *fakeHotel {
	f := &fakeHotel{t: t, handlers: map[string]http.HandlerFunc{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.calls = append(f.calls, key)
		f.auth = append(f.auth, r.Header.Get("Authorization"))
		h, ok := f.handlers[key]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeHotel) on(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeHotel) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

func (f *fakeHotel) lastAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.auth) == 0 {
		return ""
	}
	return f.auth[len(f.auth)-1]
}

func (f *fakeHotel) api() *HotelAPI {
	return NewHotelAPI(f.srv.URL, 2*time.Second)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// recordingNotifier keeps every toast in order.
type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) levels() []NotificationLevel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NotificationLevel, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, n.Level)
	}
	return out
}

type staticToken string

func (s staticToken) AccessToken(context.Context) (string, error) {
	if s == "" {
		return "", models.ErrNotAuthenticated
	}
	return string(s), nil
}

// recordingLogger keeps formatted lines, prefixed with their level.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Debug(format string, v ...interface{}) { r.add("DEBUG", format, v...) }
func (r *recordingLogger) Info(format string, v ...interface{})  { r.add("INFO", format, v...) }
func (r *recordingLogger) Warn(format string, v ...interface{})  { r.add("WARN", format, v...) }
func (r *recordingLogger) Error(format string, v ...interface{}) { r.add("ERROR", format, v...) }

func (r *recordingLogger) add(level, format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, v...))
}

func (r *recordingLogger) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}
