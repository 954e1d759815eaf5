package services

import (
	"context"
	"sync"
	"time"

	"hotel-storefront/logger"
)

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a toast shown to the storefront user.
type Notification struct {
	Level NotificationLevel `json:"level"`
	Title string            `json:"title"`
	At    time.Time         `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type LogNotifier struct {
	Log logger.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notification) {
	if n.Level == NotifyError {
		l.Log.Warn("notify: %s", n.Title)
		return
	}
	l.Log.Info("notify: %s", n.Title)
}

// NotificationFeed buffers toasts until the page drains them. When full the
// oldest toast is dropped.
type NotificationFeed struct {
	mu    sync.Mutex
	items []Notification
	max   int
}

func NewNotificationFeed(max int) *NotificationFeed {
	if max <= 0 {
		max = 50
	}
	return &NotificationFeed{max: max}
}

func (f *NotificationFeed) Notify(_ context.Context, n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == f.max {
		f.items = f.items[1:]
	}
	f.items = append(f.items, n)
}

// Drain returns pending toasts oldest first and empties the feed.
func (f *NotificationFeed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}

func notify(ctx context.Context, n Notifier, level NotificationLevel, title string) {
	if n == nil {
		return
	}
	n.Notify(ctx, Notification{Level: level, Title: title, At: time.Now().UTC()})
}
