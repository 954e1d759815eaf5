package services

import (
	"context"
	"fmt"
	"sync"

	"hotel-storefront/logger"
	"hotel-storefront/models"
)

type CheckoutAPI interface {
	ListCheckedIn(ctx context.Context, ts TokenSource) ([]models.CheckIn, error)
	Checkout(ctx context.Context, roomID uint, ts TokenSource) error
}

// DashboardService is the staff view of rooms currently checked in. The list
// is fetched once and then kept in step with local checkouts.
type DashboardService struct {
	api       CheckoutAPI
	catalog   *CatalogStore
	session   Session
	notifier  Notifier
	publisher EventPublisher
	log       logger.Logger

	mu      sync.Mutex
	rows    []models.CheckIn
	fetched bool
}

func NewDashboardService(api CheckoutAPI, catalog *CatalogStore, session Session, notifier Notifier, publisher EventPublisher, log logger.Logger) *DashboardService {
	if log == nil {
		log = logger.Discard()
	}
	return &DashboardService{
		api:       api,
		catalog:   catalog,
		session:   session,
		notifier:  notifier,
		publisher: publisher,
		log:       log,
	}
}

func (d *DashboardService) requireStaff() error {
	id, ok := d.session.Identity()
	if !ok {
		return models.ErrNotAuthenticated
	}
	if !id.IsStaff {
		return models.ErrNotStaff
	}
	return nil
}

// Load fetches the checked-in list, replacing whatever was held.
func (d *DashboardService) Load(ctx context.Context) ([]models.CheckIn, error) {
	if err := d.requireStaff(); err != nil {
		return nil, err
	}
	rows, err := d.api.ListCheckedIn(ctx, d.session)
	if err != nil {
		d.log.Error("dashboard: list checked-in rooms: %v", err)
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = rows
	d.fetched = true
	return cloneCheckIns(rows), nil
}

// CheckedIn returns the held list, loading it on first use.
func (d *DashboardService) CheckedIn(ctx context.Context) ([]models.CheckIn, error) {
	if err := d.requireStaff(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	if d.fetched {
		out := cloneCheckIns(d.rows)
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()
	return d.Load(ctx)
}

// Checkout frees the room remotely, then mirrors that in the catalog and
// drops the room's rows from the held list.
func (d *DashboardService) Checkout(ctx context.Context, roomID uint) error {
	if err := d.requireStaff(); err != nil {
		return err
	}
	if roomID == 0 {
		return fmt.Errorf("room id required: %w", models.ErrValidation)
	}
	if err := d.api.Checkout(ctx, roomID, d.session); err != nil {
		d.log.Error("dashboard: checkout room %d: %v", roomID, err)
		notify(ctx, d.notifier, NotifyError, "Checkout failed")
		return err
	}

	if d.catalog != nil && !d.catalog.ApplyCheckout(roomID) {
		d.log.Warn("dashboard: room %d checked out but not in catalog", roomID)
	}

	d.mu.Lock()
	kept := d.rows[:0:0]
	for _, r := range d.rows {
		if r.RoomID != roomID {
			kept = append(kept, r)
		}
	}
	d.rows = kept
	d.mu.Unlock()

	d.log.Info("dashboard: room %d checked out", roomID)
	notify(ctx, d.notifier, NotifySuccess, "Room checked out")
	publish(ctx, d.publisher, d.log, EventRoomCheckedOut, map[string]interface{}{"room_id": roomID})
	return nil
}

func cloneCheckIns(rows []models.CheckIn) []models.CheckIn {
	out := make([]models.CheckIn, len(rows))
	copy(out, rows)
	return out
}
