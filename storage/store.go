// Package storage is the durable client storage the session token record is
// kept in. Absence of a key is reported as models.ErrRecordNotFound.
package storage

import (
	"context"
	"fmt"
	"regexp"

	"hotel-storefront/models"
)

// TokenKey is the fixed key the token pair is persisted under.
const TokenKey = "authTokens"

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("storage key %q: %w", key, models.ErrValidation)
	}
	return nil
}
