package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-storefront/config"
	"hotel-storefront/logger"
	"hotel-storefront/models"
	"hotel-storefront/storage"
)

func TestOpenStoreDrivers(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Config{
				StorageDriver: driver,
				StorageDir:    filepath.Join(dir, "files"),
				SQLitePath:    filepath.Join(dir, "storefront.db"),
				LogLevel:      "error",
			}
			st, closeFn, err := openStore(cfg, logger.Discard())
			require.NoError(t, err)
			defer closeFn()

			ctx := context.Background()
			require.NoError(t, st.Set(ctx, storage.TokenKey, []byte(`{"access":"a","refresh":"r"}`)))
			require.NoError(t, st.Delete(ctx, storage.TokenKey))
			_, err = st.Get(ctx, storage.TokenKey)
			assert.ErrorIs(t, err, models.ErrRecordNotFound)
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, closeFn, err := openStore(config.Config{StorageDriver: "etcd"}, logger.Discard())
	assert.Error(t, err)
	closeFn()
}
