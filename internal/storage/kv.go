package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/lexique/internal/favorites"
)

// DeviceKV is a favorites.KV scoped to one device, stored in the kv table.
type DeviceKV struct {
	db     *sql.DB
	device string
}

// NewDeviceKV returns the KV of device.
func NewDeviceKV(db *sql.DB, device string) *DeviceKV {
	return &DeviceKV{db: db, device: device}
}

// Factory adapts db to a favorites.KVFactory.
func Factory(db *sql.DB) favorites.KVFactory {
	return func(device string) favorites.KV { return NewDeviceKV(db, device) }
}

// Get returns the value for key and whether it was present.
func (kv *DeviceKV) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := kv.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE device=? AND key=?`, kv.device, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, true, nil
}

// Set inserts or replaces the value for key.
func (kv *DeviceKV) Set(ctx context.Context, key, value string) error {
	_, err := kv.db.ExecContext(ctx, `
        INSERT INTO kv (device, key, value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(device, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		kv.device, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}
