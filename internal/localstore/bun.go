// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type entry struct {
	bun.BaseModel `bun:"table:local_storage"`

	Key       string    `bun:"storage_key,pk"`
	Value     string    `bun:"storage_value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore persists entries in the local_storage table.
type BunStore struct {
	db     *bun.DB
	dbType string
}

func (s *BunStore) Get(ctx context.Context, key string) (string, error) {
	var e entry
	err := s.db.NewSelect().Model(&e).Where("storage_key = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return e.Value, nil
}

func (s *BunStore) Set(ctx context.Context, key, value string) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	q := s.db.NewInsert().Model(&e)
	switch s.dbType {
	case "mysql":
		q = q.On("DUPLICATE KEY UPDATE").
			Set("storage_value = VALUES(storage_value)").
			Set("updated_at = VALUES(updated_at)")
	default:
		q = q.On("CONFLICT (storage_key) DO UPDATE").
			Set("storage_value = EXCLUDED.storage_value").
			Set("updated_at = EXCLUDED.updated_at")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

// *BunStore implements Store
var _ Store = (*BunStore)(nil)
