package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"restaurant-pos/internal/database/models"
)

// PostgresBackend keeps keys as rows of pos_kv_entries. Update takes a row
// lock for the duration of the read-modify-write.
type PostgresBackend struct {
	db *gorm.DB
}

func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (p *PostgresBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := p.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres load %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (p *PostgresBackend) Save(ctx context.Context, key string, value []byte) error {
	if err := upsertEntry(p.db.WithContext(ctx), key, value); err != nil {
		return fmt.Errorf("postgres save %s: %w", key, err)
	}
	return nil
}

func (p *PostgresBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.KVEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).
			Take(&entry).Error

		found := true
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else if err != nil {
			return fmt.Errorf("postgres load %s: %w", key, err)
		}

		var current []byte
		if found {
			current = []byte(entry.Value)
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}

		if err := upsertEntry(tx, key, next); err != nil {
			return fmt.Errorf("postgres save %s: %w", key, err)
		}
		return nil
	})
}

func (p *PostgresBackend) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsertEntry(db *gorm.DB, key string, value []byte) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.KVEntry{Key: key, Value: string(value)}).Error
}
