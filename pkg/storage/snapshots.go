package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot is one durable, independently keyed state document. Each state
// container (cart, auth, theme) owns exactly one row, written on every
// mutation and read back at startup.
type Snapshot struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Payload   string    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the snapshot table name.
func (Snapshot) TableName() string { return "snapshots" }

// Store persists keyed JSON snapshots in a local sqlite database.
type Store struct {
	db *gorm.DB
}

// Open creates (or opens) the snapshot database at the given path and ensures
// the schema exists. Use ":memory:" for throwaway state.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing gorm handle, migrating the snapshot schema.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save serializes value as JSON and upserts it under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if key == "" {
		return fmt.Errorf("snapshot key required")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", key, err)
	}
	record := Snapshot{Key: key, Payload: string(payload)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("persist snapshot %q: %w", key, err)
	}
	return nil
}

// Load unmarshals the snapshot stored under key into dest. It reports false
// when no snapshot exists, which callers treat as a cold start.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	var record Snapshot
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(record.Payload), dest); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the snapshot under key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Snapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
