// Package sqlite keeps session slots in an embedded SQLite database through gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"alcyxob/vitality-planner/internal/repository"
)

// SlotRecord is one row per (namespace, slot).
type SlotRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Namespace string `gorm:"not null;uniqueIndex:uidx_namespace_slot"`
	Slot      string `gorm:"not null;uniqueIndex:uidx_namespace_slot"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SlotRecord) TableName() string { return "session_slots" }

// Store implements repository.SessionStore on a gorm handle.
type Store struct {
	database  *gorm.DB
	namespace string
}

// Open creates the database file (and its directory) and migrates the schema.
// Pass ":memory:" for a throwaway database.
func Open(dbPath string) (*gorm.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&SlotRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session_slots: %w", err)
	}
	return database, nil
}

// NewStore wraps an opened database.
func NewStore(database *gorm.DB, namespace string) *Store {
	return &Store{database: database, namespace: namespace}
}

func (s *Store) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	if !slot.Valid() {
		return nil, repository.ErrUnknownSlot
	}
	var record SlotRecord
	err := s.database.WithContext(ctx).
		Where("namespace = ? AND slot = ?", s.namespace, string(slot)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(record.Value), nil
}

func (s *Store) Set(ctx context.Context, slot repository.Slot, value []byte) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	record := SlotRecord{Namespace: s.namespace, Slot: string(slot), Value: string(value)}
	return s.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func (s *Store) Clear(ctx context.Context, slot repository.Slot) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	return s.database.WithContext(ctx).
		Where("namespace = ? AND slot = ?", s.namespace, string(slot)).
		Delete(&SlotRecord{}).Error
}
