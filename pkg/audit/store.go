package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store provides append-only operations for audit events.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the audit events table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Event{}); err != nil {
		return fmt.Errorf("auto-migrate auth_audit_events: %w", err)
	}
	return nil
}

// Append creates a new immutable audit event record.
func (s *Store) Append(event *Event) error {
	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByActor returns the most recent events recorded for an actor,
// newest first, capped at limit.
func (s *Store) ListByActor(actor string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var events []Event
	err := s.db.Where("actor = ?", actor).Order("created_at DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list audit events by actor: %w", err)
	}
	return events, nil
}

// DeleteOlderThan removes events created before the cutoff and returns the
// number of rows deleted.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff).Delete(&Event{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete audit events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
