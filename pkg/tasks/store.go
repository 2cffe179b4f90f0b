package tasks

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store provides CRUD operations for task records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tasks table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Task{}); err != nil {
		return fmt.Errorf("auto-migrate tasks: %w", err)
	}
	return nil
}

// ListByOwner returns all tasks owned by ownerID, newest first. The owner
// filter is part of the query itself (indexed user_id column), so rows owned
// by anyone else are never materialized.
func (s *Store) ListByOwner(ctx context.Context, ownerID uint64) ([]Task, error) {
	var tasks []Task
	err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks by owner: %w", err)
	}
	return tasks, nil
}

// Get retrieves a task by id alone, with no owner filter: existence and
// ownership are checked separately so a missing task and a foreign task
// produce different failures. Returns nil, nil if no task exists.
func (s *Store) Get(ctx context.Context, id uint64) (*Task, error) {
	var task Task
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// Create inserts a new task record.
func (s *Store) Create(ctx context.Context, task *Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update persists all fields of an existing task record.
func (s *Store) Update(ctx context.Context, task *Task) error {
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task record by id.
func (s *Store) Delete(ctx context.Context, id uint64) error {
	if err := s.db.WithContext(ctx).Delete(&Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
