package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]Event, error)
	Search(ctx context.Context, term string) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Event{}).Error
}

func (r *repository) GetAll(ctx context.Context) ([]Event, error) {
	var result []Event
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) Search(ctx context.Context, term string) ([]Event, error) {
	var result []Event
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("event_name ILIKE ? OR event_type ILIKE ? OR location ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}
