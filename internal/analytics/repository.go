package analytics

import (
	"context"

	"gorm.io/gorm"

	"eventbook/internal/events"
	"eventbook/internal/users"
)

type Repository interface {
	CountEvents(ctx context.Context) (int64, error)
	CountEventsThisMonth(ctx context.Context) (int64, error)
	CountDistinctCities(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&events.Event{}).Count(&count).Error
	return count, err
}

func (r *repository) CountEventsThisMonth(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&events.Event{}).
		Where("date_trunc('month', created_at) = date_trunc('month', CURRENT_DATE)").
		Count(&count).Error
	return count, err
}

func (r *repository) CountDistinctCities(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&events.Event{}).
		Distinct("location").
		Count(&count).Error
	return count, err
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.User{}).Count(&count).Error
	return count, err
}
