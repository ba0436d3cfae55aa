package auth

import (
	"context"
	"errors"

	"eventbook/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, user *users.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*users.User, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	GetUsersByRole(ctx context.Context, role users.Role) ([]users.User, error)
	SearchUsers(ctx context.Context, term string) ([]users.User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *users.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetUserByPhone(ctx context.Context, phone string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&users.User{}).
		Where("phone = ?", phone).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateUserPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (r *repository) GetUsersByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	var result []users.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) SearchUsers(ctx context.Context, term string) ([]users.User, error) {
	var result []users.User
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}
