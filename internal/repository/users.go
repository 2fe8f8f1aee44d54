// Package repository wraps every database query the service makes.
// File queries are only reachable through an owner scoped handle.
package repository

import (
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/pkg/apperr"
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts u. A duplicate email is reported as apperr.ErrEmailTaken.
func (r *Users) Create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrEmailTaken
	}

	return err
}

func (r *Users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &u, nil
}

func (r *Users) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Count(&count).
		Error

	return count > 0, err
}
