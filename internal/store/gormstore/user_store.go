package gormstore

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicate
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race against another registration for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return store.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Where("email = ?", email))
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.firstUser(s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *Store) firstUser(query *gorm.DB) (*model.User, error) {
	var user model.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
