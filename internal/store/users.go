package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"myhealth-server/internal/models"
)

// UserStore persists users and their refresh tokens.
type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound("find user", err)
	}
	return &u, nil
}

// FindByEmail returns nil without error when no user has that email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *UserStore) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("role = ?", role).Order("last_name asc, first_name asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserStore) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// FindActiveRefreshToken returns the stored token if it is neither revoked
// nor expired at now.
func (s *UserStore) FindActiveRefreshToken(ctx context.Context, token, userID string, now time.Time) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := s.db.WithContext(ctx).
		Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?", token, userID, false, now).
		First(&t).Error
	if err != nil {
		return nil, notFound("find refresh token", err)
	}
	return &t, nil
}

// RevokeRefreshToken marks a token revoked. Unknown or already revoked tokens
// are not an error.
func (s *UserStore) RevokeRefreshToken(ctx context.Context, token string, now time.Time) error {
	err := s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Updates(map[string]any{"is_revoked": true, "expires_at": now}).Error
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
