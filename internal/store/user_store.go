package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

var ErrNotFound = errors.New("record not found")

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) ListUsers(ctx context.Context) ([]commission.User, error) {
	var rows []models.User
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]commission.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toDomainUser(row))
	}
	return users, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (commission.User, error) {
	var row models.User
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return commission.User{}, ErrNotFound
		}
		return commission.User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return toDomainUser(row), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var row models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return row, nil
}

func (s *UserStore) Create(ctx context.Context, row *models.User) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func toDomainUser(row models.User) commission.User {
	sponsorRef := ""
	if row.SponsorRef != nil {
		sponsorRef = *row.SponsorRef
	}
	return commission.User{
		ID:           row.ID,
		Name:         row.Name,
		ReferralCode: row.ReferralCode,
		SponsorRef:   sponsorRef,
	}
}
