package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

// Rates convert bonus events into wallet credits.
type Rates struct {
	// RepurchaseRate is the fraction of the product price credited on a
	// repeat purchase.
	RepurchaseRate decimal.Decimal
	// PairValue is the flat credit per matched left/right pair.
	PairValue decimal.Decimal
	// RoyaltyRate is the fraction of monthly turnover credited to a
	// qualifying sponsor.
	RoyaltyRate decimal.Decimal
}

// Service credits bonuses: each credit moves the wallet balance and posts
// the matching ledger entry in one database transaction.
type Service struct {
	db    *gorm.DB
	rates Rates
	now   func() time.Time
}

func NewService(db *gorm.DB, rates Rates) *Service {
	return &Service{db: db, rates: rates, now: time.Now}
}

func (s *Service) AddRepurchaseBonus(ctx context.Context, userID int64, amount decimal.Decimal, productName string) error {
	credit := amount.Mul(s.rates.RepurchaseRate)
	description := fmt.Sprintf("Repurchase bonus on %s", productName)
	return s.credit(ctx, userID, credit, commission.CategoryRepurchaseBonus, description)
}

func (s *Service) AddTeamMatchingBonus(ctx context.Context, userID int64, pairs int) error {
	credit := s.rates.PairValue.Mul(decimal.NewFromInt(int64(pairs)))
	description := fmt.Sprintf("Team matching bonus for %d pairs", pairs)
	return s.credit(ctx, userID, credit, commission.CategoryTeamMatching, description)
}

func (s *Service) AddRoyaltyBonus(ctx context.Context, userID int64, turnover decimal.Decimal) error {
	credit := turnover.Mul(s.rates.RoyaltyRate)
	description := fmt.Sprintf("Royalty bonus on turnover %s", turnover.StringFixed(2))
	return s.credit(ctx, userID, credit, commission.CategoryRoyaltyBonus, description)
}

func (s *Service) credit(ctx context.Context, userID int64, amount decimal.Decimal, category, description string) error {
	if !amount.IsPositive() {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Wallet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.Wallet{UserID: userID, Balance: "0.00"}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to lock wallet: %w", err)
		}

		balance, err := decimal.NewFromString(row.Balance)
		if err != nil {
			return fmt.Errorf("wallet %d has bad balance %q: %w", row.ID, row.Balance, err)
		}

		row.Balance = balance.Add(amount).StringFixed(2)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to update wallet balance: %w", err)
		}

		entry := models.LedgerEntry{
			UserID:      userID,
			Amount:      amount.StringFixed(2),
			Category:    category,
			Description: description,
			Status:      commission.StatusCompleted,
			OccurredAt:  s.now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record bonus entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bonus credit for user %d: %w", userID, err)
	}
	return nil
}

// Balance returns the user's wallet balance, zero when no wallet exists.
func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var row models.Wallet
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get wallet: %w", err)
	}
	return decimal.NewFromString(row.Balance)
}
