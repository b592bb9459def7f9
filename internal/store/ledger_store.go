package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

// LedgerStore is the append-only transaction ledger. Rows are never
// updated or deleted.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Append(ctx context.Context, entry commission.Entry) error {
	row := models.LedgerEntry{
		UserID:      entry.UserID,
		Amount:      entry.Amount.StringFixed(2),
		Category:    entry.Category,
		Description: entry.Description,
		Status:      entry.Status,
		OccurredAt:  entry.OccurredAt,
	}
	if entry.Level > 0 {
		level := int32(entry.Level)
		row.Level = &level
	}
	if entry.PaymentID != "" {
		paymentID := entry.PaymentID
		row.PaymentID = &paymentID
	}
	if entry.OrderID != "" {
		orderID := entry.OrderID
		row.OrderID = &orderID
	}
	if entry.ProductID > 0 {
		productID := entry.ProductID
		row.ProductID = &productID
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// MonthlyTurnover sums |amount| over retail-profit and repurchase-bonus
// entries of the given calendar month. Deduction line items are negative
// rows, so the absolute value makes them add to turnover instead of
// cancelling it.
func (s *LedgerStore) MonthlyTurnover(ctx context.Context, year int, month time.Month) (decimal.Decimal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var result struct {
		Turnover string
	}
	err := s.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(ABS(amount::numeric)), 0) as turnover").
		Where("category IN ?", []string{commission.CategoryRetailProfit, commission.CategoryRepurchaseBonus}).
		Where("occurred_at >= ? AND occurred_at < ?", start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly turnover: %w", err)
	}

	turnover, err := decimal.NewFromString(result.Turnover)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad turnover sum %q: %w", result.Turnover, err)
	}
	return turnover, nil
}

// PriorPurchases returns the products a user has bought, identified by the
// retail entries that carry a product id (commission credits do not).
func (s *LedgerStore) PriorPurchases(ctx context.Context, userID int64) ([]commission.PurchaseRecord, error) {
	var rows []models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND product_id IS NOT NULL", userID, commission.CategoryRetailProfit).
		Order("occurred_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prior purchases: %w", err)
	}

	records := make([]commission.PurchaseRecord, 0, len(rows))
	for _, row := range rows {
		rec := commission.PurchaseRecord{}
		if row.ProductID != nil {
			rec.ProductID = *row.ProductID
		}
		if row.PaymentID != nil {
			rec.PaymentID = *row.PaymentID
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListByUser returns a user's ledger entries, newest first.
func (s *LedgerStore) ListByUser(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return rows, nil
}
