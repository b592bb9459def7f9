package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

// ProductStore serves the product catalog from the local product table.
// Deployments that consume a remote catalog use catalog.Client instead;
// both satisfy commission.Catalog.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]commission.Product, error) {
	var rows []models.Product
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]commission.Product, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row.ProductPrice)
		if err != nil {
			return nil, fmt.Errorf("product %d has bad price %q: %w", row.ID, row.ProductPrice, err)
		}
		rate, err := decimal.NewFromString(row.CommissionRate)
		if err != nil {
			return nil, fmt.Errorf("product %d has bad commission rate %q: %w", row.ID, row.CommissionRate, err)
		}
		products = append(products, commission.Product{
			ID:             row.ID,
			Name:           row.ProductName,
			Price:          price,
			CommissionRate: rate,
		})
	}
	return products, nil
}
