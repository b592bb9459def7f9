package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

const (
	planCacheKey = "commission_plan:active"
	planCacheTTL = 24 * time.Hour
)

// PlanStore serves the active commission plan, cache-aside through redis.
// A missing plan row yields a zero-valued plan: deductions all zero and no
// level overrides, never an error.
type PlanStore struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewPlanStore(db *gorm.DB, redisClient *redis.Client) *PlanStore {
	return &PlanStore{db: db, redis: redisClient}
}

func (s *PlanStore) CommissionPlan(ctx context.Context) (commission.Plan, error) {
	if s.redis != nil {
		val, err := s.redis.Get(ctx, planCacheKey).Result()
		if err == nil {
			var cached models.CommissionPlan
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return toDomainPlan(cached)
			}
		} else if err != redis.Nil {
			log.Printf("Redis error on GET %s: %v. Falling back to DB.", planCacheKey, err)
		}
	}

	var row models.CommissionPlan
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id desc").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return commission.Plan{}, nil
		}
		return commission.Plan{}, fmt.Errorf("failed to load commission plan: %w", err)
	}

	if s.redis != nil {
		if jsonData, err := json.Marshal(&row); err == nil {
			if err := s.redis.Set(ctx, planCacheKey, jsonData, planCacheTTL).Err(); err != nil {
				log.Printf("Failed to set cache for key %s: %v", planCacheKey, err)
			}
		}
	}

	return toDomainPlan(row)
}

// SavePlan deactivates the current plan, inserts the new one and drops the
// cache.
func (s *PlanStore) SavePlan(ctx context.Context, row *models.CommissionPlan) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CommissionPlan{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		row.IsActive = true
		return tx.Create(row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save commission plan: %w", err)
	}

	s.Invalidate(ctx)
	return nil
}

func (s *PlanStore) Invalidate(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, planCacheKey)
	}
}

func toDomainPlan(row models.CommissionPlan) (commission.Plan, error) {
	tds, err := parseRate(row.TDSRate)
	if err != nil {
		return commission.Plan{}, fmt.Errorf("bad TDS rate: %w", err)
	}
	adminFee, err := parseRate(row.AdminFeeRate)
	if err != nil {
		return commission.Plan{}, fmt.Errorf("bad admin fee rate: %w", err)
	}
	repurchase, err := parseRate(row.RepurchaseRate)
	if err != nil {
		return commission.Plan{}, fmt.Errorf("bad repurchase rate: %w", err)
	}

	levelRates := make(map[int]decimal.Decimal, len(row.LevelRates))
	for level, raw := range row.LevelRates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return commission.Plan{}, fmt.Errorf("bad level %d rate %q: %w", level, raw, err)
		}
		levelRates[level] = rate
	}

	return commission.Plan{
		TDSRate:        tds,
		AdminFeeRate:   adminFee,
		RepurchaseRate: repurchase,
		LevelRates:     levelRates,
	}, nil
}

// parseRate treats an absent percentage as zero.
func parseRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
