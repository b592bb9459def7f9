package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LevelRateMap maps an upline level number to a commission rate, stored as
// a JSON object column. Integer keys serialize as strings per encoding/json.
type LevelRateMap map[int]string

func (m *LevelRateMap) Scan(value interface{}) error {
	if value == nil {
		*m = LevelRateMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan LevelRateMap: %v", value)
	}

	return json.Unmarshal(bytes, m)
}

func (m LevelRateMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	ReferralCode string `gorm:"uniqueIndex;not null"`
	// SponsorRef holds either the sponsor's numeric id or their referral
	// code, matched case-insensitively at resolution time.
	SponsorRef *string
	IsActive   bool       `gorm:"default:true"`
	CreatedAt  *time.Time `gorm:"autoCreateTime"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime"`
}

type Product struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	ProductCode    string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	ProductName    string     `gorm:"type:varchar(128);not null"`
	ProductPrice   string     `gorm:"type:decimal(18,2);not null"`
	CommissionRate string     `gorm:"type:decimal(5,2);not null"`
	IsActive       bool       `gorm:"not null;default:true"`
	CreatedAt      *time.Time `gorm:"autoCreateTime"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime"`
}

// LedgerEntry is append-only: rows are created once per commission event
// and never updated or deleted. Negative amounts are deduction line items
// recorded for audit.
type LedgerEntry struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"index;not null"`
	Amount      string `gorm:"type:decimal(18,2);not null"`
	Category    string `gorm:"type:varchar(32);index;not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(16);not null"`
	// Level is the upline tier that earned the entry, when applicable.
	Level      *int32
	PaymentID  *string    `gorm:"type:varchar(64);index"`
	OrderID    *string    `gorm:"type:varchar(64)"`
	ProductID  *int64     `gorm:"index"`
	OccurredAt time.Time  `gorm:"index;not null"`
	CreatedAt  *time.Time `gorm:"autoCreateTime"`
}

type Wallet struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	UserID    int64      `gorm:"uniqueIndex;not null"`
	Balance   string     `gorm:"type:decimal(18,2);not null;default:'0.00'"`
	CreatedAt *time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

type CommissionPlan struct {
	ID             int64        `gorm:"primaryKey;autoIncrement"`
	TDSRate        string       `gorm:"type:decimal(6,4);not null"`
	AdminFeeRate   string       `gorm:"type:decimal(6,4);not null"`
	RepurchaseRate string       `gorm:"type:decimal(6,4);not null"`
	LevelRates     LevelRateMap `gorm:"type:jsonb"`
	IsActive       bool         `gorm:"index;not null;default:false"`
	CreatedAt      *time.Time   `gorm:"autoCreateTime"`
	UpdatedAt      *time.Time   `gorm:"autoUpdateTime"`
}

// NetworkPlacement pins a user to one slot of the binary tree. Position 0
// is the left leg, 1 the right leg.
type NetworkPlacement struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	UserID    int64      `gorm:"uniqueIndex;not null"`
	ParentID  int64      `gorm:"index;not null"`
	Position  int16      `gorm:"not null"`
	CreatedAt *time.Time `gorm:"autoCreateTime"`
}
