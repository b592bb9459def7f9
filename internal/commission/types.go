package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry categories.
const (
	CategoryRetailProfit    = "retail_profit"
	CategoryRepurchaseBonus = "repurchase_bonus"
	CategoryTeamMatching    = "team_matching_bonus"
	CategoryRoyaltyBonus    = "royalty_bonus"
	CategoryReferralBonus   = "referral_bonus"
)

const StatusCompleted = "completed"

type User struct {
	ID           int64
	Name         string
	ReferralCode string
	// SponsorRef is the sponsor's numeric id or referral code; empty when
	// the user has no sponsor.
	SponsorRef string
}

type Product struct {
	ID   int64
	Name string
	// Price is non-negative; CommissionRate is a percentage in [0, 100].
	Price          decimal.Decimal
	CommissionRate decimal.Decimal
}

// Plan carries the deduction percentages (fractions of a gross commission)
// and the per-level override rates (fractions of the product price).
type Plan struct {
	TDSRate        decimal.Decimal
	AdminFeeRate   decimal.Decimal
	RepurchaseRate decimal.Decimal
	LevelRates     map[int]decimal.Decimal
}

// MaxLevel returns the highest configured override level, 0 when none.
func (p Plan) MaxLevel() int {
	max := 0
	for level := range p.LevelRates {
		if level > max {
			max = level
		}
	}
	return max
}

// NetworkMember is one node of the binary sponsor tree. The tree is built
// externally and read-only for the duration of one distribution.
type NetworkMember struct {
	UserID int64
	Left   *NetworkMember
	Right  *NetworkMember
}

// Entry is one append-only ledger record. Negative amounts are deduction
// line items kept for audit; no physical transfer backs them.
type Entry struct {
	UserID      int64
	Amount      decimal.Decimal
	Category    string
	Description string
	Status      string
	Level       int
	PaymentID   string
	OrderID     string
	ProductID   int64
	OccurredAt  time.Time
}

// PurchaseRecord is one historical purchase of the acting user.
type PurchaseRecord struct {
	ProductID int64
	PaymentID string
}
