package commission

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UserSource exposes the user base for sponsor resolution and upline
// walking.
type UserSource interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// Catalog lists purchasable products. In deployment this is an HTTP
// boundary; tests and single-node setups back it with the product table.
type Catalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Ledger appends transaction records and answers turnover queries over
// them. Appends must preserve call order for a single distribution.
type Ledger interface {
	Append(ctx context.Context, entry Entry) error
	// MonthlyTurnover sums the absolute amounts of retail-profit and
	// repurchase-bonus entries whose timestamp falls in the given month.
	MonthlyTurnover(ctx context.Context, year int, month time.Month) (decimal.Decimal, error)
}

// PurchaseHistory looks up a user's past purchases for repurchase
// detection.
type PurchaseHistory interface {
	PriorPurchases(ctx context.Context, userID int64) ([]PurchaseRecord, error)
}

// NetworkSource returns the binary sponsor tree rooted at a user, or nil
// when the user has no network.
type NetworkSource interface {
	NetworkTree(ctx context.Context, userID int64) (*NetworkMember, error)
}

// PlanSource returns the active commission plan. A missing plan yields a
// zero-valued Plan rather than an error.
type PlanSource interface {
	CommissionPlan(ctx context.Context) (Plan, error)
}

// BonusSink receives qualifying bonus events. Implementations decide how
// an event converts into a wallet credit.
type BonusSink interface {
	AddRepurchaseBonus(ctx context.Context, userID int64, amount decimal.Decimal, productName string) error
	AddTeamMatchingBonus(ctx context.Context, userID int64, pairs int) error
	AddRoyaltyBonus(ctx context.Context, userID int64, turnover decimal.Decimal) error
}
