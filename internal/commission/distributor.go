package commission

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Distributor sequences the financial consequences of one retail
// purchase: the buyer's own purchase record, the direct commission with
// its deduction line items, per-level upline overrides, repurchase
// detection, the team matching bonus and the royalty evaluation.
//
// All inputs are read-only snapshots for the duration of one call and
// every write is a ledger append, so distributions for different buyers
// may run concurrently as long as the ledger guarantees atomic appends.
type Distributor struct {
	users   UserSource
	catalog Catalog
	ledger  Ledger
	history PurchaseHistory
	network NetworkSource
	plans   PlanSource
	bonuses BonusSink
	now     func() time.Time
}

func NewDistributor(users UserSource, catalog Catalog, ledger Ledger, history PurchaseHistory, network NetworkSource, plans PlanSource, bonuses BonusSink) *Distributor {
	return &Distributor{
		users:   users,
		catalog: catalog,
		ledger:  ledger,
		history: history,
		network: network,
		plans:   plans,
		bonuses: bonuses,
		now:     time.Now,
	}
}

// RecordProductPurchase records the buyer's purchase and distributes the
// resulting commissions. It returns false when the product is unknown or
// the purchase record cannot be written; commission failures after the
// purchase record are logged and swallowed, never rolled back. The buyer
// is passed in explicitly rather than read from ambient session state.
func (d *Distributor) RecordProductPurchase(ctx context.Context, buyer User, productID int64, paymentID, orderID string) bool {
	product, err := d.findProduct(ctx, productID)
	if err != nil {
		log.Printf("purchase rejected for user %d: %v", buyer.ID, err)
		return false
	}

	if err := d.recordPurchase(ctx, buyer, product, paymentID, orderID); err != nil {
		log.Printf("failed to record purchase of product %d for user %d: %v", productID, buyer.ID, err)
		return false
	}

	if err := d.distribute(ctx, buyer, product, paymentID); err != nil {
		// The purchase record stands; distribution is best-effort.
		log.Printf("commission distribution failed for user %d, product %d: %v", buyer.ID, productID, err)
	}

	return true
}

func (d *Distributor) findProduct(ctx context.Context, productID int64) (Product, error) {
	products, err := d.catalog.ListProducts(ctx)
	if err != nil {
		return Product{}, fmt.Errorf("product catalog: %w", err)
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %d not found", productID)
}

// recordPurchase appends the buyer's own retail transaction at full
// product price. No deductions apply here; this is the purchase itself,
// not a commission.
func (d *Distributor) recordPurchase(ctx context.Context, buyer User, product Product, paymentID, orderID string) error {
	return d.ledger.Append(ctx, Entry{
		UserID:      buyer.ID,
		Amount:      product.Price,
		Category:    CategoryRetailProfit,
		Description: fmt.Sprintf("Purchase of %s", product.Name),
		Status:      StatusCompleted,
		PaymentID:   paymentID,
		OrderID:     orderID,
		ProductID:   product.ID,
		OccurredAt:  d.now(),
	})
}

func (d *Distributor) distribute(ctx context.Context, buyer User, product Product, paymentID string) error {
	users, err := d.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("user list: %w", err)
	}

	sponsor, ok := ResolveSponsor(users, buyer.SponsorRef)
	if !ok {
		return nil
	}

	plan, err := d.plans.CommissionPlan(ctx)
	if err != nil {
		return fmt.Errorf("commission plan: %w", err)
	}

	if err := d.postDirectCommission(ctx, sponsor, product, plan, paymentID); err != nil {
		return err
	}

	if len(plan.LevelRates) > 0 {
		if err := d.payLevelOverrides(ctx, users, sponsor, product, plan, paymentID); err != nil {
			return err
		}
	}

	if err := d.evaluateRepurchase(ctx, buyer, sponsor.ID, product, paymentID); err != nil {
		return err
	}

	tree, err := d.network.NetworkTree(ctx, sponsor.ID)
	if err != nil {
		return fmt.Errorf("network tree: %w", err)
	}
	if err := d.creditMatchingBonus(ctx, sponsor.ID, tree); err != nil {
		return err
	}
	return d.evaluateRoyalty(ctx, sponsor.ID, tree)
}

// postDirectCommission credits the sponsor with the net retail profit and
// records the three deductions as negative entries. The repurchase
// allocation is posted under the repurchase-bonus category; the other two
// stay under retail profit. All four are ledger-visible for audit even
// though only the net amount represents a real credit.
func (d *Distributor) postDirectCommission(ctx context.Context, sponsor User, product Product, plan Plan, paymentID string) error {
	gross := product.Price.Mul(product.CommissionRate).Div(oneHundred)
	split := ApplyDeductions(gross, plan)
	occurred := d.now()

	entries := []Entry{
		{
			UserID:      sponsor.ID,
			Amount:      split.Net,
			Category:    CategoryRetailProfit,
			Description: fmt.Sprintf("Retail profit on %s", product.Name),
		},
		{
			UserID:      sponsor.ID,
			Amount:      split.TDS.Neg(),
			Category:    CategoryRetailProfit,
			Description: fmt.Sprintf("TDS deduction on %s", product.Name),
		},
		{
			UserID:      sponsor.ID,
			Amount:      split.AdminFee.Neg(),
			Category:    CategoryRetailProfit,
			Description: fmt.Sprintf("Admin fee deduction on %s", product.Name),
		},
		{
			UserID:      sponsor.ID,
			Amount:      split.RepurchaseAllocation.Neg(),
			Category:    CategoryRepurchaseBonus,
			Description: fmt.Sprintf("Repurchase allocation on %s", product.Name),
		},
	}

	for _, entry := range entries {
		entry.Status = StatusCompleted
		entry.PaymentID = paymentID
		entry.OccurredAt = occurred
		if err := d.ledger.Append(ctx, entry); err != nil {
			return fmt.Errorf("direct commission: %w", err)
		}
	}
	return nil
}
