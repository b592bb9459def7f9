package commission

import (
	"context"
	"fmt"
)

// royaltyLegThreshold is the subtree size both legs must exceed before a
// sponsor qualifies for the royalty bonus.
const royaltyLegThreshold = 10

// creditedPairs computes the pair count a sponsor is credited for. The
// root-level pair count plus the whole-tree surplus reduces to the
// whole-tree pair count; the redundant shape is kept deliberately so the
// historical formula stays visible.
func creditedPairs(root *NetworkMember) int {
	if root == nil {
		return 0
	}

	left := SubtreeSize(root.Left)
	right := SubtreeSize(root.Right)
	rootPairs := left
	if right < left {
		rootPairs = right
	}

	total := PairCount(root)
	credited := rootPairs
	if extra := total - rootPairs; extra > 0 {
		credited += extra
	}
	return credited
}

func (d *Distributor) creditMatchingBonus(ctx context.Context, sponsorID int64, root *NetworkMember) error {
	pairs := creditedPairs(root)
	if pairs <= 0 {
		return nil
	}
	if err := d.bonuses.AddTeamMatchingBonus(ctx, sponsorID, pairs); err != nil {
		return fmt.Errorf("team matching bonus: %w", err)
	}
	return nil
}

// evaluateRoyalty pays a turnover-based royalty when both legs of the
// sponsor's tree exceed the qualification threshold. Turnover sums the
// absolute amounts of the current month's retail-profit and
// repurchase-bonus entries, so deduction line items contribute positively.
func (d *Distributor) evaluateRoyalty(ctx context.Context, sponsorID int64, root *NetworkMember) error {
	if root == nil {
		return nil
	}
	if SubtreeSize(root.Left) <= royaltyLegThreshold || SubtreeSize(root.Right) <= royaltyLegThreshold {
		return nil
	}

	now := d.now()
	turnover, err := d.ledger.MonthlyTurnover(ctx, now.Year(), now.Month())
	if err != nil {
		return fmt.Errorf("monthly turnover: %w", err)
	}
	if !turnover.IsPositive() {
		return nil
	}

	if err := d.bonuses.AddRoyaltyBonus(ctx, sponsorID, turnover); err != nil {
		return fmt.Errorf("royalty bonus: %w", err)
	}
	return nil
}

// evaluateRepurchase detects whether the buyer has bought this product
// before and, if so, triggers the repurchase bonus for the sponsor.
// Detection is keyed on the buyer, not the sponsor being credited; the
// record written for the purchase at hand is excluded by payment id.
func (d *Distributor) evaluateRepurchase(ctx context.Context, buyer User, sponsorID int64, product Product, paymentID string) error {
	records, err := d.history.PriorPurchases(ctx, buyer.ID)
	if err != nil {
		return fmt.Errorf("prior purchases: %w", err)
	}

	for _, rec := range records {
		if rec.ProductID == product.ID && rec.PaymentID != paymentID {
			if err := d.bonuses.AddRepurchaseBonus(ctx, sponsorID, product.Price, product.Name); err != nil {
				return fmt.Errorf("repurchase bonus: %w", err)
			}
			return nil
		}
	}
	return nil
}
