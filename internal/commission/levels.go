package commission

import (
	"context"
	"fmt"
)

// payLevelOverrides walks the upline chain above the purchasing sponsor
// and posts one net retail-profit entry per configured level. The walk is
// bounded by the highest configured level, not by graph depth, so a
// malformed sponsor graph with a cycle still terminates.
//
// The deduction split is applied to each override, but unlike the direct
// commission the line items are not posted as separate ledger entries:
// only the net amount is ledgered.
func (d *Distributor) payLevelOverrides(ctx context.Context, users []User, sponsor User, product Product, plan Plan, paymentID string) error {
	maxLevel := plan.MaxLevel()
	currentID := sponsor.ID

	for level := 1; level <= maxLevel; level++ {
		current, ok := userByID(users, currentID)
		if !ok || current.SponsorRef == "" {
			break
		}

		upline, ok := ResolveSponsor(users, current.SponsorRef)
		if !ok {
			break
		}

		if rate, ok := plan.LevelRates[level]; ok {
			amount := product.Price.Mul(rate)
			split := ApplyDeductions(amount, plan)

			entry := Entry{
				UserID:      upline.ID,
				Amount:      split.Net,
				Category:    CategoryRetailProfit,
				Description: fmt.Sprintf("Level %d commission on %s", level, product.Name),
				Status:      StatusCompleted,
				Level:       level,
				PaymentID:   paymentID,
				OccurredAt:  d.now(),
			}
			if err := d.ledger.Append(ctx, entry); err != nil {
				return fmt.Errorf("level %d commission: %w", level, err)
			}
		}

		currentID = upline.ID
	}

	return nil
}
