package commission

import "github.com/shopspring/decimal"

// DeductionSplit is the outcome of applying the plan's deduction
// percentages to a gross commission. Net + TDS + AdminFee +
// RepurchaseAllocation always equals the gross amount.
type DeductionSplit struct {
	Net                  decimal.Decimal
	TDS                  decimal.Decimal
	AdminFee             decimal.Decimal
	RepurchaseAllocation decimal.Decimal
}

// ApplyDeductions splits a gross commission into its net amount and three
// deduction line items. Zero-valued plan rates contribute nothing.
func ApplyDeductions(gross decimal.Decimal, plan Plan) DeductionSplit {
	tds := gross.Mul(plan.TDSRate)
	adminFee := gross.Mul(plan.AdminFeeRate)
	repurchase := gross.Mul(plan.RepurchaseRate)

	return DeductionSplit{
		Net:                  gross.Sub(tds).Sub(adminFee).Sub(repurchase),
		TDS:                  tds,
		AdminFee:             adminFee,
		RepurchaseAllocation: repurchase,
	}
}
