package commission

import (
	"testing"

	"github.com/shopspring/decimal"
)

func standardPlan() Plan {
	return Plan{
		TDSRate:        decimal.RequireFromString("0.05"),
		AdminFeeRate:   decimal.RequireFromString("0.02"),
		RepurchaseRate: decimal.RequireFromString("0.03"),
	}
}

func TestApplyDeductionsConservation(t *testing.T) {
	plan := standardPlan()

	for _, raw := range []string{"0", "0.01", "1", "99.99", "100", "1234.56", "1000000"} {
		gross := decimal.RequireFromString(raw)
		split := ApplyDeductions(gross, plan)

		total := split.Net.Add(split.TDS).Add(split.AdminFee).Add(split.RepurchaseAllocation)
		if !total.Equal(gross) {
			t.Errorf("gross %s: split sums to %s, want %s", raw, total, gross)
		}
	}
}

func TestApplyDeductionsSplitsGross(t *testing.T) {
	gross := decimal.NewFromInt(100)
	split := ApplyDeductions(gross, standardPlan())

	if want := decimal.NewFromInt(90); !split.Net.Equal(want) {
		t.Errorf("net = %s, want %s", split.Net, want)
	}
	if want := decimal.NewFromInt(5); !split.TDS.Equal(want) {
		t.Errorf("tds = %s, want %s", split.TDS, want)
	}
	if want := decimal.NewFromInt(2); !split.AdminFee.Equal(want) {
		t.Errorf("admin fee = %s, want %s", split.AdminFee, want)
	}
	if want := decimal.NewFromInt(3); !split.RepurchaseAllocation.Equal(want) {
		t.Errorf("repurchase allocation = %s, want %s", split.RepurchaseAllocation, want)
	}
}

func TestApplyDeductionsZeroValuePlan(t *testing.T) {
	gross := decimal.RequireFromString("250.50")
	split := ApplyDeductions(gross, Plan{})

	if !split.Net.Equal(gross) {
		t.Errorf("net = %s, want gross %s when no rates are set", split.Net, gross)
	}
	for name, amount := range map[string]decimal.Decimal{
		"tds":        split.TDS,
		"admin fee":  split.AdminFee,
		"repurchase": split.RepurchaseAllocation,
	} {
		if !amount.IsZero() {
			t.Errorf("%s = %s, want 0", name, amount)
		}
	}
}
