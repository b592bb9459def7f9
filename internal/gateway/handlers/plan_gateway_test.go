package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

type fakePlanAdmin struct {
	plan  commission.Plan
	saved []*models.CommissionPlan
}

func (f *fakePlanAdmin) CommissionPlan(ctx context.Context) (commission.Plan, error) {
	return f.plan, nil
}

func (f *fakePlanAdmin) SavePlan(ctx context.Context, row *models.CommissionPlan) error {
	f.saved = append(f.saved, row)
	return nil
}

func planRouter(admin *fakePlanAdmin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPlanHTTPHandler(admin)
	r.GET("/api/v1/plan", h.GetPlan)
	r.POST("/api/v1/plan", h.UpdatePlan)
	return r
}

func postPlan(t *testing.T, r *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdatePlanSavesNewPlan(t *testing.T) {
	admin := &fakePlanAdmin{}
	r := planRouter(admin)

	w := postPlan(t, r, map[string]interface{}{
		"tds_rate":        "0.05",
		"admin_fee_rate":  "0.02",
		"repurchase_rate": "0.03",
		"level_rates":     map[string]string{"1": "0.01", "2": "0.005"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if len(admin.saved) != 1 {
		t.Fatalf("SavePlan called %d times, want 1", len(admin.saved))
	}
	saved := admin.saved[0]
	if saved.TDSRate != "0.05" || saved.AdminFeeRate != "0.02" || saved.RepurchaseRate != "0.03" {
		t.Errorf("saved rates = %s/%s/%s, want 0.05/0.02/0.03", saved.TDSRate, saved.AdminFeeRate, saved.RepurchaseRate)
	}
	if saved.LevelRates[1] != "0.01" || saved.LevelRates[2] != "0.005" {
		t.Errorf("saved level rates = %v, want levels 1 and 2", saved.LevelRates)
	}
}

func TestUpdatePlanRejectsMalformedRates(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			"non-numeric deduction rate",
			map[string]interface{}{
				"tds_rate":        "five percent",
				"admin_fee_rate":  "0.02",
				"repurchase_rate": "0.03",
			},
		},
		{
			"non-numeric level rate",
			map[string]interface{}{
				"tds_rate":        "0.05",
				"admin_fee_rate":  "0.02",
				"repurchase_rate": "0.03",
				"level_rates":     map[string]string{"1": "lots"},
			},
		},
		{
			"level below one",
			map[string]interface{}{
				"tds_rate":        "0.05",
				"admin_fee_rate":  "0.02",
				"repurchase_rate": "0.03",
				"level_rates":     map[string]string{"0": "0.01"},
			},
		},
		{
			"missing deduction rate",
			map[string]interface{}{
				"tds_rate":       "0.05",
				"admin_fee_rate": "0.02",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := &fakePlanAdmin{}
			r := planRouter(admin)

			w := postPlan(t, r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(admin.saved) != 0 {
				t.Errorf("SavePlan called %d times, want 0", len(admin.saved))
			}
		})
	}
}

func TestGetPlanReturnsActiveRates(t *testing.T) {
	admin := &fakePlanAdmin{
		plan: commission.Plan{
			TDSRate:      decimal.RequireFromString("0.05"),
			AdminFeeRate: decimal.RequireFromString("0.02"),
			LevelRates: map[int]decimal.Decimal{
				1: decimal.RequireFromString("0.01"),
			},
		},
	}
	r := planRouter(admin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TDSRate    string         `json:"tds_rate"`
			LevelRates map[int]string `json:"level_rates"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.TDSRate != "0.05" || resp.Data.LevelRates[1] != "0.01" {
		t.Errorf("response = %s, want success with tds 0.05 and level 1 rate 0.01", w.Body.String())
	}
}
