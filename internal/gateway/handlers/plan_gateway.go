package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

// PlanAdmin is the slice of the plan store the gateway needs: reading the
// active plan and replacing it.
type PlanAdmin interface {
	CommissionPlan(ctx context.Context) (commission.Plan, error)
	SavePlan(ctx context.Context, row *models.CommissionPlan) error
}

type PlanHTTPHandler struct {
	plans PlanAdmin
}

func NewPlanHTTPHandler(plans PlanAdmin) *PlanHTTPHandler {
	return &PlanHTTPHandler{plans: plans}
}

type UpdatePlanRequest struct {
	TDSRate        string         `json:"tds_rate" binding:"required"`
	AdminFeeRate   string         `json:"admin_fee_rate" binding:"required"`
	RepurchaseRate string         `json:"repurchase_rate" binding:"required"`
	LevelRates     map[int]string `json:"level_rates"`
}

// UpdatePlan replaces the active commission plan. The store deactivates
// the previous plan and drops the cache, so the next purchase picks up the
// new rates.
func (h *PlanHTTPHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	for _, raw := range []string{req.TDSRate, req.AdminFeeRate, req.RepurchaseRate} {
		if _, err := decimal.NewFromString(raw); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid rate "+raw))
			return
		}
	}

	levelRates := make(models.LevelRateMap, len(req.LevelRates))
	for level, raw := range req.LevelRates {
		if level < 1 {
			c.JSON(http.StatusBadRequest, errorResponse("Level numbers start at 1"))
			return
		}
		if _, err := decimal.NewFromString(raw); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("Invalid rate "+raw))
			return
		}
		levelRates[level] = raw
	}

	row := models.CommissionPlan{
		TDSRate:        req.TDSRate,
		AdminFeeRate:   req.AdminFeeRate,
		RepurchaseRate: req.RepurchaseRate,
		LevelRates:     levelRates,
	}
	if err := h.plans.SavePlan(c.Request.Context(), &row); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save commission plan: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse("Commission plan updated", gin.H{
		"id": row.ID,
	}))
}

// GetPlan returns the active plan; a system with no plan row reports all
// rates as zero.
func (h *PlanHTTPHandler) GetPlan(c *gin.Context) {
	plan, err := h.plans.CommissionPlan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load commission plan: "+err.Error()))
		return
	}

	levelRates := make(map[int]string, len(plan.LevelRates))
	for level, rate := range plan.LevelRates {
		levelRates[level] = rate.String()
	}

	c.JSON(http.StatusOK, successResponse("Commission plan fetched", gin.H{
		"tds_rate":        plan.TDSRate.String(),
		"admin_fee_rate":  plan.AdminFeeRate.String(),
		"repurchase_rate": plan.RepurchaseRate.String(),
		"level_rates":     levelRates,
	}))
}
