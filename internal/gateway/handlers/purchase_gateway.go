package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"altura-network/internal/commission"
	"altura-network/internal/gateway/middleware"
	"altura-network/internal/network"
	"altura-network/internal/store"
	"altura-network/internal/wallet"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

type PurchaseHTTPHandler struct {
	users       *store.UserStore
	ledger      *store.LedgerStore
	catalog     commission.Catalog
	network     *network.Service
	wallet      *wallet.Service
	distributor *commission.Distributor
}

func NewPurchaseHTTPHandler(users *store.UserStore, ledger *store.LedgerStore, catalog commission.Catalog, networkService *network.Service, walletService *wallet.Service, distributor *commission.Distributor) *PurchaseHTTPHandler {
	return &PurchaseHTTPHandler{
		users:       users,
		ledger:      ledger,
		catalog:     catalog,
		network:     networkService,
		wallet:      walletService,
		distributor: distributor,
	}
}

type RecordPurchaseRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	OrderID   string `json:"order_id"`
}

// RecordPurchase is the public entry point for one purchase event. A
// false outcome carries no structured error detail; diagnostics go to the
// server log.
func (h *PurchaseHTTPHandler) RecordPurchase(c *gin.Context) {
	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request format: "+err.Error()))
		return
	}

	ctx := c.Request.Context()
	userID := c.GetInt64(middleware.ContextUserID)

	buyer, err := h.users.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse("No logged in user"))
		return
	}

	if ok := h.distributor.RecordProductPurchase(ctx, buyer, req.ProductID, req.PaymentID, req.OrderID); !ok {
		c.JSON(http.StatusUnprocessableEntity, errorResponse("Purchase could not be recorded"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Purchase recorded", gin.H{
		"recorded": true,
	}))
}

func (h *PurchaseHTTPHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list products: "+err.Error()))
		return
	}

	payload := make([]gin.H, 0, len(products))
	for _, p := range products {
		payload = append(payload, gin.H{
			"id":              p.ID,
			"name":            p.Name,
			"price":           p.Price.StringFixed(2),
			"commission_rate": p.CommissionRate.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, successResponse("Products fetched", payload))
}

func (h *PurchaseHTTPHandler) GetNetwork(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	tree, err := h.network.NetworkTree(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load network: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse("Network fetched", gin.H{
		"tree":        tree,
		"team_size":   commission.SubtreeSize(tree),
		"total_pairs": commission.PairCount(tree),
	}))
}

func (h *PurchaseHTTPHandler) ListTransactions(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.ledger.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list transactions: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse("Transactions fetched", entries))
}

func (h *PurchaseHTTPHandler) GetWallet(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	balance, err := h.wallet.Balance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to get wallet: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, successResponse("Wallet fetched", gin.H{
		"balance": balance.StringFixed(2),
	}))
}
