package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"altura-network/config"
	"altura-network/internal/catalog"
	"altura-network/internal/commission"
	"altura-network/internal/database"
	"altura-network/internal/gateway/handlers"
	"altura-network/internal/gateway/middleware"
	"altura-network/internal/network"
	"altura-network/internal/store"
	"altura-network/internal/wallet"
)

func main() {
	cfg := config.LoadConfig()

	redisClient := config.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userStore := store.NewUserStore(db)
	productStore := store.NewProductStore(db)
	ledgerStore := store.NewLedgerStore(db)
	planStore := store.NewPlanStore(db, redisClient)

	networkService := network.NewService(db)
	walletService := wallet.NewService(db, wallet.Rates{
		RepurchaseRate: mustRate(cfg.Bonus.RepurchaseRate),
		PairValue:      mustRate(cfg.Bonus.PairValue),
		RoyaltyRate:    mustRate(cfg.Bonus.RoyaltyRate),
	})

	var productCatalog commission.Catalog = productStore
	if cfg.Catalog.URL != "" {
		productCatalog = catalog.NewClient(cfg.Catalog.URL)
		log.Printf("Using remote product catalog at %s", cfg.Catalog.URL)
	}

	distributor := commission.NewDistributor(
		userStore,
		productCatalog,
		ledgerStore,
		ledgerStore,
		networkService,
		planStore,
		walletService,
	)

	jwtSecret := []byte(cfg.Auth.JWTSecret)
	userHandler := handlers.NewUserHTTPHandler(userStore, networkService, jwtSecret)
	purchaseHandler := handlers.NewPurchaseHTTPHandler(userStore, ledgerStore, productCatalog, networkService, walletService, distributor)
	planHandler := handlers.NewPlanHTTPHandler(planStore)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.Server.RateLimit))

	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/products", purchaseHandler.ListProducts)
		protected.POST("/purchases", purchaseHandler.RecordPurchase)
		protected.GET("/network", purchaseHandler.GetNetwork)
		protected.GET("/transactions", purchaseHandler.ListTransactions)
		protected.GET("/wallet", purchaseHandler.GetWallet)
		protected.GET("/plan", planHandler.GetPlan)
		protected.POST("/plan", planHandler.UpdatePlan)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func mustRate(raw string) decimal.Decimal {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("Invalid bonus rate %q: %v", raw, err)
	}
	return rate
}
