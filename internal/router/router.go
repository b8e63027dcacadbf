package router

import (
	"time"

	"github.com/juanmiguelzamora/StockWise/internal/config"
	"github.com/juanmiguelzamora/StockWise/internal/handler"
	"github.com/juanmiguelzamora/StockWise/internal/infra"
	"github.com/juanmiguelzamora/StockWise/internal/middleware"
	"github.com/juanmiguelzamora/StockWise/internal/repository"
	"github.com/juanmiguelzamora/StockWise/internal/service"
	"github.com/juanmiguelzamora/StockWise/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	trendRepo := repository.NewTrendItemRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, dispatcher, cfg.LowStockThreshold)
	dashboardSvc := service.NewDashboardService(productRepo, movementRepo, rdb, cfg.LowStockThreshold)
	trendSvc := service.NewTrendService(trendRepo)
	assistantSvc := service.NewAssistantService(productRepo, movementRepo, dashboardSvc, trendSvc, cfg.LowStockThreshold)
	authSvc := service.NewAuthService(userRepo, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	assistantH := handler.NewAssistantHandler(assistantSvc)
	trendsH := handler.NewTrendHandler(trendSvc)
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUserHandler(authSvc)
	reportsH := handler.NewReportsHandler(productRepo, cfg.LowStockThreshold)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Register)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/password-reset", authH.RequestReset)
		auth.POST("/password-reset/confirm", authH.ConfirmReset)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Products — all authenticated users can read
		v1.GET("/products", middleware.RequireRole("staff", "admin"), inventoryH.List)
		v1.GET("/products/:id", middleware.RequireRole("staff", "admin"), inventoryH.Get)

		// Stock mutations — staff and admin
		v1.POST("/products/:id/adjust_stock", middleware.RequireRole("staff", "admin"), inventoryH.AdjustStock)
		v1.PATCH("/products/:id/quantity", middleware.RequireRole("staff", "admin"), inventoryH.SetQuantity)

		// Catalog writes — admin only
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", inventoryH.Create)
			prods.PUT("/:id", inventoryH.Update)
			prods.DELETE("/:id", inventoryH.Deactivate)
			prods.PATCH("/:id/reactivate", inventoryH.Reactivate)
		}

		// History ledger
		v1.GET("/history", middleware.RequireRole("staff", "admin"), inventoryH.History)

		// Dashboard
		dash := v1.Group("/dashboard", middleware.RequireRole("staff", "admin"))
		{
			dash.GET("/summary", dashboardH.Summary)
			dash.GET("/weekly", dashboardH.Weekly)
		}

		// AI assistant
		v1.POST("/ai/ask", middleware.RequireRole("staff", "admin"), assistantH.Ask)

		// Trend predictor
		trends := v1.Group("/trends")
		{
			trends.POST("", middleware.RequireRole("admin"), trendsH.Record)
			trends.GET("/predictions", middleware.RequireRole("staff", "admin"), trendsH.Predictions)
		}

		// Reports — admin only
		v1.GET("/reports/inventory.pdf", middleware.RequireRole("admin"), reportsH.Inventory)

		// User administration — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PATCH("/:id/role", usersH.UpdateRole)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
