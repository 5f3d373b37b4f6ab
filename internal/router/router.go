package router

import (
	"net/http"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/handler"
	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/quotes"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	provider := quotes.NewBrapiClient(cfg.Quotes)

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// registration and login do not require a token
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below requires a valid token
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	txHandler := handler.NewTransactionHandler(db, cfg.App.PageSize)
	protected.POST("/transactions", txHandler.Create)
	protected.GET("/transactions", txHandler.List)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)

	classHandler := handler.NewAssetClassHandler(db)
	protected.GET("/asset-classes", classHandler.ListActive)

	portfolioHandler := handler.NewPortfolioHandler(db, provider)
	protected.GET("/portfolio/holdings", portfolioHandler.Holdings)
	protected.GET("/portfolio/summary", portfolioHandler.Summary)
	protected.GET("/portfolio/allocation", portfolioHandler.Allocation)
	protected.GET("/portfolio/dividends", portfolioHandler.Dividends)

	importHandler := handler.NewImportHandler()
	protected.POST("/import/parse", importHandler.Parse)

	quoteHandler := handler.NewQuoteHandler(db, provider)
	protected.POST("/quotes/refresh", quoteHandler.Refresh)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	// admin-only surface
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	admin.GET("/asset-classes", classHandler.ListAll)
	admin.POST("/asset-classes", classHandler.Create)
	admin.PUT("/asset-classes/:id", classHandler.Update)
	admin.DELETE("/asset-classes/:id", classHandler.Delete)

	adminHandler := handler.NewAdminHandler(db)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/promote", adminHandler.PromoteUser)
	admin.POST("/users/:id/ban", adminHandler.BanUser)
	admin.POST("/users/:id/unban", adminHandler.UnbanUser)
	admin.GET("/settings", adminHandler.ListSettings)
	admin.PUT("/settings/:key", adminHandler.UpdateSetting)

	logHandler := handler.NewAuditLogHandler(db, cfg.App.PageSize)
	admin.GET("/logs", logHandler.List)

	return r
}
