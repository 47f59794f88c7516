package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/auth"
	"github.com/shelflife/shelflife/internal/circulation"
	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/database"
	"github.com/shelflife/shelflife/internal/database/books"
	"github.com/shelflife/shelflife/internal/database/transactions"
	"github.com/shelflife/shelflife/internal/database/users"
)

// RouterConfig carries the dependencies for all endpoints, keeping the
// router constructor's parameter list flat and testable.
type RouterConfig struct {
	Database    *database.Database
	AuthService *auth.Service
	Circulation *circulation.Service
	AuthConfig  config.Auth
	ClientURL   string
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	if cfg.ClientURL != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.ClientURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	gate := auth.NewMiddleware(cfg.AuthConfig.TokenSecret)

	bookRepo := books.NewRepository(cfg.Database.DB)
	userRepo := users.NewRepository(cfg.Database.DB)
	txRepo := transactions.NewRepository(cfg.Database.DB)

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.AuthConfig)
	booksController := NewBooksController(bookRepo)
	circulationController := NewCirculationController(cfg.Circulation, txRepo, userRepo)
	usersController := NewUsersController(txRepo)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/v1/api")

	// Authentication
	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authController.Register)
	authRoutes.POST("/login", authController.Login)
	authRoutes.GET("/logout", gate.RequireAuth(), authController.Logout)

	// Catalog, visible to any authenticated caller
	api.GET("/books", gate.RequireAuth(), booksController.GetAllBooks)

	// Lending operations, admin only
	txRoutes := api.Group("/transactions", gate.RequireAuth(), gate.RequireAdmin())
	txRoutes.POST("", circulationController.IssueBook)
	txRoutes.GET("", circulationController.GetAllTransactions)
	txRoutes.GET("/overdue", circulationController.GetOverdueTransactions)
	txRoutes.PUT("/:id", circulationController.UpdateBookStock)
	txRoutes.POST("/add", circulationController.AddBook)
	txRoutes.GET("/all", circulationController.GetAllUsers)
	txRoutes.PUT("/return/:id", circulationController.ReturnBook)
	txRoutes.PUT("/renew/:id", circulationController.RenewBook)

	// A member's own lending history
	api.GET("/user/:id", gate.RequireAuth(), usersController.GetUserHistory)

	return router
}
