package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AccountHandler *AccountHandler
	Log            zerolog.Logger
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "stocksim-api",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API group
	api := e.Group("/api")

	account := api.Group("/account")
	{
		account.POST("", config.AccountHandler.CreateAccount)
		account.GET("", config.AccountHandler.GetStatement)
		account.POST("/deposit", config.AccountHandler.Deposit)
		account.POST("/withdraw", config.AccountHandler.Withdraw)
		account.POST("/buy", config.AccountHandler.Buy)
		account.POST("/sell", config.AccountHandler.Sell)
		account.GET("/holdings", config.AccountHandler.GetHoldings)
		account.GET("/transactions", config.AccountHandler.ListTransactions)
		account.GET("/transactions/:id", config.AccountHandler.GetTransaction)
	}
}
