package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/budgety/budgety-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	transactionHandler *TransactionHandler,
	receiptHandler *ReceiptHandler,
	goalHandler *GoalHandler,
	calendarHandler *CalendarHandler,
	dashboardHandler *DashboardHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes run without RequireUser: the callback is what creates
	// the user row on first login
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/profile", authHandler.UpdateProfile)
	auth.POST("/logout", authHandler.Logout)

	protect := func(g *echo.Group) {
		g.Use(authMiddleware.Authenticate())
		g.Use(authMiddleware.RequireUser())
		g.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Account routes (protected)
	accounts := api.Group("/accounts")
	protect(accounts)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.POST("/:id/reconcile", accountHandler.ReconcileAccount)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	protect(transactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/:id/receipt", receiptHandler.UploadReceipt)
	transactions.GET("/:id/receipt", receiptHandler.GetReceipt)
	transactions.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Savings goal routes (protected)
	goals := api.Group("/goals")
	protect(goals)
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contribute", goalHandler.ContributeToGoal)

	// Calendar routes (protected)
	calendar := api.Group("/calendar")
	protect(calendar)
	calendar.GET("/:year/:month", calendarHandler.GetMonth)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	protect(dashboard)
	dashboard.GET("/summary", dashboardHandler.GetSummary)

	// WebSocket endpoint authenticates via token query param
	e.GET("/ws", wsHandler.HandleWS)
}
