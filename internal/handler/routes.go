package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, accountHandler *AccountHandler, itemHandler *ItemHandler, revisionHandler *RevisionHandler, forecastHandler *ForecastHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Account routes
	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:name", accountHandler.GetAccount)
	accounts.PUT("/:name", accountHandler.UpdateAccount)
	accounts.DELETE("/:name", accountHandler.DeleteAccount)

	// Recurring item routes
	items := api.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.GET("", itemHandler.GetItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	// Budget revision routes
	revisions := api.Group("/revisions")
	revisions.POST("", revisionHandler.CreateRevision)
	revisions.GET("", revisionHandler.GetRevisions)
	revisions.GET("/:id", revisionHandler.GetRevision)
	revisions.DELETE("/:id", revisionHandler.DeleteRevision)

	// Forecast routes
	forecast := api.Group("/forecast")
	forecast.GET("", forecastHandler.GetForecast)
	forecast.GET("/goal", forecastHandler.GetGoalEstimate)
	forecast.GET("/what-if", forecastHandler.GetTrimSuggestions)
	forecast.POST("/export", forecastHandler.ExportForecast)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/upcoming", dashboardHandler.GetUpcoming)

	// WebSocket endpoint for change notifications
	e.GET("/ws", wsHandler.HandleWS)
}
