package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/forecast", handler.GetPriceForecast)
		api.GET("/investment", handler.GetInvestmentAnalysis)
		api.GET("/stats", handler.GetMarketStats)
		api.GET("/monthly-stats", handler.GetMonthlyStats)
		api.GET("/recent-sales", handler.GetRecentSales)
		api.POST("/sales", handler.IngestSales)

		api.GET("/regions", handler.GetRegions)
		api.GET("/regions/:name", handler.GetRegion)
		api.PUT("/regions", handler.UpdateRegion)
		api.DELETE("/regions/:name", handler.DeleteRegion)
	}
}
