package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketpulse/server/internal/analysis"
	"marketpulse/server/internal/cache"
	"marketpulse/server/internal/database"
	"marketpulse/server/internal/models"
	"marketpulse/server/internal/queue"
)

type Handler struct {
	db        *database.Database
	service   *analysis.Service
	cache     *cache.ForecastCache
	saleQueue *queue.SaleQueue
	logger    *logrus.Logger
}

// ForecastRequest carries the query parameters for forecast endpoints.
type ForecastRequest struct {
	City           string `form:"city"`
	State          string `form:"state"`
	PropertyType   string `form:"property_type"`
	LookbackMonths int    `form:"lookback_months"`
	ForecastMonths int    `form:"forecast_months"`
}

type RegionRequest struct {
	Name   string   `json:"name" binding:"required"`
	Cities []string `json:"cities" binding:"required"`
}

// NewHandler wires the API against its collaborators. The forecast cache may
// be nil, in which case every request recomputes.
func NewHandler(db *database.Database, service *analysis.Service, forecastCache *cache.ForecastCache, saleQueue *queue.SaleQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:        db,
		service:   service,
		cache:     forecastCache,
		saleQueue: saleQueue,
		logger:    logger,
	}
}

// GetPriceForecast serves the market forecast for a city/state/type slice,
// consulting the result cache when one is configured. A structured
// insufficient-data result is still a 200; callers decide how to degrade.
func (h *Handler) GetPriceForecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse forecast request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	query := analysis.ForecastQuery{
		City:           req.City,
		State:          req.State,
		PropertyType:   req.PropertyType,
		LookbackMonths: req.LookbackMonths,
		ForecastMonths: req.ForecastMonths,
	}
	if query.LookbackMonths <= 0 {
		query.LookbackMonths = analysis.DefaultLookbackMonths
	}
	if query.ForecastMonths <= 0 {
		query.ForecastMonths = analysis.DefaultForecastMonths
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), query.CacheKey()); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		} else if err != cache.ErrCacheMiss {
			h.logger.WithError(err).Warn("Forecast cache lookup failed")
		}
	}

	result, err := h.service.GetPriceForecast(c.Request.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute price forecast")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute price forecast"})
		return
	}

	// Insufficient-data results are not cached so a market crossing the
	// minimum-months threshold shows up on the next request.
	if h.cache != nil && result.Success {
		if err := h.cache.Set(c.Request.Context(), query.CacheKey(), result); err != nil {
			h.logger.WithError(err).Warn("Failed to cache forecast result")
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestmentAnalysis serves projected values and a risk rating for a
// subject property value in the requested market.
func (h *Handler) GetInvestmentAnalysis(c *gin.Context) {
	currentValue, err := strconv.ParseFloat(c.Query("current_value"), 64)
	if err != nil || currentValue <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_value must be a positive number"})
		return
	}

	var req ForecastRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse investment request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	query := analysis.ForecastQuery{
		City:         req.City,
		State:        req.State,
		PropertyType: req.PropertyType,
	}

	result, err := h.service.GetInvestmentAnalysis(c.Request.Context(), currentValue, query)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute investment analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute investment analysis"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMarketStats serves headline statistics over the filtered sales.
func (h *Handler) GetMarketStats(c *gin.Context) {
	filter := saleFilterFromQuery(c)

	stats, err := h.db.GetMarketStats(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMonthlyStats serves the aggregated monthly series the forecast runs on,
// for charting.
func (h *Handler) GetMonthlyStats(c *gin.Context) {
	filter := saleFilterFromQuery(c)

	records, err := h.db.GetClosedSales(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get closed sales")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get monthly stats"})
		return
	}

	c.JSON(http.StatusOK, analysis.AggregateMonthly(records, filter))
}

// GetRecentSales serves the most recently closed sales.
func (h *Handler) GetRecentSales(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 10
	}

	sales, err := h.db.GetRecentSales(c.Request.Context(), limit, saleFilterFromQuery(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get recent sales")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recent sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// IngestSales accepts a batch of closed-sale records and enqueues it for the
// batch processor.
func (h *Handler) IngestSales(c *gin.Context) {
	var sales []*models.SaleRecord
	if err := c.ShouldBindJSON(&sales); err != nil {
		h.logger.WithError(err).Error("Failed to parse sales batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sales payload"})
		return
	}
	if len(sales) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty sales payload"})
		return
	}

	if err := h.saleQueue.Push(sales); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue sales batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ingestion queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":   "accepted",
		"enqueued": len(sales),
	})
}

// GetRegions returns all configured market regions.
func (h *Handler) GetRegions(c *gin.Context) {
	regions, err := h.db.GetRegions()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get regions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get regions"})
		return
	}

	c.JSON(http.StatusOK, regions)
}

// GetRegion returns a single region by name.
func (h *Handler) GetRegion(c *gin.Context) {
	region, err := h.db.GetRegionByName(c.Param("name"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get region")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get region"})
		return
	}
	if region == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}

	c.JSON(http.StatusOK, region)
}

// UpdateRegion creates or replaces a region and its city list.
func (h *Handler) UpdateRegion(c *gin.Context) {
	var req RegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse region request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	region := models.Region{Name: req.Name, Cities: req.Cities}
	if err := h.db.UpdateRegion(region); err != nil {
		h.logger.WithError(err).Error("Failed to update region")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update region"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Region updated successfully"})
}

// DeleteRegion removes a region and its cities.
func (h *Handler) DeleteRegion(c *gin.Context) {
	if err := h.db.DeleteRegion(c.Param("name")); err != nil {
		h.logger.WithError(err).Error("Failed to delete region")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Region deleted successfully"})
}

func saleFilterFromQuery(c *gin.Context) models.SaleFilter {
	return models.SaleFilter{
		City:         c.Query("city"),
		State:        c.Query("state"),
		PropertyType: c.Query("property_type"),
	}
}
