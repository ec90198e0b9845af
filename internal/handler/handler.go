package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/cache"
	"cropcast/internal/catalog"
	"cropcast/internal/forecast"
	"cropcast/internal/recommend"
	"cropcast/internal/registry"
	"cropcast/models"
)

// Handler exposes the forecaster and recommender over the JSON boundary.
type Handler struct {
	forecaster  *forecast.Forecaster
	recommender *recommend.Recommender
	catalog     *catalog.Catalog
	registry    *registry.Registry
	cache       *cache.TTLCache
	defaultDays int
	logger      zerolog.Logger
}

// New wires the HTTP handler.
func New(f *forecast.Forecaster, r *recommend.Recommender, cat *catalog.Catalog,
	reg *registry.Registry, c *cache.TTLCache, defaultDays int) *Handler {
	return &Handler{
		forecaster:  f,
		recommender: r,
		catalog:     cat,
		registry:    reg,
		cache:       c,
		defaultDays: defaultDays,
		logger:      log.With().Str("component", "http").Logger(),
	}
}

// Register attaches all routes to the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)
	r.POST("/forecast-price", h.ForecastPrice)
	r.POST("/recommend-crop", h.RecommendCrop)

	v1 := r.Group("/api/v1")
	v1.GET("/crops", h.Crops)
	v1.GET("/states", h.States)
}

// Index describes the service.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "cropcast - crop price forecasting and recommendation API",
		"version": "1.0",
		"endpoints": gin.H{
			"forecast_price": "/forecast-price",
			"recommend_crop": "/recommend-crop",
			"health_check":   "/health",
		},
		"status": "active",
	})
}

// Health reports whether the trained artifacts are serving predictions.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"models_loaded":     h.registry.PriceLoaded(),
		"crop_model_loaded": h.registry.CropScorer() != nil,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}

// ForecastPrice handles POST /forecast-price.
func (h *Handler) ForecastPrice(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}
	if req.Crop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "crop name is required"})
		return
	}
	days := h.defaultDays
	if req.Days != nil {
		days = *req.Days
	}

	cacheKey := fmt.Sprintf("forecast:%s:%d", req.Crop, days)
	if cached, ok := h.cache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := h.forecaster.Forecast(req.Crop, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cache.Set(cacheKey, result)
	c.JSON(http.StatusOK, result)
}

// RecommendCrop handles POST /recommend-crop. The payload selects the
// mode: presence of "crop" means crop analysis, otherwise location mode.
func (h *Handler) RecommendCrop(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	if req.Crop != "" {
		analysis, err := h.recommender.Analyze(req.Crop, req.State)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, analysis)
		return
	}

	if req.State == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state is required for location-based recommendations"})
		return
	}
	month := int(time.Now().Month())
	if req.Month != nil {
		month = *req.Month
	}

	rec, err := h.recommender.Recommend(req.State, month, req.District)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Crops lists the reference catalogue.
func (h *Handler) Crops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"crops": h.catalog.Crops()})
}

// States lists every state with a cultivation profile.
func (h *Handler) States(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": h.catalog.States()})
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		unknownCrop *models.UnknownCropError
		badRange    *models.InvalidRangeError
		noModel     *models.ModelUnavailableError
	)

	switch {
	case errors.As(err, &unknownCrop):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &badRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &noModel):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
