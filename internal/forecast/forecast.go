package forecast

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/catalog"
	"cropcast/internal/features"
	"cropcast/internal/history"
	"cropcast/internal/registry"
	"cropcast/models"
)

// featureWindow is how much trailing history the roll-forward keeps; enough
// for the 30-day moving average.
const featureWindow = 30

// Forecaster produces day-by-day price forecasts through autoregressive
// roll-forward over the trained price model. Stateless per call.
type Forecaster struct {
	registry *registry.Registry
	history  *history.Store
	catalog  *catalog.Catalog
	minDays  int
	maxDays  int
	logger   zerolog.Logger
}

// New wires a forecaster. minDays/maxDays bound the accepted horizon.
func New(reg *registry.Registry, hist *history.Store, cat *catalog.Catalog, minDays, maxDays int) *Forecaster {
	return &Forecaster{
		registry: reg,
		history:  hist,
		catalog:  cat,
		minDays:  minDays,
		maxDays:  maxDays,
		logger:   log.With().Str("component", "forecaster").Logger(),
	}
}

// Forecast returns exactly days ordered points, one per calendar day
// starting the day after the latest known observation, plus summary
// statistics over those points.
//
// The roll-forward feeds each prediction back into the working history
// before predicting the next day, so forecast error compounds with the
// horizon. That is a documented property of the method, not an accident.
func (f *Forecaster) Forecast(crop string, days int) (*models.ForecastResult, error) {
	if days < f.minDays || days > f.maxDays {
		return nil, &models.InvalidRangeError{Field: "days", Value: days, Min: f.minDays, Max: f.maxDays}
	}
	if !f.registry.KnowsCrop(crop) {
		return nil, &models.UnknownCropError{Crop: crop}
	}

	base := f.basePrice(crop)
	window, latest, ok := f.history.Window(crop, featureWindow)
	if !ok {
		// Vocabulary crop without history: start the walk from its base price.
		window = []float64{base}
		latest = time.Now().Truncate(24 * time.Hour)
	}
	floor := base * 0.7

	rng := f.registry.Rand(crop, days)
	points := make([]models.ForecastPoint, 0, days)
	prices := make([]float64, 0, days)

	for i := 1; i <= days; i++ {
		date := latest.AddDate(0, 0, i)
		feats := features.Vector(window, int(date.Month()))

		price := f.registry.NextPrice(crop, feats, rng)
		if price < floor {
			price = floor
		}
		price = round2(price)

		window = append(window, price)
		if len(window) > featureWindow {
			window = window[1:]
		}

		points = append(points, models.ForecastPoint{
			Date:  date.Format("2006-01-02"),
			Price: price,
			Day:   date.Weekday().String(),
		})
		prices = append(prices, price)
	}

	result := &models.ForecastResult{
		Crop:         crop,
		ForecastDays: days,
		Predictions:  points,
		Summary:      summarize(prices),
		Source:       f.registry.Source(),
		GeneratedAt:  time.Now(),
	}

	f.logger.Debug().
		Str("crop", crop).
		Int("days", days).
		Str("trend", result.Summary.PriceTrend).
		Msg("forecast generated")

	return result, nil
}

func (f *Forecaster) basePrice(crop string) float64 {
	fallback := 2000.0
	if p, ok := f.catalog.Profile(crop); ok {
		fallback = p.BasePrice
	}
	return f.registry.BasePrice(crop, fallback)
}

// summarize derives the forecast statistics from the ordered price
// sequence. A sequence ending exactly where it started is stable.
func summarize(prices []float64) models.ForecastSummary {
	min, max := prices[0], prices[0]
	for _, p := range prices {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}

	trend := models.TrendStable
	switch {
	case prices[len(prices)-1] > prices[0]:
		trend = models.TrendIncreasing
	case prices[len(prices)-1] < prices[0]:
		trend = models.TrendDecreasing
	}

	return models.ForecastSummary{
		AveragePrice: round2(features.Average(prices)),
		MinPrice:     round2(min),
		MaxPrice:     round2(max),
		PriceTrend:   trend,
		Volatility:   round2(features.StdDev(prices)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
