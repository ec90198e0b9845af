package models

import (
	"time"
)

// PriceObservation represents a single historical mandi price record
type PriceObservation struct {
	Crop       string    `json:"crop" db:"crop"`
	Market     string    `json:"market" db:"market"`
	State      string    `json:"state" db:"state"`
	Date       time.Time `json:"date" db:"date"`
	Price      float64   `json:"price" db:"price"`
	ArrivalQty float64   `json:"arrival_qty,omitempty" db:"arrival_qty"`
}

// ForecastPoint is one predicted day in a price forecast
type ForecastPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Day   string  `json:"day"`
}

// Price trend values for ForecastSummary
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// ForecastSummary holds summary statistics over an ordered forecast sequence
type ForecastSummary struct {
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	PriceTrend   string  `json:"price_trend"`
	Volatility   float64 `json:"volatility"`
}

// Provenance values carried on every forecast response
const (
	SourceModel     = "model"
	SourceSynthetic = "synthetic_fallback"
)

// ForecastResult is the full output of the price forecaster
type ForecastResult struct {
	Crop         string          `json:"crop"`
	ForecastDays int             `json:"forecast_days"`
	Predictions  []ForecastPoint `json:"predictions"`
	Summary      ForecastSummary `json:"summary"`
	Source       string          `json:"source"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// CropProfile is the static reference entry for one crop
type CropProfile struct {
	Name      string   `json:"name"`
	Months    []int    `json:"months"` // planting window, calendar months 1-12
	States    []string `json:"states"`
	BaseScore float64  `json:"base_score"`
	BasePrice float64  `json:"base_price"` // INR per quintal
	BaseYield float64  `json:"base_yield"` // tonnes per hectare
	Reason    string   `json:"reason"`
}

// PlantsIn reports whether the crop's planting window covers the given month.
func (p CropProfile) PlantsIn(month int) bool {
	for _, m := range p.Months {
		if m == month {
			return true
		}
	}
	return false
}

// GrowsIn reports whether the crop appears in the state's cultivation profile.
func (p CropProfile) GrowsIn(state string) bool {
	for _, s := range p.States {
		if s == state {
			return true
		}
	}
	return false
}

// RecommendationEntry is one scored crop in a recommendation response
type RecommendationEntry struct {
	Crop                 string  `json:"crop"`
	SuitabilityScore     float64 `json:"suitability_score"`
	EstimatedYield       float64 `json:"estimated_yield"`
	SeasonMatch          bool    `json:"season_match"`
	RegionSuitable       bool    `json:"region_suitable"`
	RecommendationReason string  `json:"recommendation_reason"`
}

// MarketOutlook holds the qualitative buckets for crop analysis mode
type MarketOutlook struct {
	Demand         string `json:"demand"`
	PriceStability string `json:"price_stability"`
	Competition    string `json:"competition"`
}

// Recommendation modes
const (
	ModeLocationBased = "location_based"
	ModeCropAnalysis  = "crop_analysis"
)

// LocationRecommendation is the location-mode response payload
type LocationRecommendation struct {
	Mode            string                `json:"mode"`
	State           string                `json:"state"`
	Month           int                   `json:"month"`
	MonthName       string                `json:"month_name"`
	Season          string                `json:"season"`
	District        string                `json:"district"`
	Recommendations []RecommendationEntry `json:"recommendations"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// CropAnalysis is the crop-mode response payload
type CropAnalysis struct {
	Mode          string              `json:"mode"`
	Crop          string              `json:"crop"`
	State         string              `json:"state"`
	Analysis      RecommendationEntry `json:"analysis"`
	MarketOutlook MarketOutlook       `json:"market_outlook"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// ForecastRequest is the POST /forecast-price payload
type ForecastRequest struct {
	Crop string `json:"crop"`
	Days *int   `json:"days"`
}

// RecommendRequest is the POST /recommend-crop payload. Presence of Crop
// selects crop-analysis mode, otherwise location mode.
type RecommendRequest struct {
	Crop     string `json:"crop"`
	State    string `json:"state"`
	Month    *int   `json:"month"`
	District string `json:"district"`
}
