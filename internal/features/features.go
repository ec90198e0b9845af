package features

import (
	"math"
	"math/rand"
)

// Feature vector keys shared with the trained model artifacts.
const (
	FeatLag1       = "lag_1"
	FeatMA7        = "ma_7"
	FeatMA30       = "ma_30"
	FeatVolatility = "volatility"
	FeatMonthSin   = "month_sin"
	FeatMonthCos   = "month_cos"

	FeatSeasonMatch   = "season_match"
	FeatRegionMatch   = "region_match"
	FeatYield         = "yield"
	FeatMarketability = "marketability_index"
)

// Average calculates the simple mean of a price series.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}

// MovingAverage returns the mean of the trailing window of up to n values.
// With fewer than n values the available ones are used.
func MovingAverage(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return Average(values)
}

// StdDev returns the population standard deviation of the series.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Average(values)
	var variance float64
	for _, v := range values {
		variance += math.Pow(v-mean, 2)
	}

	return math.Sqrt(variance / float64(len(values)))
}

// RollingVolatility returns the standard deviation of the trailing window
// of up to n values.
func RollingVolatility(values []float64, n int) float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return StdDev(values)
}

// MonthEncoding returns the cyclical sin/cos encoding of a calendar month,
// so December and January land next to each other in feature space.
func MonthEncoding(month int) (sin, cos float64) {
	angle := 2 * math.Pi * float64(month) / 12
	return math.Sin(angle), math.Cos(angle)
}

// Vector builds the forecaster feature vector from a trailing price window
// (ordered oldest first) and the calendar month being predicted.
func Vector(window []float64, month int) map[string]float64 {
	f := make(map[string]float64, 6)
	if len(window) > 0 {
		f[FeatLag1] = window[len(window)-1]
	}
	f[FeatMA7] = MovingAverage(window, 7)
	f[FeatMA30] = MovingAverage(window, 30)
	f[FeatVolatility] = RollingVolatility(window, 7)
	f[FeatMonthSin], f[FeatMonthCos] = MonthEncoding(month)
	return f
}

// MarketabilityIndex is the synthetic economic-viability composite:
// (yield * price_stability * demand_factor) / input_cost, with the three
// latent factors drawn from fixed uniform ranges. The random source is
// injected so callers can pin the draw for reproducible output.
func MarketabilityIndex(yield float64, rng *rand.Rand) float64 {
	priceStability := uniform(rng, 0.7, 1.0)
	demandFactor := uniform(rng, 0.8, 1.2)
	inputCost := uniform(rng, 0.9, 1.1)

	return (yield * priceStability * demandFactor) / inputCost
}

// MarketAdjustment converts the marketability index into a bounded score
// adjustment, roughly -5..+6 points around the crop's expected yield.
func MarketAdjustment(yield float64, rng *rand.Rand) float64 {
	if yield <= 0 {
		return 0
	}
	mi := MarketabilityIndex(yield, rng)
	return (mi/yield - 0.85) * 12
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
