package history

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/catalog"
	"cropcast/models"
)

// Store holds the per-crop trailing price history the forecaster derives
// its lag and moving-average features from. It is hydrated once at startup
// and read-only while serving.
type Store struct {
	series map[string]*series
	logger zerolog.Logger
}

type series struct {
	points    []point
	synthetic bool
}

type point struct {
	date  time.Time
	price float64
}

// Load hydrates the store from PostgreSQL. When the database is
// unreachable, or a crop has no rows, the crop gets a deterministic seed
// series derived from its catalogue base price instead, and the service
// keeps running in demo mode.
func Load(dsn string, cat *catalog.Catalog, seedDays int) *Store {
	logger := log.With().Str("component", "history").Logger()

	s := &Store{
		series: make(map[string]*series),
		logger: logger,
	}

	var db *sqlx.DB
	if dsn != "" {
		var err error
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			logger.Warn().Err(err).Msg("could not connect to PostgreSQL, running in demo mode with seed history")
			db = nil
		}
	}

	if db != nil {
		defer db.Close()
		if err := s.loadFromDB(db, seedDays); err != nil {
			logger.Warn().Err(err).Msg("loading price observations failed, falling back to seed history")
		}
	}

	// Seed every catalogue crop that has no real history.
	for _, crop := range cat.Crops() {
		if _, ok := s.series[crop]; ok {
			continue
		}
		profile, _ := cat.Profile(crop)
		s.series[crop] = seedSeries(crop, profile.BasePrice, seedDays)
	}

	logger.Info().Int("crops", len(s.series)).Msg("price history hydrated")
	return s
}

func (s *Store) loadFromDB(db *sqlx.DB, window int) error {
	cutoff := time.Now().AddDate(0, 0, -window)

	var rows []models.PriceObservation
	err := db.Select(&rows, `
		SELECT crop, market, state, date, price, arrival_qty
		FROM price_observations
		WHERE date >= $1
		ORDER BY crop, date`, cutoff)
	if err != nil {
		return fmt.Errorf("selecting price observations: %w", err)
	}

	s.Add(rows)
	s.logger.Info().Int("observations", len(rows)).Msg("loaded price observations from database")
	return nil
}

// Add merges observations into the store, keeping each crop's series in
// date order. The first real observation for a crop discards its synthetic
// seed series, so demo prices never trail behind real mandi data. Only
// called during startup hydration, before any request is served.
func (s *Store) Add(obs []models.PriceObservation) {
	touched := make(map[string]struct{})
	for _, o := range obs {
		sr, ok := s.series[o.Crop]
		if !ok || sr.synthetic {
			sr = &series{}
			s.series[o.Crop] = sr
		}
		sr.points = append(sr.points, point{date: o.Date, price: o.Price})
		touched[o.Crop] = struct{}{}
	}
	for crop := range touched {
		sr := s.series[crop]
		sort.SliceStable(sr.points, func(i, j int) bool { return sr.points[i].date.Before(sr.points[j].date) })
	}
}

// Window returns the trailing n prices for a crop (oldest first) and the
// date of the latest observation.
func (s *Store) Window(crop string, n int) ([]float64, time.Time, bool) {
	sr, ok := s.series[crop]
	if !ok || len(sr.points) == 0 {
		return nil, time.Time{}, false
	}

	points := sr.points
	if len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.price
	}
	return out, sr.points[len(sr.points)-1].date, true
}

// seedSeries generates a deterministic synthetic history for one crop:
// base price shaped by the crop's seasonal multiplier plus bounded noise,
// floored at 70% of base. Same crop, same series, every start.
func seedSeries(crop string, basePrice float64, days int) *series {
	if basePrice <= 0 {
		basePrice = 2000
	}
	h := fnv.New64a()
	h.Write([]byte(crop))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	end := time.Now().Truncate(24 * time.Hour)
	points := make([]point, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i)
		price := basePrice * seasonalFactor(crop, int(date.Month())) * (1 + rng.NormFloat64()*0.03)
		if floor := basePrice * 0.7; price < floor {
			price = floor
		}
		points = append(points, point{date: date, price: price})
	}

	return &series{points: points, synthetic: true}
}

// seasonalFactor mirrors the price seasonality of the historical mandi
// data: cereals peak post-harvest in the Rabi months, cotton in spring,
// vegetables during the monsoon.
func seasonalFactor(crop string, month int) float64 {
	switch crop {
	case "Rice", "Wheat":
		if month >= 10 || month <= 2 {
			return 1.1
		}
		return 0.95
	case "Cotton", "Sugarcane":
		if month >= 3 && month <= 5 {
			return 1.05
		}
		return 1.0
	default:
		if month >= 6 && month <= 9 {
			return 1.08
		}
		return 0.92
	}
}
