package recommend

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/catalog"
	"cropcast/internal/features"
	"cropcast/internal/history"
	"cropcast/internal/registry"
	"cropcast/models"
)

// Suitability score bounds, matching the trained model's score scale.
const (
	scoreFloor = 30
	scoreCeil  = 100
)

// Recommender ranks catalogue crops by suitability for a region and month,
// and analyses individual crops. Stateless per call; the marketability draw
// is derived deterministically from the configured seed and the call
// inputs, so identical requests rank identically.
type Recommender struct {
	catalog  *catalog.Catalog
	registry *registry.Registry
	history  *history.Store
	topK     int
	seed     int64
	logger   zerolog.Logger
}

// New wires a recommender returning at most topK entries per query.
func New(cat *catalog.Catalog, reg *registry.Registry, hist *history.Store, topK int, seed int64) *Recommender {
	return &Recommender{
		catalog:  cat,
		registry: reg,
		history:  hist,
		topK:     topK,
		seed:     seed,
		logger:   log.With().Str("component", "recommender").Logger(),
	}
}

// Recommend scores every catalogue crop for the given state and month and
// returns the top entries, ordered by descending suitability score with
// ties broken by crop name. An unknown state degrades to the general
// profile instead of failing.
func (r *Recommender) Recommend(state string, month int, district string) (*models.LocationRecommendation, error) {
	if month < 1 || month > 12 {
		return nil, &models.InvalidRangeError{Field: "month", Value: month, Min: 1, Max: 12}
	}
	if state != "" && !r.catalog.KnowsState(state) {
		regionErr := &models.RegionNotFoundError{Region: state}
		r.logger.Warn().Err(regionErr).Msg("degrading to general cultivation profile")
	}

	entries := make([]models.RecommendationEntry, 0, len(r.catalog.Crops()))
	for _, crop := range r.catalog.Crops() {
		entries = append(entries, r.scoreCrop(crop, state, month))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SuitabilityScore != entries[j].SuitabilityScore {
			return entries[i].SuitabilityScore > entries[j].SuitabilityScore
		}
		return entries[i].Crop < entries[j].Crop
	})
	if len(entries) > r.topK {
		entries = entries[:r.topK]
	}

	if district == "" {
		district = catalog.GeneralState
	}

	return &models.LocationRecommendation{
		Mode:            models.ModeLocationBased,
		State:           state,
		Month:           month,
		MonthName:       models.MonthName(month),
		Season:          models.SeasonForMonth(month),
		District:        district,
		Recommendations: entries,
		GeneratedAt:     time.Now(),
	}, nil
}

// Analyze scores a single crop against the supplied or general state for
// the current month and derives the qualitative market outlook.
func (r *Recommender) Analyze(crop, state string) (*models.CropAnalysis, error) {
	return r.analyzeAt(crop, state, int(time.Now().Month()))
}

func (r *Recommender) analyzeAt(crop, state string, month int) (*models.CropAnalysis, error) {
	profile, ok := r.catalog.Profile(crop)
	if !ok {
		return nil, &models.UnknownCropError{Crop: crop}
	}
	if state != "" && !r.catalog.KnowsState(state) {
		regionErr := &models.RegionNotFoundError{Region: state}
		r.logger.Warn().Err(regionErr).Msg("degrading to general cultivation profile")
	}

	entry := r.scoreCrop(crop, state, month)

	outState := state
	if outState == "" {
		outState = catalog.GeneralState
	}

	return &models.CropAnalysis{
		Mode:          models.ModeCropAnalysis,
		Crop:          crop,
		State:         outState,
		Analysis:      entry,
		MarketOutlook: r.outlook(profile, entry.SuitabilityScore),
		GeneratedAt:   time.Now(),
	}, nil
}

// scoreCrop computes a suitability score as the weighted combination of
// season match, region match and either the classifier probability or the
// rule-based marketability adjustment when no crop model is loaded.
func (r *Recommender) scoreCrop(crop, state string, month int) models.RecommendationEntry {
	profile, _ := r.catalog.Profile(crop)

	score := profile.BaseScore
	seasonMatch := profile.PlantsIn(month)
	if seasonMatch {
		score += 15
	} else {
		score -= 10
	}
	regionSuitable := state != "" && profile.GrowsIn(state)
	if regionSuitable {
		score += 10
	} else if state != "" {
		score -= 5
	}

	yield := r.catalog.EstimatedYield(crop, state)
	rng := r.randFor(crop, state, month)

	if m := r.registry.CropScorer(); m != nil {
		feats := map[string]float64{
			features.FeatSeasonMatch:   boolFeature(seasonMatch),
			features.FeatRegionMatch:   boolFeature(regionSuitable),
			features.FeatYield:         yield,
			features.FeatMarketability: features.MarketabilityIndex(yield, rng),
		}
		feats[features.FeatMonthSin], feats[features.FeatMonthCos] = features.MonthEncoding(month)
		score += (m.Score(feats) - 0.5) * 20
	} else {
		score += features.MarketAdjustment(yield, rng)
	}

	score = math.Max(scoreFloor, math.Min(scoreCeil, score))

	return models.RecommendationEntry{
		Crop:                 crop,
		SuitabilityScore:     math.Round(score*10) / 10,
		EstimatedYield:       math.Round(yield*100) / 100,
		SeasonMatch:          seasonMatch,
		RegionSuitable:       regionSuitable,
		RecommendationReason: profile.Reason,
	}
}

// outlook buckets the numeric score and price history into the
// qualitative market view. Thresholds are fixed here and covered by tests.
func (r *Recommender) outlook(profile models.CropProfile, score float64) models.MarketOutlook {
	demand := "low"
	switch {
	case score >= 80:
		demand = "high"
	case score >= 60:
		demand = "moderate"
	}

	stability := "moderate"
	if window, _, ok := r.history.Window(profile.Name, 30); ok {
		if mean := features.Average(window); mean > 0 {
			switch ratio := features.StdDev(window) / mean; {
			case ratio < 0.05:
				stability = "stable"
			case ratio < 0.12:
				stability = "moderate"
			default:
				stability = "volatile"
			}
		}
	}

	competition := "low"
	switch {
	case len(profile.States) >= 5:
		competition = "high"
	case len(profile.States) >= 3:
		competition = "medium"
	}

	return models.MarketOutlook{
		Demand:         demand,
		PriceStability: stability,
		Competition:    competition,
	}
}

// randFor derives the per-call generator from the configured seed and the
// query inputs, keeping concurrent calls lock-free and repeat calls
// reproducible.
func (r *Recommender) randFor(crop, state string, month int) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(crop))
	h.Write([]byte{0})
	h.Write([]byte(state))
	return rand.New(rand.NewSource(r.seed ^ int64(h.Sum64()) ^ int64(month)*131))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
