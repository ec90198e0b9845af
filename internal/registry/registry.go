package registry

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cropcast/internal/features"
	"cropcast/models"
)

// Artifact file names inside the model directory.
const (
	PriceArtifact = "price_model.json"
	CropArtifact  = "crop_model.json"
)

// Stump is one boosted regression stump in the price model ensemble.
type Stump struct {
	Feature   string  `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// CropParams is the learned per-crop term of the price model. The crops map
// defines the model's vocabulary.
type CropParams struct {
	BasePrice  float64 `json:"base_price"`
	Adjustment float64 `json:"adjustment"`
}

// PriceModel is the trained gradient-boosted price regressor: a global bias,
// linear feature weights, an ensemble of stumps and a per-crop embedding.
type PriceModel struct {
	Bias    float64               `json:"bias"`
	Weights map[string]float64    `json:"weights"`
	Trees   []Stump               `json:"trees"`
	Crops   map[string]CropParams `json:"crops"`
}

// Predict regresses the next-day price for a crop from a feature vector.
func (m *PriceModel) Predict(crop string, feats map[string]float64) float64 {
	c := m.Crops[crop]
	sum := m.Bias + c.Adjustment
	for name, w := range m.Weights {
		sum += w * feats[name]
	}
	for _, t := range m.Trees {
		if feats[t.Feature] <= t.Threshold {
			sum += t.Left
		} else {
			sum += t.Right
		}
	}
	return sum
}

// CropModel is the trained suitability classifier; Score returns the
// probability output of a logistic model over the feature vector.
type CropModel struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Score returns a probability in (0,1).
func (m *CropModel) Score(feats map[string]float64) float64 {
	sum := m.Bias
	for name, w := range m.Weights {
		sum += w * feats[name]
	}
	return 1 / (1 + math.Exp(-sum))
}

// Registry owns the trained artifacts. It is constructed exactly once at
// startup and read-only afterwards, so handlers may share it freely.
type Registry struct {
	price  *PriceModel
	crop   *CropModel
	vocab  map[string]struct{}
	seed   int64
	logger zerolog.Logger
}

// Load reads the model artifacts from dir. A missing or corrupt price model
// is fatal when strict is true; otherwise the registry installs a synthetic
// random-walk generator whose output is labeled models.SourceSynthetic and
// whose vocabulary is fallbackVocab. A missing crop model is never fatal:
// the recommender falls back to rule-based scoring.
func Load(dir string, strict bool, fallbackVocab []string, seed int64) (*Registry, error) {
	logger := log.With().Str("component", "registry").Logger()

	r := &Registry{
		vocab:  make(map[string]struct{}, len(fallbackVocab)),
		seed:   seed,
		logger: logger,
	}
	for _, crop := range fallbackVocab {
		r.vocab[crop] = struct{}{}
	}

	price, err := loadPriceModel(filepath.Join(dir, PriceArtifact))
	if err != nil {
		if strict {
			return nil, err
		}
		logger.Warn().Err(err).Msg("price model unavailable, using synthetic fallback generator")
	} else {
		r.price = price
		logger.Info().Int("crops", len(price.Crops)).Msg("price model loaded")
	}

	crop, err := loadCropModel(filepath.Join(dir, CropArtifact))
	if err != nil {
		logger.Warn().Err(err).Msg("crop model unavailable, recommender will use rule-based scoring")
	} else {
		r.crop = crop
		logger.Info().Msg("crop recommendation model loaded")
	}

	return r, nil
}

// New builds a registry directly from in-memory models. Either model may be
// nil, which selects the same fallback behavior as a missing artifact.
func New(price *PriceModel, crop *CropModel, fallbackVocab []string, seed int64) *Registry {
	r := &Registry{
		price:  price,
		crop:   crop,
		vocab:  make(map[string]struct{}, len(fallbackVocab)),
		seed:   seed,
		logger: log.With().Str("component", "registry").Logger(),
	}
	for _, c := range fallbackVocab {
		r.vocab[c] = struct{}{}
	}
	return r
}

func loadPriceModel(path string) (*PriceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ModelUnavailableError{Artifact: PriceArtifact, Err: err}
	}

	var m PriceModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &models.ModelUnavailableError{Artifact: PriceArtifact, Err: fmt.Errorf("parsing artifact: %w", err)}
	}
	if len(m.Crops) == 0 {
		return nil, &models.ModelUnavailableError{Artifact: PriceArtifact, Err: fmt.Errorf("artifact has empty crop vocabulary")}
	}

	return &m, nil
}

func loadCropModel(path string) (*CropModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ModelUnavailableError{Artifact: CropArtifact, Err: err}
	}

	var m CropModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &models.ModelUnavailableError{Artifact: CropArtifact, Err: fmt.Errorf("parsing artifact: %w", err)}
	}

	return &m, nil
}

// PriceLoaded reports whether the trained price regressor is available.
func (r *Registry) PriceLoaded() bool { return r.price != nil }

// CropScorer returns the suitability classifier, or nil when the
// rule-based path should be used.
func (r *Registry) CropScorer() *CropModel { return r.crop }

// Source returns the provenance tag for forecast responses.
func (r *Registry) Source() string {
	if r.price != nil {
		return models.SourceModel
	}
	return models.SourceSynthetic
}

// KnowsCrop reports whether the crop is in the active vocabulary: the price
// model's crop table when loaded, the fallback vocabulary otherwise.
func (r *Registry) KnowsCrop(crop string) bool {
	if r.price != nil {
		_, ok := r.price.Crops[crop]
		return ok
	}
	_, ok := r.vocab[crop]
	return ok
}

// BasePrice returns the crop's learned base price, or fallback when the
// model is absent or does not know the crop.
func (r *Registry) BasePrice(crop string, fallback float64) float64 {
	if r.price != nil {
		if c, ok := r.price.Crops[crop]; ok && c.BasePrice > 0 {
			return c.BasePrice
		}
	}
	return fallback
}

// NextPrice regresses the next-day price from the feature vector. On the
// synthetic path it produces one random-walk step over the lag-1 price
// using the supplied generator.
func (r *Registry) NextPrice(crop string, feats map[string]float64, rng *rand.Rand) float64 {
	if r.price != nil {
		return r.price.Predict(crop, feats)
	}

	prev := feats[features.FeatLag1]
	if prev <= 0 {
		prev = feats[features.FeatMA30]
	}
	return prev * (1 + rng.NormFloat64()*0.02)
}

// Rand derives a deterministic generator for one forecast run, so identical
// inputs under the same configured seed give identical synthetic output.
func (r *Registry) Rand(crop string, days int) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(crop))
	return rand.New(rand.NewSource(r.seed ^ int64(h.Sum64()) ^ int64(days)*31))
}
