package catalog

import (
	"errors"
	"sort"

	"cropcast/models"
)

// GeneralState is the profile used when a requested state is not in the
// cultivation tables.
const GeneralState = "General"

// Catalog holds the static agronomic reference tables: crop profiles,
// state cultivation map and yield factors. It is built once at startup
// and read-only afterwards.
type Catalog struct {
	profiles     map[string]models.CropProfile
	stateFactors map[string]float64
	states       []string
}

// New builds a catalogue from the given profiles. An empty catalogue is
// a startup error, not something to silently serve empty lists from.
func New(profiles []models.CropProfile, stateFactors map[string]float64) (*Catalog, error) {
	if len(profiles) == 0 {
		return nil, errors.New("catalog: no crop profiles supplied")
	}

	byName := make(map[string]models.CropProfile, len(profiles))
	stateSet := make(map[string]struct{})
	for _, p := range profiles {
		byName[p.Name] = p
		for _, s := range p.States {
			stateSet[s] = struct{}{}
		}
	}

	states := make([]string, 0, len(stateSet))
	for s := range stateSet {
		states = append(states, s)
	}
	sort.Strings(states)

	return &Catalog{
		profiles:     byName,
		stateFactors: stateFactors,
		states:       states,
	}, nil
}

// Default returns the catalogue of the ten major Indian crops.
func Default() (*Catalog, error) {
	return New(defaultProfiles, defaultStateFactors)
}

// Profile returns the profile for a crop name.
func (c *Catalog) Profile(crop string) (models.CropProfile, bool) {
	p, ok := c.profiles[crop]
	return p, ok
}

// Crops returns all crop names in ascending order.
func (c *Catalog) Crops() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// States returns every state that appears in a cultivation profile.
func (c *Catalog) States() []string {
	out := make([]string, len(c.states))
	copy(out, c.states)
	return out
}

// KnowsState reports whether the state appears in any cultivation profile.
func (c *Catalog) KnowsState(state string) bool {
	for _, s := range c.states {
		if s == state {
			return true
		}
	}
	return false
}

// EstimatedYield returns the expected yield of a crop in a state,
// in tonnes per hectare.
func (c *Catalog) EstimatedYield(crop, state string) float64 {
	p, ok := c.profiles[crop]
	if !ok {
		return 0
	}
	factor, ok := c.stateFactors[state]
	if !ok {
		factor = 1.0
	}
	return p.BaseYield * factor
}

var defaultProfiles = []models.CropProfile{
	{
		Name:      "Rice",
		Months:    []int{6, 7, 8, 9, 10, 11},
		States:    []string{"West Bengal", "Punjab", "Andhra Pradesh", "Tamil Nadu", "Karnataka"},
		BaseScore: 85,
		BasePrice: 2200,
		BaseYield: 4.2,
		Reason:    "Ideal for monsoon season with adequate water supply",
	},
	{
		Name:      "Wheat",
		Months:    []int{11, 12, 1, 2, 3, 4},
		States:    []string{"Punjab", "Haryana", "Uttar Pradesh", "Madhya Pradesh", "Rajasthan"},
		BaseScore: 82,
		BasePrice: 1950,
		BaseYield: 3.5,
		Reason:    "Perfect for winter season (Rabi crop)",
	},
	{
		Name:      "Cotton",
		Months:    []int{6, 7, 8, 9, 10},
		States:    []string{"Gujarat", "Maharashtra", "Andhra Pradesh", "Punjab", "Haryana"},
		BaseScore: 78,
		BasePrice: 5200,
		BaseYield: 2.1,
		Reason:    "Suitable for warm, humid monsoon conditions",
	},
	{
		Name:      "Sugarcane",
		Months:    []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		States:    []string{"Uttar Pradesh", "Maharashtra", "Karnataka", "Tamil Nadu"},
		BaseScore: 75,
		BasePrice: 350,
		BaseYield: 75.0,
		Reason:    "Year-round crop with steady income potential",
	},
	{
		Name:      "Soybean",
		Months:    []int{6, 7, 8, 9},
		States:    []string{"Madhya Pradesh", "Maharashtra", "Rajasthan"},
		BaseScore: 74,
		BasePrice: 4200,
		BaseYield: 1.8,
		Reason:    "Nitrogen-fixing legume ideal for monsoon",
	},
	{
		Name:      "Maize",
		Months:    []int{6, 7, 8, 9, 10},
		States:    []string{"Karnataka", "Andhra Pradesh", "Tamil Nadu", "Rajasthan"},
		BaseScore: 72,
		BasePrice: 1650,
		BaseYield: 3.1,
		Reason:    "Good monsoon crop with moderate water needs",
	},
	{
		Name:      "Groundnut",
		Months:    []int{6, 7, 8, 9},
		States:    []string{"Gujarat", "Andhra Pradesh", "Tamil Nadu", "Karnataka"},
		BaseScore: 71,
		BasePrice: 4800,
		BaseYield: 2.2,
		Reason:    "Oil seed crop suitable for sandy soils",
	},
	{
		Name:      "Onion",
		Months:    []int{6, 7, 8, 9, 11, 12, 1},
		States:    []string{"Maharashtra", "Karnataka", "Gujarat", "Madhya Pradesh"},
		BaseScore: 70,
		BasePrice: 1400,
		BaseYield: 20.0,
		Reason:    "Dual season crop with good market demand",
	},
	{
		Name:      "Potato",
		Months:    []int{10, 11, 12, 1, 2, 3},
		States:    []string{"Uttar Pradesh", "West Bengal", "Bihar", "Punjab"},
		BaseScore: 68,
		BasePrice: 900,
		BaseYield: 25.0,
		Reason:    "Cold-weather crop with excellent storage potential",
	},
	{
		Name:      "Tomato",
		Months:    []int{6, 7, 8, 9, 10, 11, 12},
		States:    []string{"Karnataka", "Andhra Pradesh", "Maharashtra", "Gujarat"},
		BaseScore: 65,
		BasePrice: 1800,
		BaseYield: 28.0,
		Reason:    "High-value crop with extended growing season",
	},
}

var defaultStateFactors = map[string]float64{
	"Maharashtra":    1.10,
	"Karnataka":      1.00,
	"Andhra Pradesh": 1.05,
	"Tamil Nadu":     1.08,
	"Gujarat":        0.95,
	"Rajasthan":      0.85,
	"Madhya Pradesh": 0.90,
	"Uttar Pradesh":  1.00,
	"Punjab":         1.12,
	"Haryana":        1.06,
	"West Bengal":    1.02,
	"Bihar":          0.92,
}
