package history

import (
	"testing"
	"time"

	"cropcast/internal/catalog"
	"cropcast/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("building catalogue: %v", err)
	}
	return cat
}

func TestLoadDemoModeSeedsEveryCrop(t *testing.T) {
	cat := testCatalog(t)
	s := Load("", cat, 60)

	for _, crop := range cat.Crops() {
		window, latest, ok := s.Window(crop, 30)
		if !ok {
			t.Fatalf("no history for %s", crop)
		}
		if len(window) != 30 {
			t.Errorf("%s window = %d prices, want 30", crop, len(window))
		}
		if latest.IsZero() {
			t.Errorf("%s latest date is zero", crop)
		}
		for _, p := range window {
			if p <= 0 {
				t.Errorf("%s has non-positive price %v", crop, p)
			}
		}
	}
}

func TestSeedSeriesDeterministic(t *testing.T) {
	cat := testCatalog(t)

	a, _, _ := Load("", cat, 60).Window("Rice", 30)
	b, _, _ := Load("", cat, 60).Window("Rice", 30)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seed series differs at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestSeedSeriesRespectsFloor(t *testing.T) {
	cat := testCatalog(t)
	s := Load("", cat, 120)

	rice, _ := cat.Profile("Rice")
	window, _, _ := s.Window("Rice", 120)
	for _, p := range window {
		if p < rice.BasePrice*0.7 {
			t.Errorf("seed price %v below floor %v", p, rice.BasePrice*0.7)
		}
	}
}

func TestAddMergesObservations(t *testing.T) {
	cat := testCatalog(t)
	s := Load("", cat, 10)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	s.Add([]models.PriceObservation{
		{Crop: "Jute", Date: day.AddDate(0, 0, 1), Price: 5100},
		{Crop: "Jute", Date: day, Price: 5000},
	})

	window, latest, ok := s.Window("Jute", 10)
	if !ok {
		t.Fatal("Jute history missing after Add")
	}
	if len(window) != 2 || window[0] != 5000 || window[1] != 5100 {
		t.Errorf("window = %v, want [5000 5100] oldest first", window)
	}
	if !latest.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("latest = %v, want %v", latest, day.AddDate(0, 0, 1))
	}
}

func TestAddReplacesSeedSeries(t *testing.T) {
	cat := testCatalog(t)
	s := Load("", cat, 10)

	// Real mandi observations dated before the seed series' last day must
	// take over the crop entirely, not trail behind demo prices.
	day := time.Now().Truncate(24 * time.Hour).AddDate(0, 0, -5)
	s.Add([]models.PriceObservation{
		{Crop: "Rice", Date: day, Price: 111},
		{Crop: "Rice", Date: day.AddDate(0, 0, 1), Price: 222},
	})

	window, latest, ok := s.Window("Rice", 10)
	if !ok {
		t.Fatal("Rice history missing after Add")
	}
	if len(window) != 2 || window[0] != 111 || window[1] != 222 {
		t.Errorf("window = %v, want [111 222] with seed series discarded", window)
	}
	if !latest.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("latest = %v, want newest observation date %v", latest, day.AddDate(0, 0, 1))
	}
}

func TestAddKeepsDateOrderAcrossBatches(t *testing.T) {
	cat := testCatalog(t)
	s := Load("", cat, 10)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	s.Add([]models.PriceObservation{
		{Crop: "Wheat", Date: day.AddDate(0, 0, 2), Price: 2030},
	})
	s.Add([]models.PriceObservation{
		{Crop: "Wheat", Date: day, Price: 2010},
		{Crop: "Wheat", Date: day.AddDate(0, 0, 1), Price: 2020},
	})

	window, latest, ok := s.Window("Wheat", 10)
	if !ok {
		t.Fatal("Wheat history missing after Add")
	}
	want := []float64{2010, 2020, 2030}
	if len(window) != len(want) {
		t.Fatalf("window = %v, want %v", window, want)
	}
	for i := range want {
		if window[i] != want[i] {
			t.Errorf("window[%d] = %v, want %v (oldest first)", i, window[i], want[i])
		}
	}
	if !latest.Equal(day.AddDate(0, 0, 2)) {
		t.Errorf("latest = %v, want %v", latest, day.AddDate(0, 0, 2))
	}
}

func TestSeasonalFactor(t *testing.T) {
	tests := []struct {
		name     string
		crop     string
		month    int
		expected float64
	}{
		{"rice peaks in rabi months", "Rice", 11, 1.1},
		{"rice off-peak", "Rice", 6, 0.95},
		{"cotton spring peak", "Cotton", 4, 1.05},
		{"cotton normal", "Cotton", 9, 1.0},
		{"vegetables monsoon peak", "Tomato", 7, 1.08},
		{"vegetables off-season", "Tomato", 2, 0.92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seasonalFactor(tt.crop, tt.month); got != tt.expected {
				t.Errorf("seasonalFactor(%s, %d) = %v, want %v", tt.crop, tt.month, got, tt.expected)
			}
		})
	}
}
