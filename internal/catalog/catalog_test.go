package catalog

import (
	"sort"
	"testing"

	"cropcast/models"
)

func TestNewRejectsEmptyCatalogue(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("empty catalogue must fail loudly, not serve empty lists")
	}
}

func TestDefaultCatalogue(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	crops := cat.Crops()
	if len(crops) != 10 {
		t.Errorf("got %d crops, want 10", len(crops))
	}
	if !sort.StringsAreSorted(crops) {
		t.Error("Crops() should be sorted ascending")
	}

	rice, ok := cat.Profile("Rice")
	if !ok {
		t.Fatal("Rice missing from catalogue")
	}
	if !rice.PlantsIn(6) {
		t.Error("Rice planting window should include June")
	}
	if rice.PlantsIn(3) {
		t.Error("Rice planting window should not include March")
	}
	if !rice.GrowsIn("Karnataka") {
		t.Error("Rice should be cultivated in Karnataka")
	}
}

func TestEstimatedYield(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		name     string
		crop     string
		state    string
		expected float64
	}{
		{"known state factor", "Rice", "Maharashtra", 4.2 * 1.10},
		{"neutral factor for unknown state", "Rice", "Atlantis", 4.2},
		{"unknown crop", "Unicorn-Fruit", "Karnataka", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cat.EstimatedYield(tt.crop, tt.state); got != tt.expected {
				t.Errorf("EstimatedYield() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKnowsState(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if !cat.KnowsState("Punjab") {
		t.Error("Punjab should be a known state")
	}
	if cat.KnowsState("Atlantis") {
		t.Error("Atlantis should not be a known state")
	}
}

func TestStatesAreCollectedFromProfiles(t *testing.T) {
	profiles := []models.CropProfile{
		{Name: "A", States: []string{"S2", "S1"}},
		{Name: "B", States: []string{"S1", "S3"}},
	}
	cat, err := New(profiles, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	states := cat.States()
	want := []string{"S1", "S2", "S3"}
	if len(states) != len(want) {
		t.Fatalf("got %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("States()[%d] = %q, want %q", i, states[i], want[i])
		}
	}
}
