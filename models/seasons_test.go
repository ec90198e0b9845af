package models

import "testing"

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{1, SeasonRabi},
		{2, SeasonSummer},
		{3, SeasonSummer},
		{4, SeasonSummer},
		{5, SeasonSummer},
		{6, SeasonKharif},
		{7, SeasonKharif},
		{8, SeasonKharif},
		{9, SeasonKharif},
		{10, SeasonRabi},
		{11, SeasonRabi},
		{12, SeasonRabi},
	}

	for _, tt := range tests {
		if got := SeasonForMonth(tt.month); got != tt.want {
			t.Errorf("SeasonForMonth(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{1, "January"},
		{6, "June"},
		{12, "December"},
		{0, ""},
		{13, ""},
		{-3, ""},
	}

	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}
