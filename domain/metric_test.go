package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMetricsSnapshot_CompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"seventy percent", 560, 800, 70},
		{"no stores", 0, 0, 0},
		{"completed without stores", 3, 0, 0},
		{"all completed", 12, 12, 100},
		{"rounds half up", 1, 8, 13},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MetricsSnapshot{TotalStores: tt.total, CompletedInstallations: tt.completed}
			if got := s.CompletionRate(); got != tt.want {
				t.Errorf("CompletionRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMetricsSnapshot_ResolutionRate(t *testing.T) {
	tests := []struct {
		name     string
		open     int
		resolved int
		want     int
	}{
		{"no tickets", 0, 0, 0},
		{"all resolved", 0, 9, 100},
		{"none resolved", 4, 0, 0},
		{"mixed", 1, 3, 75},
		{"rounds half up", 3, 5, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MetricsSnapshot{OpenTickets: tt.open, ResolvedTickets: tt.resolved}
			if got := s.ResolutionRate(); got != tt.want {
				t.Errorf("ResolutionRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPercent_MatchesFloatRounding(t *testing.T) {
	for whole := 1; whole <= 60; whole++ {
		for part := 0; part <= whole; part++ {
			want := int(math.Floor(float64(part*100)/float64(whole) + 0.5))
			if got := Percent(part, whole); got != want {
				t.Fatalf("Percent(%d, %d) = %d, want %d", part, whole, got, want)
			}
		}
	}
}

func TestMetricsSnapshot_Validate(t *testing.T) {
	if err := (MetricsSnapshot{}).Validate(); err != nil {
		t.Errorf("zero snapshot should be valid, got %v", err)
	}

	s := MetricsSnapshot{TotalStores: 3, OpenTickets: -1}
	if err := s.Validate(); err != ErrInvalidSnapshot {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestDashboardMetrics_JSON(t *testing.T) {
	m := NewDashboardMetrics(MetricsSnapshot{
		TotalSuppliers:         4,
		TotalStores:            800,
		OpenTickets:            2,
		ResolvedTickets:        6,
		CompletedInstallations: 560,
		NonCompletedStores:     240,
	})

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]int{
		"totalSuppliers":         4,
		"totalStores":            800,
		"openTickets":            2,
		"resolvedTickets":        6,
		"completedInstallations": 560,
		"nonCompletedStores":     240,
		"completionRate":         70,
		"resolutionRate":         75,
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %d, want %d", k, decoded[k], v)
		}
	}
}
