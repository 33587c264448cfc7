package domain

import "errors"

// ErrInvalidSnapshot is returned when a snapshot carries a negative count.
var ErrInvalidSnapshot = errors.New("invalid metrics snapshot")

// MetricsSnapshot is a point-in-time set of aggregate counts used to build a
// management report. It is created per request and never persisted.
type MetricsSnapshot struct {
	TotalSuppliers         int `json:"totalSuppliers"`
	TotalStores            int `json:"totalStores"`
	OpenTickets            int `json:"openTickets"`
	ResolvedTickets        int `json:"resolvedTickets"`
	CompletedInstallations int `json:"completedInstallations"`
	NonCompletedStores     int `json:"nonCompletedStores"`
}

// Validate checks that every count is non-negative.
func (s MetricsSnapshot) Validate() error {
	for _, v := range []int{
		s.TotalSuppliers,
		s.TotalStores,
		s.OpenTickets,
		s.ResolvedTickets,
		s.CompletedInstallations,
		s.NonCompletedStores,
	} {
		if v < 0 {
			return ErrInvalidSnapshot
		}
	}
	return nil
}

// CompletionRate is the percentage of stores with a finalized installation.
func (s MetricsSnapshot) CompletionRate() int {
	return Percent(s.CompletedInstallations, s.TotalStores)
}

// ResolutionRate is the percentage of tickets resolved out of all tickets opened.
func (s MetricsSnapshot) ResolutionRate() int {
	return Percent(s.ResolvedTickets, s.OpenTickets+s.ResolvedTickets)
}

// Percent returns round(part/whole*100) rounding halves up, or 0 when whole is
// not positive.
func Percent(part, whole int) int {
	if whole <= 0 || part < 0 {
		return 0
	}
	return (part*100 + whole/2) / whole
}

// DashboardMetrics is the snapshot plus its derived rates, as served to the UI.
type DashboardMetrics struct {
	MetricsSnapshot
	CompletionRate int `json:"completionRate"`
	ResolutionRate int `json:"resolutionRate"`
}

// NewDashboardMetrics derives the rates for s.
func NewDashboardMetrics(s MetricsSnapshot) DashboardMetrics {
	return DashboardMetrics{
		MetricsSnapshot: s,
		CompletionRate:  s.CompletionRate(),
		ResolutionRate:  s.ResolutionRate(),
	}
}
