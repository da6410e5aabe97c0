package pipeline

import (
	"time"

	"levelup/models"
)

// DashboardStats are the KPI card numbers. They are derived with the same
// Apply/Matches predicates as the table rows.
type DashboardStats struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	ThisMonth      int            `json:"thisMonth"`
	TotalSales     int            `json:"totalSales"`
	ConversionRate float64        `json:"conversionRate"`
}

// Stats computes the KPI numbers over an already-scoped applicant list.
func Stats(apps []models.Applicant, now time.Time) DashboardStats {
	s := DashboardStats{
		Total:    len(apps),
		ByStatus: make(map[string]int, len(Statuses)),
	}
	for _, status := range Statuses {
		s.ByStatus[status] = len(Apply(apps, Filters{Status: status}))
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, a := range apps {
		if !a.SubmittedAt.Before(monthStart) {
			s.ThisMonth++
		}
		s.TotalSales += a.SalesCompleted
	}

	if s.Total > 0 {
		s.ConversionRate = float64(s.ByStatus[StatusHired]) / float64(s.Total) * 100
	}
	return s
}
