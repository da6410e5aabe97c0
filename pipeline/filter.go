package pipeline

import (
	"strings"
	"time"

	"levelup/models"
)

// Filters holds the dashboard filter selections. Zero values (and the "all"
// sentinels the dashboards send) mean "no constraint from this filter".
type Filters struct {
	Search    string
	Status    string
	City      string
	Reference string
	// Date matches the calendar day of submission, "YYYY-MM-DD".
	Date string
}

func unset(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// Apply returns the applicants matching every set filter, preserving input
// order. The dashboards, KPI cards and exporters all go through here so the
// counts they show can never disagree.
func Apply(apps []models.Applicant, f Filters) []models.Applicant {
	out := make([]models.Applicant, 0, len(apps))
	for _, a := range apps {
		if Matches(a, f) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a single applicant passes every set filter.
func Matches(a models.Applicant, f Filters) bool {
	if !unset(f.Search) && !matchesSearch(a, f.Search) {
		return false
	}
	if !unset(f.Status) && EffectiveStatus(a) != f.Status {
		return false
	}
	if !unset(f.City) && a.City != f.City {
		return false
	}
	if !unset(f.Reference) && a.Reference != f.Reference {
		return false
	}
	if f.Date != "" && !SameLocalDay(a.SubmittedAt, f.Date) {
		return false
	}
	return true
}

func matchesSearch(a models.Applicant, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(a.FullName), term) ||
		strings.Contains(strings.ToLower(a.Email), term) ||
		strings.Contains(strings.ToLower(a.City), term) ||
		strings.Contains(a.Phone, term)
}

// Cities returns the distinct applicant cities in first-seen order, for the
// filter dropdown.
func Cities(apps []models.Applicant) []string {
	return distinct(apps, func(a models.Applicant) string { return a.City })
}

// ReferenceLabels returns the distinct reference labels in first-seen order.
func ReferenceLabels(apps []models.Applicant) []string {
	return distinct(apps, func(a models.Applicant) string { return a.Reference })
}

func distinct(apps []models.Applicant, key func(models.Applicant) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range apps {
		k := key(a)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// SameLocalDay reports whether t falls on the given local calendar day.
func SameLocalDay(t time.Time, day string) bool {
	return t.Local().Format("2006-01-02") == day
}
