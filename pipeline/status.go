package pipeline

import "levelup/models"

// Review pipeline statuses. Older documents were written before the status
// field existed; they read as StatusNew but are never rewritten in storage.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusInReview  = "In Review"
	StatusFollowUp  = "Follow-Up"
	StatusHired     = "Hired"
	StatusRejected  = "Rejected"
)

// Statuses is the closed label set, in dropdown order.
var Statuses = []string{
	StatusNew,
	StatusContacted,
	StatusInReview,
	StatusFollowUp,
	StatusHired,
	StatusRejected,
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// EffectiveStatus is the status every display and filter path must use.
func EffectiveStatus(a models.Applicant) string {
	if a.Status == "" {
		return StatusNew
	}
	return a.Status
}
