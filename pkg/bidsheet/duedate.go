package bidsheet

import (
	"fmt"
	"time"
)

// Urgency buckets a bid due date for display styling.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyOverdue
	UrgencyCritical // 3 days or less
	UrgencyWarning  // 7 days or less
	UrgencyNormal
)

// DaysRemaining counts whole days from today until the due date, ignoring
// the time of day on both sides. Today is 0, yesterday is -1.
func DaysRemaining(due, now time.Time) int {
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	now = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(now).Hours() / 24)
}

// DueLabel renders the dashboard's countdown text.
func DueLabel(due, now time.Time) string {
	days := DaysRemaining(due, now)
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}

// DueUrgency buckets the countdown for styling.
func DueUrgency(due, now time.Time) Urgency {
	days := DaysRemaining(due, now)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 3:
		return UrgencyCritical
	case days <= 7:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
