package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-date form used everywhere a date is persisted.
const DateLayout = "2006-01-02"

// ProgressPercent returns the reading progress as a whole percentage,
// clamped to [0, 100]. A non-positive page total means progress is
// undefined; it renders as 0 rather than dividing by zero.
func ProgressPercent(b *Book) int {
	if b.TotalPages <= 0 {
		return 0
	}
	pct := int(math.Round(float64(b.CurrentPage) / float64(b.TotalPages) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// GoalStatus classifies the daily-goal computation outcome.
type GoalStatus int

const (
	// GoalNone: no target finish date is set.
	GoalNone GoalStatus = iota
	// GoalCompleted: no pages remain, regardless of the date.
	GoalCompleted
	// GoalExpired: the target date is not in the future.
	GoalExpired
	// GoalActive: PagesPerDay pages a day reach the target on time.
	GoalActive
)

// String returns a short display label for the status.
func (s GoalStatus) String() string {
	switch s {
	case GoalNone:
		return "no goal"
	case GoalCompleted:
		return "book completed"
	case GoalExpired:
		return "goal date expired"
	case GoalActive:
		return "on track"
	default:
		return "unknown"
	}
}

// DailyGoal is the result of the pages-per-day computation.
type DailyGoal struct {
	Status      GoalStatus
	PagesPerDay int // meaningful only when Status == GoalActive
	DaysLeft    int // meaningful only when Status == GoalActive
}

// ComputeDailyGoal derives the minimum pages per day needed to finish by
// the book's target date. Days are counted at calendar granularity: both
// dates are normalized to midnight before subtracting, so a target of
// tomorrow is one day out. The division rounds up — the goal must never
// recommend fewer pages than finishing on time requires.
func ComputeDailyGoal(b *Book, today time.Time) DailyGoal {
	if b.TargetFinishDate == "" {
		return DailyGoal{Status: GoalNone}
	}

	remaining := b.TotalPages - b.CurrentPage
	if remaining <= 0 {
		return DailyGoal{Status: GoalCompleted}
	}

	target, err := time.ParseInLocation(DateLayout, b.TargetFinishDate, today.Location())
	if err != nil {
		// An unparseable date is treated as no goal set.
		return DailyGoal{Status: GoalNone}
	}

	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	days := int(math.Ceil(target.Sub(todayMidnight).Hours() / 24))
	if days <= 0 {
		return DailyGoal{Status: GoalExpired}
	}

	perDay := (remaining + days - 1) / days
	return DailyGoal{Status: GoalActive, PagesPerDay: perDay, DaysLeft: days}
}
