package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    int
	}{
		{"halfway", 50, 100, 50},
		{"start", 0, 320, 0},
		{"done", 320, 320, 100},
		{"overshoot clamps", 150, 100, 100},
		{"zero total is defined", 0, 0, 0},
		{"negative total is defined", 10, -5, 0},
		{"rounds to nearest", 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Book{CurrentPage: tt.current, TotalPages: tt.total}
			assert.Equal(t, tt.want, ProgressPercent(b))
		})
	}
}

func TestComputeDailyGoal(t *testing.T) {
	today := time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local)
	date := func(days int) string {
		return today.AddDate(0, 0, days).Format(DateLayout)
	}

	t.Run("no target date", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 100}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalNone, goal.Status)
	})

	t.Run("ten days out", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 100, TargetFinishDate: date(10)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalActive, goal.Status)
		assert.Equal(t, 10, goal.DaysLeft)
		assert.Equal(t, 20, goal.PagesPerDay)
	})

	t.Run("rounds up never down", func(t *testing.T) {
		// 205 pages over 10 days must be 21/day, not 20.
		b := &Book{TotalPages: 305, CurrentPage: 100, TargetFinishDate: date(10)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalActive, goal.Status)
		assert.Equal(t, 21, goal.PagesPerDay)
		assert.GreaterOrEqual(t, goal.PagesPerDay*goal.DaysLeft, 205)
	})

	t.Run("completed wins over any date", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 300, TargetFinishDate: date(-5)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalCompleted, goal.Status)
	})

	t.Run("yesterday is expired", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 100, TargetFinishDate: date(-1)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalExpired, goal.Status)
	})

	t.Run("same day is expired", func(t *testing.T) {
		// Midnight-normalized subtraction makes a same-day target
		// zero days out.
		b := &Book{TotalPages: 300, CurrentPage: 100, TargetFinishDate: date(0)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalExpired, goal.Status)
	})

	t.Run("tomorrow means everything today", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 100, TargetFinishDate: date(1)}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalActive, goal.Status)
		assert.Equal(t, 1, goal.DaysLeft)
		assert.Equal(t, 200, goal.PagesPerDay)
	})

	t.Run("unparseable date means no goal", func(t *testing.T) {
		b := &Book{TotalPages: 300, CurrentPage: 100, TargetFinishDate: "soon"}
		goal := ComputeDailyGoal(b, today)
		assert.Equal(t, GoalNone, goal.Status)
	})
}
