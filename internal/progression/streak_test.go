package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 14, 30, 0, 0, time.UTC)
}

func TestStreakLifecycle(t *testing.T) {
	var s Streak

	s = s.OnView(day(1)).OnTaskCompleted(day(1))
	assert.Equal(t, 1, s.Count, "first completion starts the streak")

	s = s.OnView(day(1)).OnTaskCompleted(day(1))
	assert.Equal(t, 1, s.Count, "second completion the same day does not count twice")

	s = s.OnView(day(2)).OnTaskCompleted(day(2))
	assert.Equal(t, 2, s.Count, "next-day completion extends the streak")

	s = s.OnView(day(3)).OnTaskCompleted(day(3))
	assert.Equal(t, 3, s.Count)
}

func TestStreakSurvivesOneDayGap(t *testing.T) {
	s := Streak{}.OnTaskCompleted(day(1))

	// Viewing the next day must not reset anything.
	s = s.OnView(day(2))
	assert.Equal(t, 1, s.Count)

	s = s.OnTaskCompleted(day(2))
	assert.Equal(t, 2, s.Count)
}

func TestStreakResetsAfterSkippedDay(t *testing.T) {
	s := Streak{}.OnTaskCompleted(day(1))
	s = s.OnTaskCompleted(day(2))
	assert.Equal(t, 2, s.Count)

	// Day 3 passes with no completion; day 4 view zeroes the streak but
	// keeps the last credited date.
	s = s.OnView(day(4))
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, civilDay(day(2)), s.LastDate)

	// Completing on day 4 starts over at 1.
	s = s.OnTaskCompleted(day(4))
	assert.Equal(t, 1, s.Count)
}

func TestStreakOnViewBeforeAnyCompletion(t *testing.T) {
	var s Streak
	s = s.OnView(day(10))
	assert.Equal(t, 0, s.Count)
	assert.False(t, s.HasLastDate())
}

func TestStreakIgnoresClockTimeWithinDay(t *testing.T) {
	late := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.UTC)

	s := Streak{}.OnTaskCompleted(late)
	s = s.OnView(early).OnTaskCompleted(early)
	assert.Equal(t, 2, s.Count, "minutes apart but across midnight still counts as the next day")
}
