package engine

import (
	"testing"
	"time"

	"asceticism/backend/program"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func startedState(daysAgo int) *State {
	s := NewState()
	start := today.AddDate(0, 0, -daysAgo)
	s.Start(start)
	return s
}

func TestCurrentDayBeforeStart(t *testing.T) {
	s := NewState()
	assert.Equal(t, 1, s.CurrentDay(today))
	assert.True(t, s.DayAvailable(1, today))
	assert.False(t, s.DayAvailable(2, today))
}

func TestCurrentDayCounting(t *testing.T) {
	assert.Equal(t, 1, startedState(0).CurrentDay(today))
	assert.Equal(t, 11, startedState(10).CurrentDay(today))
	assert.Equal(t, 84, startedState(83).CurrentDay(today))
}

func TestCurrentDayClamped(t *testing.T) {
	s := startedState(200)
	assert.Equal(t, 84, s.CurrentDay(today))
	for day := 1; day <= 84; day++ {
		assert.True(t, s.DayAvailable(day, today))
	}

	// Clock moved behind the start date: still day 1, never 0.
	future := startedState(0)
	assert.Equal(t, 1, future.CurrentDay(today.AddDate(0, 0, -5)))
}

func TestCurrentDayAlwaysInRange(t *testing.T) {
	for daysAgo := -30; daysAgo <= 300; daysAgo += 7 {
		day := startedState(daysAgo).CurrentDay(today)
		assert.GreaterOrEqual(t, day, 1)
		assert.LessOrEqual(t, day, 84)
	}
}

func TestCurrentDayIgnoresTimeOfDay(t *testing.T) {
	// Started late in the evening, queried early the next morning: one full
	// calendar day has passed regardless of the 7-hour wall-clock gap.
	s := NewState()
	s.Start(time.Date(2025, 3, 14, 23, 50, 0, 0, time.UTC))
	assert.Equal(t, 2, s.CurrentDay(time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC)))
}

func TestAvailabilityMonotonic(t *testing.T) {
	s := startedState(40)
	for day := 2; day <= 84; day++ {
		if s.DayAvailable(day, today) {
			assert.True(t, s.DayAvailable(day-1, today), "day %d available but day %d is not", day, day-1)
		}
	}
	assert.True(t, s.DayAvailable(41, today))
	assert.False(t, s.DayAvailable(42, today))
}

func TestStartGuard(t *testing.T) {
	s := NewState()
	assert.True(t, s.Start(today))
	first := *s.StartDate

	// Duplicate start (e.g. repeated mount effect) must not move the anchor.
	assert.False(t, s.Start(today.AddDate(0, 0, 3)))
	assert.Equal(t, first, *s.StartDate)

	// Pre-existing progress also blocks starting.
	s2 := NewState()
	s2.MarkComplete(1)
	assert.False(t, s2.Start(today))
	assert.Nil(t, s2.StartDate)

	s3 := NewState()
	s3.SetJournal(1, "some text")
	assert.False(t, s3.Start(today))
}

func TestMarkCompleteIdempotent(t *testing.T) {
	s := startedState(10)
	assert.True(t, s.MarkComplete(3))
	assert.False(t, s.MarkComplete(3))
	assert.Len(t, s.CompletedDays, 1)
	assert.True(t, s.DayComplete(3))
	assert.False(t, s.DayComplete(4))
}

func TestJournalAutoCompletes(t *testing.T) {
	s := startedState(10)
	s.SetJournal(5, "a real reflection")
	assert.True(t, s.DayComplete(5))
	assert.Equal(t, "a real reflection", s.JournalEntry(5))
}

func TestBlankJournalDoesNotComplete(t *testing.T) {
	s := startedState(10)
	s.SetJournal(5, "   ")
	assert.False(t, s.DayComplete(5))
	assert.Equal(t, "", s.JournalEntry(5))

	// Clearing the entry keeps an explicit completion in place.
	s.MarkComplete(6)
	s.SetJournal(6, "")
	assert.True(t, s.DayComplete(6))
}

func TestResetClearsEverything(t *testing.T) {
	s := startedState(20)
	s.SetJournal(3, "entry")
	s.MarkComplete(7)
	s.TogglePractice(3, 1)
	s.Theme = "dark"

	s.Reset()

	assert.Nil(t, s.StartDate)
	assert.Equal(t, 1, s.CurrentDay(today))
	for day := 1; day <= 84; day++ {
		assert.False(t, s.DayComplete(day))
	}
	assert.Empty(t, s.Journal)
	assert.Empty(t, s.Practices)
	assert.Equal(t, "dark", s.Theme)
}

func TestStatusCumulativePractices(t *testing.T) {
	s := startedState(30)

	// Day 3 is in week 1: a single practice layer is active.
	st := s.Status(3)
	assert.Equal(t, 1, st.PracticesTotal)
	assert.Equal(t, 0, st.PracticesCompleted)
	assert.False(t, st.FullyComplete)

	s.TogglePractice(3, 1)
	s.SetJournal(3, "sat in silence before sunrise")
	st = s.Status(3)
	assert.Equal(t, 1, st.PracticesCompleted)
	assert.True(t, st.HasJournal)
	assert.True(t, st.FullyComplete)

	// Day 15 is in week 3: weeks 1-3 are all required.
	st = s.Status(15)
	assert.Equal(t, 3, st.PracticesTotal)
	s.TogglePractice(15, 1)
	s.TogglePractice(15, 2)
	s.SetJournal(15, "cold shower done")
	st = s.Status(15)
	assert.Equal(t, 2, st.PracticesCompleted)
	assert.False(t, st.FullyComplete, "missing week 3 practice keeps the day partial")

	s.TogglePractice(15, 3)
	assert.True(t, s.Status(15).FullyComplete)
}

func TestTogglePracticeRoundTrip(t *testing.T) {
	s := startedState(10)
	assert.True(t, s.TogglePractice(2, 1))
	assert.False(t, s.TogglePractice(2, 1))

	// Unchecking moves a fully complete day back to partial.
	s.SetJournal(2, "entry")
	s.TogglePractice(2, 1)
	assert.True(t, s.Status(2).FullyComplete)
	s.TogglePractice(2, 1)
	assert.False(t, s.Status(2).FullyComplete)
}

func TestWeekForDayBounds(t *testing.T) {
	assert.Equal(t, 1, program.WeekForDay(1))
	assert.Equal(t, 1, program.WeekForDay(7))
	assert.Equal(t, 2, program.WeekForDay(8))
	assert.Equal(t, 12, program.WeekForDay(84))
}
