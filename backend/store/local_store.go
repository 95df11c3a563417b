package store

import (
	"fmt"
	"sync"
	"time"

	"asceticism/backend/engine"
	"asceticism/backend/program"
)

// Key layout of the degraded-mode store, matching the client-side fallback
// cache so a later sync can translate entries one to one.
func entryKey(day int) string    { return fmt.Sprintf("entry-day-%d", day) }
func completeKey(day int) string { return fmt.Sprintf("complete-day-%d", day) }
func practiceKey(day, week int) string {
	return fmt.Sprintf("practice-day-%d-week-%d", day, week)
}

const (
	startDateKey = "start-date"
	themeKey     = "theme"
)

// LocalStore is an in-memory key-value store used when no database is
// reachable and as a test double. It is a degraded-mode cache, never the
// system of record once a real store exists; everything is last-write-wins.
type LocalStore struct {
	mu   sync.RWMutex
	data map[uint]map[string]string
}

func NewLocalStore() *LocalStore {
	return &LocalStore{data: make(map[uint]map[string]string)}
}

func (l *LocalStore) bucket(userID uint) map[string]string {
	b, ok := l.data[userID]
	if !ok {
		b = make(map[string]string)
		l.data[userID] = b
	}
	return b
}

func (l *LocalStore) Load(userID uint) (*engine.State, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	state := engine.NewState()
	b, ok := l.data[userID]
	if !ok {
		return state, nil
	}

	if raw, ok := b[startDateKey]; ok {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			state.StartDate = &t
		}
	}
	if theme, ok := b[themeKey]; ok && theme != "" {
		state.Theme = theme
	}
	for day := 1; day <= program.TotalDays; day++ {
		if b[completeKey(day)] == "true" {
			state.CompletedDays[day] = true
		}
		if text := b[entryKey(day)]; text != "" {
			state.Journal[day] = text
		}
		for week := 1; week <= program.WeekForDay(day); week++ {
			if b[practiceKey(day, week)] == "true" {
				if state.Practices[day] == nil {
					state.Practices[day] = make(map[int]bool)
				}
				state.Practices[day][week] = true
			}
		}
	}

	return state, nil
}

func (l *LocalStore) SaveProgress(userID uint, state *engine.State) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(userID)
	if state.StartDate != nil {
		b[startDateKey] = state.StartDate.Format(time.DateOnly)
	} else {
		delete(b, startDateKey)
	}
	b[themeKey] = state.Theme
	for day := 1; day <= program.TotalDays; day++ {
		if state.CompletedDays[day] {
			b[completeKey(day)] = "true"
		} else {
			delete(b, completeKey(day))
		}
		for week := 1; week <= program.WeekForDay(day); week++ {
			if state.Practices[day][week] {
				b[practiceKey(day, week)] = "true"
			} else {
				delete(b, practiceKey(day, week))
			}
		}
	}

	return nil
}

func (l *LocalStore) SaveJournal(userID uint, day int, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(userID)
	if text == "" {
		delete(b, entryKey(day))
		return nil
	}
	b[entryKey(day)] = text
	return nil
}

func (l *LocalStore) DeleteJournals(userID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.bucket(userID)
	for day := 1; day <= program.TotalDays; day++ {
		delete(b, entryKey(day))
	}
	return nil
}

func (l *LocalStore) DeleteAll(userID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.data, userID)
	return nil
}
