package store

import (
	"log"
	"sync"
	"time"

	"asceticism/backend/engine"
	"asceticism/backend/utils"
)

// SyncStatus is the durability state of a user's writes.
type SyncStatus string

const (
	StatusSynced  SyncStatus = "synced"
	StatusDirty   SyncStatus = "dirty"
	StatusSyncing SyncStatus = "syncing"
	StatusFailed  SyncStatus = "failed"
)

type journalKey struct {
	user uint
	day  int
}

type pendingJournal struct {
	text     string
	debounce *utils.Debouncer[string]
}

// SyncedStore wraps a Store with write-behind journal saves and retries.
// Journal text is coalesced per (user, day) over a short quiet period before
// it hits the inner store; failed writes are retried with capped backoff and
// the per-user status is readable by callers. Reads overlay pending text so
// a user always sees their own latest write. In-memory results are never
// rolled back on persistence failure; the worst outcome is data loss after
// the final retry, which Status surfaces as "failed".
type SyncedStore struct {
	// Delay is the journal quiet period, Backoff the base retry interval.
	Delay      time.Duration
	Backoff    time.Duration
	MaxRetries int

	inner  Store
	logger *log.Logger

	// fallback is the degraded-mode cache: writes the database permanently
	// rejected are stashed here so they stay readable for the process
	// lifetime. It is never the system of record.
	fallback *LocalStore

	mu      sync.Mutex
	pending map[journalKey]*pendingJournal
	status  map[uint]SyncStatus
}

func NewSyncedStore(inner Store, logger *log.Logger) *SyncedStore {
	return &SyncedStore{
		Delay:      time.Second,
		Backoff:    500 * time.Millisecond,
		MaxRetries: 3,
		inner:      inner,
		logger:     logger,
		fallback:   NewLocalStore(),
		pending:    make(map[journalKey]*pendingJournal),
		status:     make(map[uint]SyncStatus),
	}
}

// Status reports the durability state of the user's writes.
func (s *SyncedStore) Status(userID uint) SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.status[userID]; ok {
		return st
	}
	return StatusSynced
}

func (s *SyncedStore) setStatus(userID uint, st SyncStatus) {
	s.mu.Lock()
	s.status[userID] = st
	s.mu.Unlock()
}

// Load reads through the inner store, then overlays the degraded-mode stash
// and any pending journal text so the caller observes its own latest writes
// even when the database refused them.
func (s *SyncedStore) Load(userID uint) (*engine.State, error) {
	state, err := s.inner.Load(userID)
	if err != nil {
		return nil, err
	}

	fb, _ := s.fallback.Load(userID)
	for day, text := range fb.Journal {
		state.Journal[day] = text
	}
	if state.StartDate == nil && fb.StartDate != nil {
		state.StartDate = fb.StartDate
		state.CompletedDays = fb.CompletedDays
		state.Practices = fb.Practices
		state.Theme = fb.Theme
	}

	s.mu.Lock()
	for key, p := range s.pending {
		if key.user != userID {
			continue
		}
		if p.text == "" {
			delete(state.Journal, key.day)
		} else {
			state.Journal[key.day] = p.text
		}
	}
	s.mu.Unlock()

	return state, nil
}

// SaveProgress writes through immediately; a failure is retried in the
// background and reported, but the caller keeps its optimistic state.
func (s *SyncedStore) SaveProgress(userID uint, state *engine.State) error {
	err := s.inner.SaveProgress(userID, state)
	if err == nil {
		return nil
	}
	s.logger.Printf("progress write failed for user %d, retrying: %v", userID, err)
	s.setStatus(userID, StatusDirty)
	go func() {
		if !s.retry(userID, func() error { return s.inner.SaveProgress(userID, state) }) {
			s.fallback.SaveProgress(userID, state)
		}
	}()
	return err
}

// SaveJournal records the text immediately and flushes it to the inner store
// after the quiet period, so a burst of autosaves costs one row write.
func (s *SyncedStore) SaveJournal(userID uint, day int, text string) error {
	key := journalKey{user: userID, day: day}

	s.mu.Lock()
	p, ok := s.pending[key]
	if !ok {
		p = &pendingJournal{}
		p.debounce = utils.NewDebouncer(s.Delay, func(v string) {
			s.flushJournal(key, v)
		})
		s.pending[key] = p
	}
	p.text = text
	s.status[userID] = StatusDirty
	s.mu.Unlock()

	p.debounce.Schedule(text)
	return nil
}

func (s *SyncedStore) flushJournal(key journalKey, text string) {
	s.setStatus(key.user, StatusSyncing)

	ok := true
	if err := s.inner.SaveJournal(key.user, key.day, text); err != nil {
		s.logger.Printf("journal write failed for user %d day %d, retrying: %v", key.user, key.day, err)
		ok = s.retry(key.user, func() error { return s.inner.SaveJournal(key.user, key.day, text) })
	}
	if !ok {
		// Permanently rejected: stash it in the degraded cache so it stays
		// readable for this process.
		s.fallback.SaveJournal(key.user, key.day, text)
	}

	s.mu.Lock()
	// Drop the overlay only if no newer text arrived while flushing; the
	// value now lives in either the inner store or the fallback stash.
	if p, exists := s.pending[key]; exists && p.text == text {
		delete(s.pending, key)
	}
	if s.status[key.user] == StatusSyncing {
		s.status[key.user] = StatusSynced
	}
	s.mu.Unlock()
}

// retry re-attempts a failed write with linearly growing backoff. After the
// last attempt the data is lost and the user's status sticks at "failed".
func (s *SyncedStore) retry(userID uint, write func() error) bool {
	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		time.Sleep(time.Duration(attempt) * s.Backoff)
		if err := write(); err != nil {
			s.logger.Printf("retry %d/%d failed for user %d: %v", attempt, s.MaxRetries, userID, err)
			continue
		}
		s.setStatus(userID, StatusSynced)
		return true
	}
	s.setStatus(userID, StatusFailed)
	return false
}

// Flush forces all pending journal writes out immediately.
func (s *SyncedStore) Flush() {
	s.mu.Lock()
	debouncers := make([]*utils.Debouncer[string], 0, len(s.pending))
	for _, p := range s.pending {
		debouncers = append(debouncers, p.debounce)
	}
	s.mu.Unlock()

	for _, d := range debouncers {
		d.Flush()
	}
}

// DeleteJournals drops the user's pending writes before deleting rows. A
// flush already handed to the database may still land after the delete; that
// race is accepted.
func (s *SyncedStore) DeleteJournals(userID uint) error {
	s.dropPending(userID)
	s.fallback.DeleteJournals(userID)
	return s.inner.DeleteJournals(userID)
}

func (s *SyncedStore) DeleteAll(userID uint) error {
	s.dropPending(userID)
	s.fallback.DeleteAll(userID)
	s.mu.Lock()
	delete(s.status, userID)
	s.mu.Unlock()
	return s.inner.DeleteAll(userID)
}

func (s *SyncedStore) dropPending(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, p := range s.pending {
		if key.user == userID {
			p.debounce.Cancel()
			delete(s.pending, key)
		}
	}
}
