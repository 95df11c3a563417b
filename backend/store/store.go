// Package store is the persistence gateway: it loads and write-throughs the
// per-user progress row and journal rows the engine works on. The engine never
// touches a database; controllers load a State here, mutate it with the
// engine, and save it back.
package store

import "asceticism/backend/engine"

// Store is row-level CRUD for one user's journey data. Implementations are
// last-write-wins at the row level; there is no merge.
type Store interface {
	// Load returns the user's state. A user with no rows yet gets a fresh
	// empty state, not an error.
	Load(userID uint) (*engine.State, error)

	// SaveProgress upserts the single progress row (start date, completed
	// days, practice flags, theme).
	SaveProgress(userID uint, state *engine.State) error

	// SaveJournal upserts one day's journal text. Empty text removes the row.
	SaveJournal(userID uint, day int, text string) error

	// DeleteJournals removes all journal rows for the user.
	DeleteJournals(userID uint) error

	// DeleteAll removes the progress row and all journal rows.
	DeleteAll(userID uint) error
}
