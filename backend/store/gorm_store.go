package store

import (
	"errors"
	"sort"

	"asceticism/backend/engine"
	"asceticism/backend/models"
	"asceticism/backend/program"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists journey data through GORM. Both tables are upsert
// targets: journey_progress unique on user_id, journal_entries unique on
// (user_id, day_number).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (g *GormStore) Load(userID uint) (*engine.State, error) {
	state := engine.NewState()

	var row models.JourneyProgress
	err := g.DB.Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No row yet is the empty state, not an error.
	case err != nil:
		return nil, err
	default:
		applyProgressRow(state, &row)
	}

	var entries []models.JournalEntry
	if err := g.DB.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, e := range entries {
		if program.ValidDay(e.DayNumber) && e.Text != "" {
			state.Journal[e.DayNumber] = e.Text
		}
	}

	return state, nil
}

// applyProgressRow copies a stored row into a fresh state, defaulting missing
// fields and dropping out-of-range day numbers so historical bad rows from
// older schema variants self-heal on load.
func applyProgressRow(state *engine.State, row *models.JourneyProgress) {
	state.StartDate = row.StartDate
	for _, day := range row.CompletedDays {
		if program.ValidDay(day) {
			state.CompletedDays[day] = true
		}
	}
	for day, weeks := range row.PracticeCompletions {
		if !program.ValidDay(day) || len(weeks) == 0 {
			continue
		}
		state.Practices[day] = make(map[int]bool, len(weeks))
		for week, done := range weeks {
			state.Practices[day][week] = done
		}
	}
	if row.Theme != "" {
		state.Theme = row.Theme
	}
}

func (g *GormStore) SaveProgress(userID uint, state *engine.State) error {
	days := make([]int, 0, len(state.CompletedDays))
	for day := range state.CompletedDays {
		days = append(days, day)
	}
	sort.Ints(days)

	row := models.JourneyProgress{
		UserID:              userID,
		StartDate:           state.StartDate,
		CompletedDays:       days,
		PracticeCompletions: state.Practices,
		Theme:               state.Theme,
	}

	return g.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_date", "completed_days", "practice_completions", "theme", "updated_at",
		}),
	}).Create(&row).Error
}

func (g *GormStore) SaveJournal(userID uint, day int, text string) error {
	if text == "" {
		// Hard delete: a soft-deleted row would still hold the unique
		// (user_id, day_number) slot and break the next upsert.
		return g.DB.Unscoped().Where("user_id = ? AND day_number = ?", userID, day).
			Delete(&models.JournalEntry{}).Error
	}

	row := models.JournalEntry{
		UserID:    userID,
		DayNumber: day,
		Text:      text,
	}
	return g.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormStore) DeleteJournals(userID uint) error {
	return g.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.JournalEntry{}).Error
}

func (g *GormStore) DeleteAll(userID uint) error {
	if err := g.DeleteJournals(userID); err != nil {
		return err
	}
	return g.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.JourneyProgress{}).Error
}
