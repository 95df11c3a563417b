package models

import (
	"time"

	"gorm.io/gorm"
)

// JourneyProgress is the single per-user progress row, the upsert target for
// everything except journal text. CompletedDays and PracticeCompletions are
// JSON columns so the same model works on Postgres and the sqlite test DB.
type JourneyProgress struct {
	gorm.Model
	UserID              uint `gorm:"uniqueIndex"`
	StartDate           *time.Time
	CompletedDays       []int                `gorm:"serializer:json"`
	PracticeCompletions map[int]map[int]bool `gorm:"serializer:json"`
	Theme               string               `gorm:"default:light"` // light, dark
}

// JournalEntry holds one day's free-text reflection. The unique index on
// (user_id, day_number) makes saves idempotent upserts.
type JournalEntry struct {
	gorm.Model
	UserID    uint `gorm:"index:idx_journal_user_day,unique"`
	DayNumber int  `gorm:"index:idx_journal_user_day,unique"`
	Text      string
}
