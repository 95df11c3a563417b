package controllers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"asceticism/backend/config"
	"asceticism/backend/program"
	"asceticism/backend/store"
	"asceticism/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type JournalController struct {
	Store  *store.SyncedStore
	Cfg    *config.Config
	Logger *log.Logger
}

func NewJournalController(st *store.SyncedStore, cfg *config.Config, logger *log.Logger) *JournalController {
	return &JournalController{Store: st, Cfg: cfg, Logger: logger}
}

// GetEntry godoc
// @Summary Get a day's journal entry
// @Tags journal
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/{day} [get]
func (jc *JournalController) GetEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	day, err := dayParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journal")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"day":  day,
		"text": state.JournalEntry(day),
	})
}

// PutEntry godoc
// @Summary Save a day's journal entry
// @Description Sanitizes and stores the text; non-blank text marks the day complete
// @Tags journal
// @Accept json
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/{day} [put]
func (jc *JournalController) PutEntry(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	day, err := dayParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	text, err := utils.SanitizeJournal(input.Text)
	if err != nil {
		if utils.IsTooLong(err) {
			return utils.UnprocessableEntity(c, err.Error())
		}
		return utils.BadRequest(c, err.Error())
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journal")
	}
	if !state.DayAvailable(day, time.Now()) {
		return utils.Forbidden(c, "Day is locked")
	}

	wasComplete := state.DayComplete(day)
	state.SetJournal(day, text)

	if err := jc.Store.SaveJournal(userID, day, text); err != nil {
		jc.Logger.Printf("journal write-through failed for user %d day %d: %v", userID, day, err)
	}
	// Journaling auto-completes the day; persist the flag when it changed.
	if !wasComplete && state.DayComplete(day) {
		if err := jc.Store.SaveProgress(userID, state); err != nil {
			jc.Logger.Printf("progress write-through failed for user %d: %v", userID, err)
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"day":         day,
		"text":        text,
		"complete":    state.DayComplete(day),
		"sync_status": jc.Store.Status(userID),
	})
}

// Timeline godoc
// @Summary List journal entries
// @Description Non-empty entries newest-day first, with week metadata and word counts
// @Tags journal
// @Produce json
// @Param q query string false "Search term over text and week title"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal [get]
func (jc *JournalController) Timeline(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	search := strings.ToLower(c.Query("q"))

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journal")
	}

	entries := make([]fiber.Map, 0)
	for day := program.TotalDays; day >= 1; day-- {
		text := strings.TrimSpace(state.JournalEntry(day))
		if text == "" {
			continue
		}
		week := program.ForDay(day)
		if search != "" &&
			!strings.Contains(strings.ToLower(text), search) &&
			!strings.Contains(strings.ToLower(week.Title), search) &&
			!strings.Contains(fmt.Sprintf("day %d", day), search) {
			continue
		}
		entries = append(entries, fiber.Map{
			"day":        day,
			"week":       week.Number,
			"week_title": week.Title,
			"text":       text,
			"word_count": len(strings.Fields(text)),
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"entries": entries,
		"total":   len(entries),
	})
}

// Export godoc
// @Summary Export all journal entries as markdown
// @Tags journal
// @Produce plain
// @Success 200 {string} string
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journal/export [get]
func (jc *JournalController) Export(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journal")
	}

	var b strings.Builder
	b.WriteString("# 12 Weeks of Asceticism - Journal Entries\n\n")
	b.WriteString("Exported on: " + time.Now().Format("Monday, January 2, 2006") + "\n\n")
	b.WriteString("---\n\n")

	hasEntries := false
	for day := 1; day <= program.TotalDays; day++ {
		text := strings.TrimSpace(state.JournalEntry(day))
		if text == "" {
			continue
		}
		hasEntries = true
		week := program.ForDay(day)

		if state.StartDate != nil {
			date := state.StartDate.AddDate(0, 0, day-1).Format(time.DateOnly)
			fmt.Fprintf(&b, "## Day %d – %s\n\n", day, date)
		} else {
			fmt.Fprintf(&b, "## Day %d\n\n", day)
		}
		fmt.Fprintf(&b, "**Week %d: %s**\n\n", week.Number, week.Title)
		b.WriteString(text + "\n\n")
		b.WriteString("---\n\n")
	}

	if !hasEntries {
		b.WriteString("No journal entries found. Start your ascetic journey by writing your first reflection!\n\n")
	}

	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ascetic-journals.md"`)
	return c.SendString(b.String())
}
