package controllers

import (
	"log"
	"sort"
	"strconv"
	"time"

	"asceticism/backend/config"
	"asceticism/backend/engine"
	"asceticism/backend/program"
	"asceticism/backend/store"
	"asceticism/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type JourneyController struct {
	Store  *store.SyncedStore
	Cfg    *config.Config
	Logger *log.Logger
}

func NewJourneyController(st *store.SyncedStore, cfg *config.Config, logger *log.Logger) *JourneyController {
	return &JourneyController{Store: st, Cfg: cfg, Logger: logger}
}

// dayParam parses and range-checks the :day route parameter. The engine
// itself is permissive about day numbers; the API boundary is where the
// 1..84 invariant is enforced.
func dayParam(c *fiber.Ctx) (int, error) {
	day, err := strconv.Atoi(c.Params("day"))
	if err != nil || !program.ValidDay(day) {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Day must be between 1 and 84")
	}
	return day, nil
}

// saveProgress writes the state through best-effort: a failure is logged and
// the optimistic in-memory result is still returned to the client. The synced
// store keeps retrying in the background and surfaces "failed" on the next
// journey read.
func (jc *JourneyController) saveProgress(userID uint, state *engine.State) {
	if err := jc.Store.SaveProgress(userID, state); err != nil {
		jc.Logger.Printf("progress write-through failed for user %d: %v", userID, err)
	}
}

// GetJourney godoc
// @Summary Get journey state
// @Description Returns start date, current day, completed days, theme and sync status
// @Tags journey
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey [get]
func (jc *JourneyController) GetJourney(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	today := time.Now()

	completed := make([]int, 0, len(state.CompletedDays))
	for day := range state.CompletedDays {
		completed = append(completed, day)
	}
	sort.Ints(completed)

	var startDate *string
	if state.StartDate != nil {
		s := state.StartDate.Format(time.DateOnly)
		startDate = &s
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"start_date":     startDate,
		"started":        state.StartDate != nil,
		"current_day":    state.CurrentDay(today),
		"current_week":   program.WeekForDay(state.CurrentDay(today)),
		"completed_days": completed,
		"theme":          state.Theme,
		"sync_status":    jc.Store.Status(userID),
	})
}

// StartJourney godoc
// @Summary Start the journey
// @Description Anchors the journey at today's date; a no-op if already started
// @Tags journey
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/start [post]
func (jc *JourneyController) StartJourney(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	today := time.Now()

	started := state.Start(today)
	if started {
		jc.saveProgress(userID, state)
	}

	// The guard can refuse with StartDate still nil (journaled day 1 on a
	// never-started journey).
	var startDate *string
	if state.StartDate != nil {
		s := state.StartDate.Format(time.DateOnly)
		startDate = &s
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"started":     started,
		"start_date":  startDate,
		"current_day": state.CurrentDay(today),
	})
}

// ResetJourney godoc
// @Summary Reset the journey
// @Description Clears start date, completions, practice flags and all journal rows
// @Tags journey
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/reset [post]
func (jc *JourneyController) ResetJourney(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}

	state.Reset()
	if err := jc.Store.DeleteJournals(userID); err != nil {
		jc.Logger.Printf("journal delete-through failed for user %d: %v", userID, err)
	}
	jc.saveProgress(userID, state)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"current_day": state.CurrentDay(time.Now()),
	})
}

// CompleteDay godoc
// @Summary Mark a day complete
// @Description Idempotently adds the day to the completed set
// @Tags journey
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/days/{day}/complete [post]
func (jc *JourneyController) CompleteDay(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	day, err := dayParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	if !state.DayAvailable(day, time.Now()) {
		return utils.Forbidden(c, "Day is locked")
	}

	if state.MarkComplete(day) {
		jc.saveProgress(userID, state)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"day":      day,
		"complete": true,
	})
}

// TogglePractice godoc
// @Summary Toggle a practice checkbox
// @Description Flips one week's practice flag for a day
// @Tags journey
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Param week path int true "Week number (1..week of day)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/days/{day}/practices/{week} [post]
func (jc *JourneyController) TogglePractice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	day, err := dayParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}
	week, err := strconv.Atoi(c.Params("week"))
	if err != nil || week < 1 || week > program.WeekForDay(day) {
		return utils.BadRequest(c, "Week is not active on this day")
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	if !state.DayAvailable(day, time.Now()) {
		return utils.Forbidden(c, "Day is locked")
	}

	checked := state.TogglePractice(day, week)
	jc.saveProgress(userID, state)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"day":     day,
		"week":    week,
		"checked": checked,
		"status":  state.Status(day),
	})
}

// GetDay godoc
// @Summary Get one day's state
// @Description Availability, completion breakdown, journal text and active week content
// @Tags journey
// @Produce json
// @Param day path int true "Day number (1-84)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/days/{day} [get]
func (jc *JourneyController) GetDay(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	day, err := dayParam(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	today := time.Now()

	if !state.DayAvailable(day, today) {
		// Locked days expose nothing but their lock.
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"day":       day,
			"available": false,
		})
	}

	week := program.ForDay(day)
	active := program.ActiveThrough(day)
	practices := make([]fiber.Map, 0, len(active))
	for _, w := range active {
		practices = append(practices, fiber.Map{
			"week":        w.Number,
			"title":       w.Title,
			"description": w.Description,
			"practices":   w.Practices,
			"checked":     state.Practices[day][w.Number],
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"day":              day,
		"available":        true,
		"week":             week.Number,
		"week_title":       week.Title,
		"prompt":           week.Prompt,
		"active_practices": practices,
		"journal":          state.JournalEntry(day),
		"complete":         state.DayComplete(day),
		"status":           state.Status(day),
	})
}

// SetTheme godoc
// @Summary Set theme preference
// @Description Stores the display theme on the progress row
// @Tags journey
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journey/theme [put]
func (jc *JourneyController) SetTheme(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var input struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Theme != "light" && input.Theme != "dark" {
		return utils.BadRequest(c, "Theme must be light or dark")
	}

	state, err := jc.Store.Load(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load journey")
	}
	state.Theme = input.Theme
	jc.saveProgress(userID, state)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"theme": state.Theme,
	})
}
