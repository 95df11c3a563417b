package controllers_test

import (
	"testing"
	"time"

	"asceticism/backend/engine"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedDays(d map[string]interface{}) []int {
	raw, _ := d["completed_days"].([]interface{})
	days := make([]int, 0, len(raw))
	for _, v := range raw {
		days = append(days, int(v.(float64)))
	}
	return days
}

func TestJourneyLifecycle(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "lifecycle@example.com")

	d := data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.False(t, d["started"].(bool))
	assert.EqualValues(t, 1, d["current_day"])
	assert.Equal(t, "light", d["theme"])
	assert.Equal(t, "synced", d["sync_status"])

	d = data(t, env.request(t, "POST", "/api/journey/start", token, nil))
	assert.True(t, d["started"].(bool))
	firstStart := d["start_date"].(string)
	assert.EqualValues(t, 1, d["current_day"])

	// A duplicate start call must not move the anchor.
	d = data(t, env.request(t, "POST", "/api/journey/start", token, nil))
	assert.False(t, d["started"].(bool))
	assert.Equal(t, firstStart, d["start_date"].(string))

	d = data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.True(t, d["started"].(bool))
	assert.Equal(t, firstStart, d["start_date"].(string))
}

func TestCompleteDayIdempotent(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "complete@example.com")
	env.request(t, "POST", "/api/journey/start", token, nil)

	for i := 0; i < 2; i++ {
		resp := env.request(t, "POST", "/api/journey/days/1/complete", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	d := data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.Equal(t, []int{1}, completedDays(d))
}

func TestLockedDaysRejectMutations(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "locked@example.com")
	env.request(t, "POST", "/api/journey/start", token, nil)

	// The journey started today, so day 2 is still locked.
	d := data(t, env.request(t, "GET", "/api/journey/days/2", token, nil))
	assert.False(t, d["available"].(bool))
	assert.Nil(t, d["journal"])

	resp := env.request(t, "POST", "/api/journey/days/2/complete", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "PUT", "/api/journal/2", token, map[string]string{"text": "too soon"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "POST", "/api/journey/days/2/practices/1", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDayParamValidation(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "validation@example.com")

	for _, path := range []string{
		"/api/journey/days/0",
		"/api/journey/days/85",
		"/api/journey/days/abc",
	} {
		resp := env.request(t, "GET", path, token, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}

	// Week 2 practices are not active during week 1.
	env.request(t, "POST", "/api/journey/start", token, nil)
	resp := env.request(t, "POST", "/api/journey/days/1/practices/2", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPracticesAndFullCompletion(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "practices@example.com")
	env.request(t, "POST", "/api/journey/start", token, nil)

	d := data(t, env.request(t, "POST", "/api/journey/days/1/practices/1", token, nil))
	assert.True(t, d["checked"].(bool))
	status := d["status"].(map[string]interface{})
	assert.EqualValues(t, 1, status["practices_completed"])
	assert.EqualValues(t, 1, status["practices_total"])
	assert.False(t, status["fully_complete"].(bool))

	env.request(t, "PUT", "/api/journal/1", token, map[string]string{"text": "up before sunrise"})

	d = data(t, env.request(t, "GET", "/api/journey/days/1", token, nil))
	status = d["status"].(map[string]interface{})
	assert.True(t, status["has_journal"].(bool))
	assert.True(t, status["fully_complete"].(bool))
	assert.True(t, d["complete"].(bool))
	assert.Equal(t, "Foundations", d["week_title"])

	// Unchecking the practice moves the day back to partial.
	d = data(t, env.request(t, "POST", "/api/journey/days/1/practices/1", token, nil))
	assert.False(t, d["checked"].(bool))
	status = d["status"].(map[string]interface{})
	assert.False(t, status["fully_complete"].(bool))
}

func TestSetTheme(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "theme@example.com")

	resp := env.request(t, "PUT", "/api/journey/theme", token, map[string]string{"theme": "dark"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, "PUT", "/api/journey/theme", token, map[string]string{"theme": "neon"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	d := data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.Equal(t, "dark", d["theme"])
}

func TestResetClearsJourney(t *testing.T) {
	env := newEnv(t)
	token, _ := env.register(t, "reset@example.com")
	env.request(t, "POST", "/api/journey/start", token, nil)
	env.request(t, "PUT", "/api/journal/1", token, map[string]string{"text": "first entry"})
	env.request(t, "POST", "/api/journey/days/1/complete", token, nil)

	d := data(t, env.request(t, "POST", "/api/journey/reset", token, nil))
	assert.EqualValues(t, 1, d["current_day"])

	d = data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.False(t, d["started"].(bool))
	assert.Empty(t, completedDays(d))

	d = data(t, env.request(t, "GET", "/api/journal/1", token, nil))
	assert.Equal(t, "", d["text"])
}

func TestJourneyInProgressUnlocksDays(t *testing.T) {
	env := newEnv(t)
	token, userID := env.register(t, "midway@example.com")

	// Seed a journey that started ten days ago straight through the store.
	state := engine.NewState()
	start := time.Now().AddDate(0, 0, -10)
	require.True(t, state.Start(start))
	require.NoError(t, env.store.SaveProgress(userID, state))

	d := data(t, env.request(t, "GET", "/api/journey", token, nil))
	assert.EqualValues(t, 11, d["current_day"])
	assert.EqualValues(t, 2, d["current_week"])

	d = data(t, env.request(t, "GET", "/api/journey/days/11", token, nil))
	assert.True(t, d["available"].(bool))

	d = data(t, env.request(t, "GET", "/api/journey/days/12", token, nil))
	assert.False(t, d["available"].(bool))
}
