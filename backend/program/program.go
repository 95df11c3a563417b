// Package program holds the static 12-week content table and the day/week
// arithmetic shared by the engine and the API layer.
package program

const (
	// TotalDays is the length of the full journey.
	TotalDays = 84
	// DaysPerWeek groups days into practice weeks.
	DaysPerWeek = 7
	// TotalWeeks is the number of practice layers.
	TotalWeeks = TotalDays / DaysPerWeek
)

// Week describes one week of the program: the practice layer it introduces and
// the reflection prompt shown on its days. Practices are cumulative: every
// week's practices stay active for the rest of the journey.
type Week struct {
	Number      int
	Title       string
	Description string
	Practices   []string
	Prompt      string
}

// WeekForDay returns the 1-based week a day belongs to. Out-of-range days are
// clamped into [1, TotalWeeks] so callers never index past the table.
func WeekForDay(day int) int {
	if day < 1 {
		return 1
	}
	week := (day-1)/DaysPerWeek + 1
	if week > TotalWeeks {
		return TotalWeeks
	}
	return week
}

// ForDay returns the week whose practices are introduced on the given day.
func ForDay(day int) Week {
	return weeks[WeekForDay(day)-1]
}

// ActiveThrough returns all weeks active on the given day, i.e. weeks 1 through
// WeekForDay(day). The slice shares the backing table and must not be mutated.
func ActiveThrough(day int) []Week {
	return weeks[:WeekForDay(day)]
}

// All returns the full 12-week table.
func All() []Week {
	return weeks
}

// ValidDay reports whether day is inside the program.
func ValidDay(day int) bool {
	return day >= 1 && day <= TotalDays
}

var weeks = []Week{
	{
		Number:      1,
		Title:       "Foundations",
		Description: "Establish core practices for mindful living",
		Practices: []string{
			"Wake up before sunrise",
			"No sugar or processed foods",
			"10 minutes of silent meditation daily",
		},
		Prompt: "How did you feel about the early mornings? What was most challenging about your diet changes?",
	},
	{
		Number:      2,
		Title:       "Simplicity",
		Description: "Reduce external distractions and clutter",
		Practices: []string{
			"Declutter your living space",
			"No social media",
			"15 minutes of mindful walking daily",
		},
		Prompt: "What did you notice after decluttering? How did you feel without social media?",
	},
	{
		Number:      3,
		Title:       "Discipline",
		Description: "Build mental strength through restraint",
		Practices: []string{
			"Cold showers only",
			"No entertainment media (TV, streaming)",
			"20 minutes of meditation daily",
		},
		Prompt: "What patterns of resistance did you notice? How did your relationship with comfort change?",
	},
	{
		Number:      4,
		Title:       "Mindfulness",
		Description: "Cultivate present-moment awareness",
		Practices: []string{
			"Eat one meal in complete silence daily",
			"Practice gratitude before sleep",
			"Single-tasking throughout the day",
		},
		Prompt: "When did you feel most present this week? What did mindful eating teach you?",
	},
	{
		Number:      5,
		Title:       "Patience",
		Description: "Learn to wait and observe without action",
		Practices: []string{
			"Wait 5 minutes before responding to any message",
			"Practice standing meditation for 10 minutes",
			"No rushing between activities",
		},
		Prompt: "How did slowing down affect your decisions? What did you discover in moments of waiting?",
	},
	{
		Number:      6,
		Title:       "Solitude",
		Description: "Find comfort in being alone with yourself",
		Practices: []string{
			"Spend 1 hour daily in complete solitude",
			"No music or podcasts while walking",
			"Practice silent reflection each evening",
		},
		Prompt: "What thoughts arose in silence? How did solitude change your relationship with yourself?",
	},
	{
		Number:      7,
		Title:       "Restraint",
		Description: "Practice saying no to unnecessary desires",
		Practices: []string{
			"No purchases except absolute necessities",
			"Decline social invitations that don't align with your values",
			"Limit speech to essential communication only",
		},
		Prompt: "What desires felt strongest when restricted? How did restraint affect your appreciation?",
	},
	{
		Number:      8,
		Title:       "Physical Discipline",
		Description: "Use the body as a tool for mental training",
		Practices: []string{
			"Daily bodyweight exercise routine",
			"One meal per day (if health permits)",
			"Walk or bike instead of driving when possible",
		},
		Prompt: "How did physical challenges affect your mental state? What did hunger teach you?",
	},
	{
		Number:      9,
		Title:       "Awareness",
		Description: "Observe thoughts and emotions without attachment",
		Practices: []string{
			"Journal every thought pattern you notice",
			"Practice emotional non-reactivity",
			"Observe nature for 30 minutes daily without devices",
		},
		Prompt: "What patterns in your thinking became clear? How did non-reactivity change your relationships?",
	},
	{
		Number:      10,
		Title:       "Acceptance",
		Description: "Embrace what is without resistance",
		Practices: []string{
			"Accept one difficult situation without trying to change it",
			"Practice loving-kindness meditation",
			"Express gratitude for challenges",
		},
		Prompt: "What became easier when you stopped fighting it? How did acceptance change your perspective?",
	},
	{
		Number:      11,
		Title:       "Service",
		Description: "Focus on giving rather than receiving",
		Practices: []string{
			"Perform one anonymous act of service daily",
			"Listen to others without offering advice",
			"Give away something meaningful to you",
		},
		Prompt: "How did serving others affect your sense of purpose? What did you receive through giving?",
	},
	{
		Number:      12,
		Title:       "Integration",
		Description: "Synthesize your journey and plan for the future",
		Practices: []string{
			"Reflect on your journey",
			"Write a letter to your future self",
			"Plan how to sustain your practices",
		},
		Prompt: "What are you most proud of from these 12 weeks? How will you continue your ascetic journey?",
	},
}
