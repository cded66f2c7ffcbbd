package presenter

import "deadline-doom/internal/risk"

// Background assets, one per level.
const (
	BackgroundGood     = "good.gif"
	BackgroundModerate = "moderate.gif"
	BackgroundBad      = "bad.gif"
)

// Theme is the cosmetic dressing of a risk level.
type Theme struct {
	Level      risk.Level `json:"level"`
	Label      string     `json:"label"`
	Emoji      string     `json:"emoji"`
	Color      string     `json:"color"`
	Background string     `json:"background"`
	Feedback   string     `json:"feedback"`
	Quotes     []string   `json:"-"`
}

var themes = map[risk.Level]Theme{
	risk.LevelSafe: {
		Level:      risk.LevelSafe,
		Label:      "Safe",
		Emoji:      "🛡️",
		Color:      "#10B981",
		Background: BackgroundGood,
		Feedback:   "You're on track! Keep it up.",
		Quotes: []string{
			"You're more organized than a librarian on alphabetizing day!",
			"Your deadlines don't stand a chance against you!",
			"Are you sure you're not a productivity robot?",
		},
	},
	risk.LevelModerate: {
		Level:      risk.LevelModerate,
		Label:      "Moderate",
		Emoji:      "⚠️",
		Color:      "#F59E0B",
		Background: BackgroundModerate,
		Feedback:   "Caution! Prioritize wisely.",
		Quotes: []string{
			"You're walking the tightrope between productivity and Netflix!",
			"One more episode won't hurt... until it does!",
			"You're not procrastinating, you're strategically delaying!",
		},
	},
	risk.LevelHigh: {
		Level:      risk.LevelHigh,
		Label:      "High",
		Emoji:      "🔥",
		Color:      "#EF4444",
		Background: BackgroundBad,
		Feedback:   "Warning! You need a focused sprint now!",
		Quotes: []string{
			"Calling in sick might be your best option right now!",
			"At this point, even time travel wouldn't save you!",
			"Your to-do list is judging you harder than your ex!",
		},
	},
}

// ThemeFor returns the theme of level. Unknown levels get the High theme.
func ThemeFor(level risk.Level) Theme {
	t, ok := themes[level]
	if !ok {
		t = themes[risk.LevelHigh]
	}
	t.Quotes = append([]string(nil), t.Quotes...)
	return t
}
