package presenter

import (
	"math/rand/v2"

	"deadline-doom/internal/risk"
)

// Rand picks an index in [0,n).
type Rand interface {
	IntN(n int) int
}

// View is a result ready for display.
type View struct {
	Result risk.Result `json:"result"`
	Theme  Theme       `json:"theme"`
	Quote  string      `json:"quote"`
	// Chart holds the two doughnut slices: score and what is left to 100.
	Chart [2]int `json:"chart"`
}

// Presenter turns results into views. Only quote selection is random.
type Presenter struct {
	rnd Rand
}

// New returns a Presenter drawing quotes from rnd. A nil rnd uses the
// package-level generator.
func New(rnd Rand) *Presenter {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Presenter{rnd: rnd}
}

// Present builds the view of res.
func (p *Presenter) Present(res risk.Result) View {
	theme := ThemeFor(res.Level)
	return View{
		Result: res,
		Theme:  theme,
		Quote:  p.Quote(theme),
		Chart:  [2]int{res.Score, 100 - res.Score},
	}
}

// Quote picks one of the theme's quotes.
func (p *Presenter) Quote(t Theme) string {
	if len(t.Quotes) == 0 {
		return ""
	}
	return t.Quotes[p.rnd.IntN(len(t.Quotes))]
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
