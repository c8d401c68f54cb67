// Package pattern tags bars with candlestick price-action patterns.
package pattern

import (
	"math"

	"github.com/evdnx/gotix/indicator/core"
)

// Pattern names emitted by the default rule list.
const (
	BullishEngulfing = "Bullish Engulfing"
	BearishEngulfing = "Bearish Engulfing"
	Doji             = "Doji"
)

// DojiBodyRatio is the largest body, relative to the bar range, that still
// counts as a doji.
const DojiBodyRatio = 0.1

// Rule matches a single pattern. prev is nil for the first bar of a series.
type Rule struct {
	Name  string
	Match func(prev *core.Bar, cur core.Bar) bool
}

// Precedence decides which label a bar gets when several rules match.
type Precedence int

const (
	// LastMatchWins keeps the label of the latest matching rule in the list.
	LastMatchWins Precedence = iota
	// FirstMatchWins keeps the label of the earliest matching rule.
	FirstMatchWins
)

// DefaultRules returns the engulfing and doji rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: BullishEngulfing, Match: bullishEngulfing},
		{Name: BearishEngulfing, Match: bearishEngulfing},
		{Name: Doji, Match: doji},
	}
}

func bullishEngulfing(prev *core.Bar, cur core.Bar) bool {
	return prev != nil &&
		prev.Close < prev.Open &&
		cur.Close > cur.Open &&
		cur.Open < prev.Close &&
		cur.Close > prev.Open
}

func bearishEngulfing(prev *core.Bar, cur core.Bar) bool {
	return prev != nil &&
		prev.Close > prev.Open &&
		cur.Close < cur.Open &&
		cur.Open > prev.Close &&
		cur.Close < prev.Open
}

func doji(_ *core.Bar, cur core.Bar) bool {
	return math.Abs(cur.Close-cur.Open) < DojiBodyRatio*(cur.High-cur.Low)
}

// PriceAction labels every bar with at most one pattern. With the default
// rules and LastMatchWins a doji overrides an engulfing match on the same bar.
type PriceAction struct {
	rules      []Rule
	precedence Precedence
}

// NewPriceAction returns a tagger using DefaultRules and LastMatchWins.
func NewPriceAction() *PriceAction {
	return &PriceAction{rules: DefaultRules(), precedence: LastMatchWins}
}

// NewPriceActionWithRules allows a custom rule list and precedence.
func NewPriceActionWithRules(rules []Rule, precedence Precedence) *PriceAction {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &PriceAction{rules: cp, precedence: precedence}
}

// Calculate returns one label per bar; "" means no rule matched.
func (p *PriceAction) Calculate(s core.Series) []string {
	labels := make([]string, s.Len())
	var prev *core.Bar
	for i := 0; i < s.Len(); i++ {
		cur := s.Bar(i)
		labels[i] = p.tag(prev, cur)
		prev = &cur
	}
	return labels
}

func (p *PriceAction) tag(prev *core.Bar, cur core.Bar) string {
	label := ""
	for _, r := range p.rules {
		if !r.Match(prev, cur) {
			continue
		}
		label = r.Name
		if p.precedence == FirstMatchWins {
			break
		}
	}
	return label
}

func (p *PriceAction) Compute(s core.Series) (*core.Result, error) {
	return core.NewLabelResult("price_action", s).AddLabels("pattern", p.Calculate(s)), nil
}
