package volume

import "github.com/evdnx/gotix/indicator/core"

// RawMoneyFlow is typical price times volume for each bar.
func RawMoneyFlow(s core.Series) []float64 {
	return core.Zip(s.TypicalPrices(), s.Volumes(), func(tp, v float64) float64 { return tp * v })
}

// MoneyFlow exposes RawMoneyFlow as an indicator.
type MoneyFlow struct{}

func NewMoneyFlow() *MoneyFlow { return &MoneyFlow{} }

func (MoneyFlow) Compute(s core.Series) (*core.Result, error) {
	return core.NewSeriesResult("money_flow", s).Add("money_flow", RawMoneyFlow(s)), nil
}
