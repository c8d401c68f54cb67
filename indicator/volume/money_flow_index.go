package volume

import "github.com/evdnx/gotix/indicator/core"

const DefaultMFIPeriod = 14

// MoneyFlowIndex is a volume-weighted RSI over typical prices. Flows start at
// the second bar, so the first value is at index period.
type MoneyFlowIndex struct {
	period int
}

func NewMoneyFlowIndex() (*MoneyFlowIndex, error) {
	return NewMoneyFlowIndexWithParams(DefaultMFIPeriod)
}

func NewMoneyFlowIndexWithParams(period int) (*MoneyFlowIndex, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &MoneyFlowIndex{period: period}, nil
}

// directionalFlows splits raw money flow by the direction of the typical
// price. An unchanged typical price counts on neither side.
func directionalFlows(s core.Series) (pos, neg []float64) {
	tp := s.TypicalPrices()
	raw := RawMoneyFlow(s)
	pos = core.NewUndefined(s.Len())
	neg = core.NewUndefined(s.Len())
	for i := 1; i < s.Len(); i++ {
		pos[i], neg[i] = 0, 0
		switch {
		case tp[i] > tp[i-1]:
			pos[i] = raw[i]
		case tp[i] < tp[i-1]:
			neg[i] = raw[i]
		}
	}
	return pos, neg
}

func (m *MoneyFlowIndex) Calculate(s core.Series) ([]float64, error) {
	pos, neg := directionalFlows(s)
	posSum, err := core.RollingSum(pos, m.period)
	if err != nil {
		return nil, err
	}
	negSum, err := core.RollingSum(neg, m.period)
	if err != nil {
		return nil, err
	}
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = flowIndex(posSum[i], negSum[i])
	}
	return out, nil
}

// flowIndex is 100 - 100/(1+pos/neg): 100 with no negative flow, undefined
// with no flow at all.
func flowIndex(pos, neg float64) float64 {
	switch {
	case core.IsUndefined(pos) || core.IsUndefined(neg):
		return core.Undefined()
	case neg == 0 && pos == 0:
		return core.Undefined()
	case neg == 0:
		return 100
	default:
		return 100 - 100/(1+pos/neg)
	}
}

func (m *MoneyFlowIndex) Compute(s core.Series) (*core.Result, error) {
	values, err := m.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("mfi", s).Add("mfi", values), nil
}
