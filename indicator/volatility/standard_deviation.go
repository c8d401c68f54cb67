package volatility

import "github.com/evdnx/gotix/indicator/core"

const DefaultStdDevPeriod = 20

// StandardDeviation is the rolling population standard deviation of closes.
type StandardDeviation struct {
	period int
}

func NewStandardDeviation() (*StandardDeviation, error) {
	return NewStandardDeviationWithParams(DefaultStdDevPeriod)
}

func NewStandardDeviationWithParams(period int) (*StandardDeviation, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	return &StandardDeviation{period: period}, nil
}

func (sd *StandardDeviation) Calculate(s core.Series) ([]float64, error) {
	return core.RollingStdDev(s.Closes(), sd.period)
}

func (sd *StandardDeviation) Compute(s core.Series) (*core.Result, error) {
	values, err := sd.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("stddev", s).Add("stddev", values), nil
}
