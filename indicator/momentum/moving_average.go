package momentum

import (
	"fmt"

	"github.com/evdnx/gotix/indicator/core"
)

const DefaultMovingAveragePeriod = 20

// MovingAverageType selects the averaging method.
type MovingAverageType int

const (
	SMAMovingAverage MovingAverageType = iota
	EMAMovingAverage
	WMAMovingAverage
)

// ID returns the registry identifier for the average.
func (t MovingAverageType) ID() string {
	switch t {
	case SMAMovingAverage:
		return "sma"
	case EMAMovingAverage:
		return "ema"
	case WMAMovingAverage:
		return "wma"
	default:
		return "unknown"
	}
}

// MovingAverage smooths closing prices with one of the core primitives.
type MovingAverage struct {
	maType MovingAverageType
	period int
}

func NewMovingAverage(maType MovingAverageType, period int) (*MovingAverage, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	if maType < SMAMovingAverage || maType > WMAMovingAverage {
		return nil, fmt.Errorf("%w: unsupported moving average type %d", core.ErrInvalidParameter, maType)
	}
	return &MovingAverage{maType: maType, period: period}, nil
}

func (ma *MovingAverage) Calculate(s core.Series) ([]float64, error) {
	closes := s.Closes()
	switch ma.maType {
	case EMAMovingAverage:
		return core.EMA(closes, ma.period, core.Standard)
	case WMAMovingAverage:
		return core.WMA(closes, ma.period)
	default:
		return core.SMA(closes, ma.period)
	}
}

func (ma *MovingAverage) Compute(s core.Series) (*core.Result, error) {
	values, err := ma.Calculate(s)
	if err != nil {
		return nil, err
	}
	id := ma.maType.ID()
	return core.NewSeriesResult(id, s).Add(id, values), nil
}
