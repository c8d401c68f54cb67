package momentum

import "github.com/evdnx/gotix/indicator/core"

const (
	DefaultRVIPeriod       = 14
	DefaultRVISignalPeriod = 4
)

// RelativeVigorIndex compares the close-open body to the high-low range over
// a trailing window, with an SMA signal line.
type RelativeVigorIndex struct {
	period       int
	signalPeriod int
}

type RVIOutput struct {
	RVI    []float64
	Signal []float64
}

func NewRelativeVigorIndex() (*RelativeVigorIndex, error) {
	return NewRelativeVigorIndexWithParams(DefaultRVIPeriod, DefaultRVISignalPeriod)
}

func NewRelativeVigorIndexWithParams(period, signalPeriod int) (*RelativeVigorIndex, error) {
	if err := core.RequirePeriod("period", period); err != nil {
		return nil, err
	}
	if err := core.RequirePeriod("signal_period", signalPeriod); err != nil {
		return nil, err
	}
	return &RelativeVigorIndex{period: period, signalPeriod: signalPeriod}, nil
}

func (r *RelativeVigorIndex) Calculate(s core.Series) (RVIOutput, error) {
	body := core.Zip(s.Closes(), s.Opens(), func(c, o float64) float64 { return c - o })
	span := core.Zip(s.Highs(), s.Lows(), func(h, l float64) float64 { return h - l })
	num, err := core.RollingSum(body, r.period)
	if err != nil {
		return RVIOutput{}, err
	}
	den, err := core.RollingSum(span, r.period)
	if err != nil {
		return RVIOutput{}, err
	}
	rvi := core.Zip(num, den, core.Ratio)
	signal, err := core.SMA(rvi, r.signalPeriod)
	if err != nil {
		return RVIOutput{}, err
	}
	return RVIOutput{RVI: rvi, Signal: signal}, nil
}

func (r *RelativeVigorIndex) Compute(s core.Series) (*core.Result, error) {
	out, err := r.Calculate(s)
	if err != nil {
		return nil, err
	}
	return core.NewSeriesResult("rvi", s).Add("rvi", out.RVI).Add("signal", out.Signal), nil
}
