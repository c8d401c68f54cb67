// Package indicator re-exports the indicator families behind one import.
package indicator

import (
	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/indicator/levels"
	"github.com/evdnx/gotix/indicator/momentum"
	"github.com/evdnx/gotix/indicator/pattern"
	"github.com/evdnx/gotix/indicator/trend"
	"github.com/evdnx/gotix/indicator/volatility"
	"github.com/evdnx/gotix/indicator/volume"
)

// Indicator is implemented by every configured calculator in the family
// packages.
type Indicator interface {
	Compute(s core.Series) (*core.Result, error)
}

// ---- Shared data types ----
type (
	Bar        = core.Bar
	Series     = core.Series
	Result     = core.Result
	ResultKind = core.ResultKind
	PlotData   = core.PlotData
)

const (
	KindSeries   = core.KindSeries
	KindLabels   = core.KindLabels
	KindSnapshot = core.KindSnapshot
)

var (
	ErrInvalidParameter = core.ErrInvalidParameter
	ErrInvalidSeries    = core.ErrInvalidSeries
)

func NewSeries(bars []Bar) (Series, error) { return core.NewSeries(bars) }

func IsUndefined(v float64) bool { return core.IsUndefined(v) }

func FormatPlotDataJSON(data []PlotData) (string, error) {
	return core.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []PlotData) (string, error) {
	return core.FormatPlotDataCSV(data)
}

// ---- Moving averages ----
type MovingAverageType = momentum.MovingAverageType

const (
	SMAMovingAverage = momentum.SMAMovingAverage
	EMAMovingAverage = momentum.EMAMovingAverage
	WMAMovingAverage = momentum.WMAMovingAverage
)

func NewMovingAverage(maType MovingAverageType, period int) (*momentum.MovingAverage, error) {
	return momentum.NewMovingAverage(maType, period)
}

func NewHullMovingAverage() (*trend.HullMovingAverage, error) {
	return trend.NewHullMovingAverage()
}

// ---- Momentum indicators ----
func NewMACD() (*momentum.MACD, error) { return momentum.NewMACD() }

func NewRelativeStrengthIndex() (*momentum.RelativeStrengthIndex, error) {
	return momentum.NewRelativeStrengthIndex()
}

func NewStochasticOscillator() (*momentum.StochasticOscillator, error) {
	return momentum.NewStochasticOscillator()
}

func NewCommodityChannelIndex() (*momentum.CommodityChannelIndex, error) {
	return momentum.NewCommodityChannelIndex()
}

func NewWilliamsR() (*momentum.WilliamsR, error) { return momentum.NewWilliamsR() }

func NewRateOfChange() (*momentum.RateOfChange, error) { return momentum.NewRateOfChange() }

func NewChandeMomentumOscillator() (*momentum.ChandeMomentumOscillator, error) {
	return momentum.NewChandeMomentumOscillator()
}

func NewRelativeVigorIndex() (*momentum.RelativeVigorIndex, error) {
	return momentum.NewRelativeVigorIndex()
}

// ---- Volatility indicators ----
func NewAverageTrueRange() (*volatility.AverageTrueRange, error) {
	return volatility.NewAverageTrueRange()
}

func NewBollingerBands() (*volatility.BollingerBands, error) {
	return volatility.NewBollingerBands()
}

func NewDonchianChannel() (*volatility.DonchianChannel, error) {
	return volatility.NewDonchianChannel()
}

func NewKeltnerChannel() (*volatility.KeltnerChannel, error) {
	return volatility.NewKeltnerChannel()
}

func NewStandardDeviation() (*volatility.StandardDeviation, error) {
	return volatility.NewStandardDeviation()
}

// ---- Volume indicators ----
func NewMoneyFlowIndex() (*volume.MoneyFlowIndex, error) { return volume.NewMoneyFlowIndex() }

func NewOnBalanceVolume() *volume.OnBalanceVolume { return volume.NewOnBalanceVolume() }

func NewVWAP() *volume.VWAP { return volume.NewVWAP() }

func NewChaikinMoneyFlow() (*volume.ChaikinMoneyFlow, error) { return volume.NewChaikinMoneyFlow() }

func NewAccumulationDistribution() *volume.AccumulationDistribution {
	return volume.NewAccumulationDistribution()
}

func NewMoneyFlow() *volume.MoneyFlow { return volume.NewMoneyFlow() }

func NewVolumeProfile() (*volume.VolumeProfile, error) { return volume.NewVolumeProfile() }

// ---- Trend indicators ----
func NewSupertrend() (*trend.Supertrend, error) { return trend.NewSupertrend() }

func NewParabolicSAR() (*trend.ParabolicSAR, error) { return trend.NewParabolicSAR() }

func NewAverageDirectionalIndex() (*trend.AverageDirectionalIndex, error) {
	return trend.NewAverageDirectionalIndex()
}

func NewIchimokuCloud() (*trend.IchimokuCloud, error) { return trend.NewIchimokuCloud() }

func NewWilliamsAlligator() (*trend.WilliamsAlligator, error) {
	return trend.NewWilliamsAlligator()
}

func NewAroonOscillator() (*trend.AroonOscillator, error) { return trend.NewAroonOscillator() }

// ---- Levels and patterns ----
func NewPivotPoints() *levels.PivotPoints { return levels.NewPivotPoints() }

func NewFibonacciRetracement() *levels.FibonacciRetracement {
	return levels.NewFibonacciRetracement()
}

func NewPriceAction() *pattern.PriceAction { return pattern.NewPriceAction() }
