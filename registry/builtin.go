package registry

import (
	"github.com/evdnx/gotix/indicator/core"
	"github.com/evdnx/gotix/indicator/levels"
	"github.com/evdnx/gotix/indicator/momentum"
	"github.com/evdnx/gotix/indicator/pattern"
	"github.com/evdnx/gotix/indicator/trend"
	"github.com/evdnx/gotix/indicator/volatility"
	"github.com/evdnx/gotix/indicator/volume"
)

type computer interface {
	Compute(s core.Series) (*core.Result, error)
}

type builtin struct {
	id     string
	desc   string
	params []ParamSpec
	build  func(p Params) (computer, error)
}

func (b builtin) handler() Handler {
	build := b.build
	return Handler{
		ID:          b.id,
		Description: b.desc,
		Params:      b.params,
		Compute: func(s core.Series, p Params) (*core.Result, error) {
			ind, err := build(p)
			if err != nil {
				return nil, err
			}
			return ind.Compute(s)
		},
	}
}

func shiftParam(name string, def int, desc string) ParamSpec {
	return ParamSpec{Name: name, Kind: Int, Default: float64(def), Min: 0, Max: MaxPeriod, Description: desc}
}

func movingAverage(t momentum.MovingAverageType, desc string) builtin {
	return builtin{
		id:     t.ID(),
		desc:   desc,
		params: []ParamSpec{intParam("period", momentum.DefaultMovingAveragePeriod, "averaging window")},
		build: func(p Params) (computer, error) {
			return momentum.NewMovingAverage(t, p.Int("period"))
		},
	}
}

func builtins() []builtin {
	return []builtin{
		// moving averages
		movingAverage(momentum.SMAMovingAverage, "Simple moving average of close"),
		movingAverage(momentum.EMAMovingAverage, "Exponential moving average of close"),
		movingAverage(momentum.WMAMovingAverage, "Linearly weighted moving average of close"),
		{
			id:     "hma",
			desc:   "Hull moving average with close crossover signals",
			params: []ParamSpec{intParam("period", trend.DefaultHMAPeriod, "hull period")},
			build: func(p Params) (computer, error) {
				return trend.NewHullMovingAverageWithParams(p.Int("period"))
			},
		},

		// momentum
		{
			id:   "macd",
			desc: "Moving average convergence divergence",
			params: []ParamSpec{
				intParam("fast_period", momentum.DefaultMACDFastPeriod, "fast EMA period"),
				intParam("slow_period", momentum.DefaultMACDSlowPeriod, "slow EMA period"),
				intParam("signal_period", momentum.DefaultMACDSignalPeriod, "signal EMA period"),
			},
			build: func(p Params) (computer, error) {
				return momentum.NewMACDWithParams(p.Int("fast_period"), p.Int("slow_period"), p.Int("signal_period"))
			},
		},
		{
			id:     "rsi",
			desc:   "Relative strength index (Wilder)",
			params: []ParamSpec{intParam("period", momentum.DefaultRSIPeriod, "smoothing period")},
			build: func(p Params) (computer, error) {
				return momentum.NewRelativeStrengthIndexWithParams(p.Int("period"))
			},
		},
		{
			id:   "stochastic",
			desc: "Stochastic oscillator %K/%D",
			params: []ParamSpec{
				intParam("k_period", momentum.DefaultStochasticKPeriod, "%K lookback"),
				intParam("d_period", momentum.DefaultStochasticDPeriod, "%D smoothing"),
			},
			build: func(p Params) (computer, error) {
				return momentum.NewStochasticOscillatorWithParams(p.Int("k_period"), p.Int("d_period"))
			},
		},
		{
			id:     "cci",
			desc:   "Commodity channel index",
			params: []ParamSpec{intParam("period", momentum.DefaultCCIPeriod, "typical price window")},
			build: func(p Params) (computer, error) {
				return momentum.NewCommodityChannelIndexWithParams(p.Int("period"))
			},
		},
		{
			id:     "williams_r",
			desc:   "Williams %R",
			params: []ParamSpec{intParam("period", momentum.DefaultWilliamsRPeriod, "lookback")},
			build: func(p Params) (computer, error) {
				return momentum.NewWilliamsRWithParams(p.Int("period"))
			},
		},
		{
			id:     "roc",
			desc:   "Rate of change in percent",
			params: []ParamSpec{intParam("period", momentum.DefaultROCPeriod, "lookback")},
			build: func(p Params) (computer, error) {
				return momentum.NewRateOfChangeWithParams(p.Int("period"))
			},
		},
		{
			id:     "cmo",
			desc:   "Chande momentum oscillator",
			params: []ParamSpec{intParam("period", momentum.DefaultCMOPeriod, "number of differences")},
			build: func(p Params) (computer, error) {
				return momentum.NewChandeMomentumOscillatorWithParams(p.Int("period"))
			},
		},
		{
			id:   "rvi",
			desc: "Relative vigor index",
			params: []ParamSpec{
				intParam("period", momentum.DefaultRVIPeriod, "sum window"),
				intParam("signal_period", momentum.DefaultRVISignalPeriod, "signal SMA period"),
			},
			build: func(p Params) (computer, error) {
				return momentum.NewRelativeVigorIndexWithParams(p.Int("period"), p.Int("signal_period"))
			},
		},

		// volatility
		{
			id:   "bollinger",
			desc: "Bollinger bands",
			params: []ParamSpec{
				intParam("period", volatility.DefaultBollingerPeriod, "SMA window"),
				floatParam("std_dev", volatility.DefaultBollingerMultiplier, "band width in standard deviations"),
			},
			build: func(p Params) (computer, error) {
				return volatility.NewBollingerBandsWithParams(p.Int("period"), p.Float("std_dev"))
			},
		},
		{
			id:     "atr",
			desc:   "Average true range (Wilder)",
			params: []ParamSpec{intParam("period", volatility.DefaultATRPeriod, "smoothing period")},
			build: func(p Params) (computer, error) {
				return volatility.NewAverageTrueRangeWithParams(p.Int("period"))
			},
		},
		{
			id:     "stddev",
			desc:   "Rolling population standard deviation of close",
			params: []ParamSpec{intParam("period", volatility.DefaultStdDevPeriod, "window")},
			build: func(p Params) (computer, error) {
				return volatility.NewStandardDeviationWithParams(p.Int("period"))
			},
		},
		{
			id:     "donchian",
			desc:   "Donchian channel",
			params: []ParamSpec{intParam("period", volatility.DefaultDonchianPeriod, "window")},
			build: func(p Params) (computer, error) {
				return volatility.NewDonchianChannelWithParams(p.Int("period"))
			},
		},
		{
			id:   "keltner",
			desc: "Keltner channel",
			params: []ParamSpec{
				intParam("period", volatility.DefaultKeltnerPeriod, "EMA period"),
				intParam("atr_period", volatility.DefaultKeltnerATRPeriod, "ATR period"),
				floatParam("multiplier", volatility.DefaultKeltnerMultiplier, "ATR multiple"),
			},
			build: func(p Params) (computer, error) {
				return volatility.NewKeltnerChannelWithParams(p.Int("period"), p.Int("atr_period"), p.Float("multiplier"))
			},
		},

		// volume
		{
			id:     "mfi",
			desc:   "Money flow index",
			params: []ParamSpec{intParam("period", volume.DefaultMFIPeriod, "number of flows")},
			build: func(p Params) (computer, error) {
				return volume.NewMoneyFlowIndexWithParams(p.Int("period"))
			},
		},
		{
			id:    "obv",
			desc:  "On-balance volume",
			build: func(Params) (computer, error) { return volume.NewOnBalanceVolume(), nil },
		},
		{
			id:    "vwap",
			desc:  "Cumulative volume weighted average price",
			build: func(Params) (computer, error) { return volume.NewVWAP(), nil },
		},
		{
			id:     "cmf",
			desc:   "Chaikin money flow",
			params: []ParamSpec{intParam("period", volume.DefaultCMFPeriod, "window")},
			build: func(p Params) (computer, error) {
				return volume.NewChaikinMoneyFlowWithParams(p.Int("period"))
			},
		},
		{
			id:    "adl",
			desc:  "Accumulation/distribution line",
			build: func(Params) (computer, error) { return volume.NewAccumulationDistribution(), nil },
		},
		{
			id:    "money_flow",
			desc:  "Raw money flow (typical price times volume)",
			build: func(Params) (computer, error) { return volume.NewMoneyFlow(), nil },
		},
		{
			id:   "volume_profile",
			desc: "Volume by closing price interval",
			params: []ParamSpec{
				{Name: "bins", Kind: Int, Default: volume.DefaultProfileBins, Min: 2, Max: volume.MaxProfileBins, Description: "number of interval edges"},
			},
			build: func(p Params) (computer, error) {
				return volume.NewVolumeProfileWithParams(p.Int("bins"))
			},
		},

		// trend
		{
			id:   "supertrend",
			desc: "Supertrend",
			params: []ParamSpec{
				intParam("atr_period", trend.DefaultSupertrendATRPeriod, "ATR period"),
				floatParam("multiplier", trend.DefaultSupertrendMultiplier, "ATR multiple"),
			},
			build: func(p Params) (computer, error) {
				return trend.NewSupertrendWithParams(p.Int("atr_period"), p.Float("multiplier"))
			},
		},
		{
			id:   "parabolic_sar",
			desc: "Parabolic stop and reverse",
			params: []ParamSpec{
				floatParam("initial_af", trend.DefaultSARInitialAF, "starting acceleration factor"),
				floatParam("increment", trend.DefaultSARIncrement, "acceleration step"),
				floatParam("max_af", trend.DefaultSARMaxAF, "acceleration cap"),
			},
			build: func(p Params) (computer, error) {
				return trend.NewParabolicSARWithParams(p.Float("initial_af"), p.Float("increment"), p.Float("max_af"))
			},
		},
		{
			id:     "adx",
			desc:   "Average directional index with +DI/-DI",
			params: []ParamSpec{intParam("period", trend.DefaultADXPeriod, "smoothing period")},
			build: func(p Params) (computer, error) {
				return trend.NewAverageDirectionalIndexWithParams(p.Int("period"))
			},
		},
		{
			id:   "ichimoku",
			desc: "Ichimoku cloud",
			params: []ParamSpec{
				intParam("tenkan_period", trend.DefaultTenkanPeriod, "conversion line window"),
				intParam("kijun_period", trend.DefaultKijunPeriod, "base line window and span shift"),
				intParam("senkou_b_period", trend.DefaultSenkouBPeriod, "leading span B window"),
				intParam("chikou_period", trend.DefaultChikouPeriod, "lagging span shift"),
			},
			build: func(p Params) (computer, error) {
				return trend.NewIchimokuCloudWithParams(p.Int("tenkan_period"), p.Int("kijun_period"),
					p.Int("senkou_b_period"), p.Int("chikou_period"))
			},
		},
		{
			id:   "alligator",
			desc: "Williams alligator",
			params: []ParamSpec{
				intParam("jaw_period", trend.DefaultJawPeriod, "jaw SMA period"),
				shiftParam("jaw_shift", trend.DefaultJawShift, "jaw forward shift"),
				intParam("teeth_period", trend.DefaultTeethPeriod, "teeth SMA period"),
				shiftParam("teeth_shift", trend.DefaultTeethShift, "teeth forward shift"),
				intParam("lips_period", trend.DefaultLipsPeriod, "lips SMA period"),
				shiftParam("lips_shift", trend.DefaultLipsShift, "lips forward shift"),
			},
			build: func(p Params) (computer, error) {
				return trend.NewWilliamsAlligatorWithParams(
					p.Int("jaw_period"), p.Int("jaw_shift"),
					p.Int("teeth_period"), p.Int("teeth_shift"),
					p.Int("lips_period"), p.Int("lips_shift"))
			},
		},
		{
			id:     "aroon",
			desc:   "Aroon oscillator",
			params: []ParamSpec{intParam("period", trend.DefaultAroonPeriod, "lookback")},
			build: func(p Params) (computer, error) {
				return trend.NewAroonOscillatorWithParams(p.Int("period"))
			},
		},

		// levels and patterns
		{
			id:    "pivot_points",
			desc:  "Classic floor pivots from the latest bar",
			build: func(Params) (computer, error) { return levels.NewPivotPoints(), nil },
		},
		{
			id:    "fibonacci",
			desc:  "Fibonacci retracement over the full range",
			build: func(Params) (computer, error) { return levels.NewFibonacciRetracement(), nil },
		},
		{
			id:    "price_action",
			desc:  "Candlestick pattern labels",
			build: func(Params) (computer, error) { return pattern.NewPriceAction(), nil },
		},
	}
}

// Default returns a registry holding every built-in indicator.
func Default() *Registry {
	r := New()
	for _, b := range builtins() {
		if err := r.Register(b.handler()); err != nil {
			panic(err)
		}
	}
	return r
}
