package momentum

import (
	"math"
	"testing"

	"github.com/evdnx/gotix/indicator/core"
)

func TestCommodityChannelIndex_Calculation(t *testing.T) {
	cci, err := NewCommodityChannelIndexWithParams(3)
	if err != nil {
		t.Fatalf("constructor error: %v", err)
	}

	s := hlcSeries(
		[3]float64{10, 8, 9},
		[3]float64{11, 9, 10},
		[3]float64{12, 10, 11}, // first CCI
		[3]float64{10, 8, 9},
	)
	out, err := cci.Calculate(s)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	// With the first three bars, TP values are [9,10,11]:
	//   SMA = 10, mean deviation = 2/3, CCI = (11-10)/(0.015*(2/3)) = 100.
	if math.Abs(out[2]-100) > 1e-6 {
		t.Fatalf("unexpected CCI: got %.6f, want 100", out[2])
	}
	// The fourth bar swings the CCI negative: TP window [10,11,9].
	if math.Abs(out[3]+100) > 1e-6 {
		t.Fatalf("unexpected CCI after drop: got %.6f, want -100", out[3])
	}
}

func TestCommodityChannelIndex_FlatIsUndefined(t *testing.T) {
	cci, _ := NewCommodityChannelIndexWithParams(2)
	out, err := cci.Calculate(closeSeries(4, 4, 4))
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if !core.IsUndefined(out[2]) {
		t.Fatalf("expected undefined CCI for zero deviation, got %v", out[2])
	}
}

func TestCommodityChannelIndex_InvalidPeriod(t *testing.T) {
	if _, err := NewCommodityChannelIndexWithParams(0); err == nil {
		t.Fatal("expected error for period < 1")
	}
}
