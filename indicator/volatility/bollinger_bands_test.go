package volatility

import (
	"math"
	"testing"

	"github.com/evdnx/gotix/indicator/core"
)

func TestBollingerBands_Calculation(t *testing.T) {
	bb, err := NewBollingerBandsWithParams(3, 2)
	if err != nil {
		t.Fatalf("constructor error: %v", err)
	}

	out, err := bb.Calculate(closesSeries(10, 12, 14))
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	// population std of {10,12,14} is sqrt(8/3)
	std := math.Sqrt(8.0 / 3.0)
	upper, mid, lower := out.Upper[2], out.Middle[2], out.Lower[2]
	if !approxEqual(mid, 12) || !approxEqual(upper, 12+2*std) || !approxEqual(lower, 12-2*std) {
		t.Fatalf("unexpected bands: upper %.4f, mid %.4f, lower %.4f", upper, mid, lower)
	}
	for i := 0; i < 2; i++ {
		if !core.IsUndefined(out.Upper[i]) || !core.IsUndefined(out.Middle[i]) || !core.IsUndefined(out.Lower[i]) {
			t.Fatalf("index %d should be undefined during warm-up", i)
		}
	}
}

func TestBollingerBands_InvalidParams(t *testing.T) {
	if _, err := NewBollingerBandsWithParams(0, 2); err == nil {
		t.Fatal("expected error for period 0")
	}
	if _, err := NewBollingerBandsWithParams(20, 0); err == nil {
		t.Fatal("expected error for zero multiplier")
	}
}

func TestBollingerBands_ComputeOrder(t *testing.T) {
	bb, _ := NewBollingerBands()
	res, err := bb.Compute(closesSeries(1, 2, 3))
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	want := []string{"middle", "upper", "lower"}
	for i, n := range want {
		if res.Names[i] != n {
			t.Fatalf("output %d = %q, want %q", i, res.Names[i], n)
		}
	}
}
