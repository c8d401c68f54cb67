package volume

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/evdnx/gotix/indicator/core"
)

const (
	DefaultProfileBins = 10
	MaxProfileBins     = 1000
)

// VolumeProfile sums traded volume by closing-price interval. The close range
// is cut at bins evenly spaced edges, giving bins-1 intervals that are closed
// on the right. The lowest close is counted in the first interval.
type VolumeProfile struct {
	bins int
}

// ProfileBin is one price interval and the volume traded in it.
type ProfileBin struct {
	Low    float64
	High   float64
	Volume float64
}

// Label renders the interval as "(low, high]", or "[low, high]" for the
// first one.
func (b ProfileBin) Label(first bool) string {
	open := "("
	if first {
		open = "["
	}
	return fmt.Sprintf("%s%s, %s]", open, formatEdge(b.Low), formatEdge(b.High))
}

func formatEdge(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func NewVolumeProfile() (*VolumeProfile, error) {
	return NewVolumeProfileWithParams(DefaultProfileBins)
}

// NewVolumeProfileWithParams needs between 2 and MaxProfileBins edges.
func NewVolumeProfileWithParams(bins int) (*VolumeProfile, error) {
	if bins < 2 || bins > MaxProfileBins {
		return nil, fmt.Errorf("%w: bins must be in [2, %d], got %d", core.ErrInvalidParameter, MaxProfileBins, bins)
	}
	return &VolumeProfile{bins: bins}, nil
}

// Calculate returns the intervals in ascending price order. An empty series
// has no intervals; a series whose closes are all equal yields one
// zero-width interval holding all the volume.
func (vp *VolumeProfile) Calculate(s core.Series) []ProfileBin {
	if s.Len() == 0 {
		return nil
	}
	closes, volumes := s.Closes(), s.Volumes()
	lo, hi := closes[0], closes[0]
	for _, c := range closes[1:] {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	if lo == hi {
		total := 0.0
		for _, v := range volumes {
			total += v
		}
		return []ProfileBin{{Low: lo, High: hi, Volume: total}}
	}

	edges := make([]float64, vp.bins)
	step := (hi - lo) / float64(vp.bins-1)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[len(edges)-1] = hi

	out := make([]ProfileBin, vp.bins-1)
	for i := range out {
		out[i] = ProfileBin{Low: edges[i], High: edges[i+1]}
	}
	upper := edges[1:]
	for i, c := range closes {
		j := sort.SearchFloat64s(upper, c)
		if j >= len(out) {
			j = len(out) - 1
		}
		out[j].Volume += volumes[i]
	}
	return out
}

// Compute returns a snapshot keyed by interval label.
func (vp *VolumeProfile) Compute(s core.Series) (*core.Result, error) {
	res := core.NewSnapshotResult("volume_profile")
	for i, b := range vp.Calculate(s) {
		res.Set(b.Label(i == 0), b.Volume)
	}
	return res, nil
}
