package sampler

import (
	"time"

	"TickerDesk/internal/model"
)

// sample applies density-weighted downsampling. Series at or under the cap
// pass through untouched. Larger series are split on elapsed time: the recent
// window (last recentFraction of the covered time range) keeps every point,
// the older window is strided so the total fits the cap. The older window's
// first and last point always survive so the boundary stays visually
// continuous.
func sample(points []model.OHLCV, maxPoints int, recentFraction float64) ([]model.OHLCV, bool) {
	if len(points) <= maxPoints {
		out := make([]model.OHLCV, len(points))
		copy(out, points)
		return out, false
	}
	if maxPoints < 3 {
		return strideWindow(points, maxPoints), true
	}

	first := points[0].Time
	last := points[len(points)-1].Time
	elapsed := last.Sub(first)
	recentStart := last.Add(-time.Duration(recentFraction * float64(elapsed)))

	// Boundary: first index inside the recent window.
	split := len(points)
	for i, p := range points {
		if !p.Time.Before(recentStart) {
			split = i
			break
		}
	}
	// The hard cap wins over the window split: when the recent window alone
	// would fill the cap, shrink it so two slots remain for the older
	// window's endpoints.
	if len(points)-split > maxPoints-2 {
		split = len(points) - (maxPoints - 2)
	}
	older, recent := points[:split], points[split:]

	budget := maxPoints - len(recent)
	out := strideWindow(older, budget)
	out = append(out, recent...)
	return out, true
}

// strideWindow thins w to at most budget points with a uniform stride,
// always keeping the first and last point.
func strideWindow(w []model.OHLCV, budget int) []model.OHLCV {
	if budget < 1 {
		budget = 1
	}
	if len(w) <= budget {
		out := make([]model.OHLCV, len(w))
		copy(out, w)
		return out
	}

	stride := (len(w) + budget - 1) / budget // ceil
	out := make([]model.OHLCV, 0, budget+1)
	for i := 0; i < len(w); i += stride {
		out = append(out, w[i])
	}
	// Force the final point in, replacing the last pick if the budget is full.
	if out[len(out)-1].Time != w[len(w)-1].Time {
		if len(out) < budget {
			out = append(out, w[len(w)-1])
		} else {
			out[len(out)-1] = w[len(w)-1]
		}
	}
	return out
}
