package svy

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// statFn computes a weighted point statistic over observed (value, weight)
// pairs. ok=false means the statistic is undefined for the inputs (no
// records, zero total weight).
type statFn func(vals, wts []float64) (float64, bool)

// seFn is the linearized standard error used when the design carries no
// replicate weights, treating records as with-replacement draws.
type seFn func(point float64, vals, wts []float64) float64

// Mean estimates the weighted mean of v. For a 0/1 vector this is the
// weighted proportion. Missing values drop out of numerator and denominator
// both.
func (d *Design) Mean(v *Vector) Estimate {
	return d.estimate(v, weightedMean, meanSE)
}

// Total estimates the weighted total sum(value * weight).
func (d *Design) Total(v *Vector) Estimate {
	return d.estimate(v, weightedTotal, totalSE)
}

// Count estimates the population count: a Total over a vector of 1s.
func (d *Design) Count() Estimate {
	return d.estimate(Ones(d.Len()), weightedTotal, totalSE)
}

// Median estimates the weighted median of v.
func (d *Design) Median(v *Vector) Estimate {
	return d.Quantile(0.5, v)
}

// Quantile estimates the weighted quantile of v at level q in (0,1): the
// value at which cumulative weight reaches q of total weight. When the
// target lands exactly on the boundary between two sorted records, the
// midpoint of the adjacent values is returned. Without replicate weights
// the interval comes from Woodruff inversion rather than symmetric
// replication, so it can sit asymmetrically around the point.
func (d *Design) Quantile(q float64, v *Vector) Estimate {
	if q <= 0.0 || q >= 1.0 {
		return UnknownEstimate()
	}

	qf := func(vals, wts []float64) (float64, bool) { return weightedQuantile(q, vals, wts) }

	if d.reps != nil {
		return d.estimate(v, qf, nil)
	}

	vals, wts := v.Observed(d.weights)

	point, ok := weightedQuantile(q, vals, wts)
	if !ok {
		return UnknownEstimate()
	}

	lo, hi := woodruffBounds(q, vals, wts, d.critical())

	return Estimate{Point: point, Lo: lo, Hi: hi, Known: true}
}

// estimate computes the point statistic under the full-sample weights, then
// a design-based standard error: successive-difference replication when the
// design carries replicate weights, the statistic's linearization otherwise.
func (d *Design) estimate(v *Vector, fn statFn, lin seFn) Estimate {
	if v.Len() != d.Len() {
		panic("value/weight length mismatch")
	}

	vals, wts := v.Observed(d.weights)

	point, ok := fn(vals, wts)
	if !ok {
		return UnknownEstimate()
	}

	var se float64
	switch {
	case d.reps != nil:
		se = d.replicateSE(point, v, fn)
	case lin != nil:
		se = lin(point, vals, wts)
	}

	z := d.critical()

	return Estimate{Point: point, Lo: point - z*se, Hi: point + z*se, Known: true}
}

// replicateSE recomputes the statistic under each replicate weight vector:
// SE = sqrt(f * sum((theta_r - theta)^2)). A replicate under which the
// statistic is undefined contributes zero, the convention for empty
// replicate subsamples.
func (d *Design) replicateSE(point float64, v *Vector, fn statFn) float64 {
	var ss float64
	for _, rep := range d.reps {
		vals, wts := v.Observed(rep)

		theta, ok := fn(vals, wts)
		if !ok {
			continue
		}

		ss += (theta - point) * (theta - point)
	}

	return math.Sqrt(d.repFactor * ss)
}

func weightedMean(vals, wts []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}

	var sumW float64
	for _, w := range wts {
		sumW += w
	}

	if sumW == 0 {
		return 0, false
	}

	return stat.Mean(vals, wts), true
}

func weightedTotal(vals, wts []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}

	var tot, sumW float64
	for ind := 0; ind < len(vals); ind++ {
		tot += vals[ind] * wts[ind]
		sumW += wts[ind]
	}

	if sumW == 0 {
		return 0, false
	}

	return tot, true
}

// meanSE: SE(xbar) = sqrt(sum(w_i^2 (x_i - xbar)^2)) / sum(w).
func meanSE(point float64, vals, wts []float64) float64 {
	n := len(vals)
	if n <= 1 {
		return 0
	}

	var sumW, ss float64
	for ind := 0; ind < n; ind++ {
		sumW += wts[ind]
		r := wts[ind] * (vals[ind] - point)
		ss += r * r
	}

	if sumW == 0 {
		return 0
	}

	return math.Sqrt(ss) / sumW
}

// totalSE: SE(T) = sqrt(n/(n-1) * sum((w_i x_i - zbar)^2)), z_i = w_i x_i.
func totalSE(point float64, vals, wts []float64) float64 {
	n := len(vals)
	if n <= 1 {
		return 0
	}

	var zbar float64
	for ind := 0; ind < n; ind++ {
		zbar += wts[ind] * vals[ind]
	}
	zbar /= float64(n)

	var ss float64
	for ind := 0; ind < n; ind++ {
		r := wts[ind]*vals[ind] - zbar
		ss += r * r
	}

	return math.Sqrt(float64(n) / float64(n-1) * ss)
}

// weightedQuantile sorts the observed values and walks cumulative weight to
// the target q * totalWeight. Landing strictly inside a record's weight mass
// yields that record's value; landing exactly on the boundary between two
// records interpolates their midpoint.
func weightedQuantile(q float64, vals, wts []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}

	type vw struct {
		v, w float64
	}

	recs := make([]vw, 0, len(vals))

	var sumW float64
	for ind := 0; ind < len(vals); ind++ {
		if wts[ind] < 0 {
			return 0, false
		}

		sumW += wts[ind]
		recs = append(recs, vw{v: vals[ind], w: wts[ind]})
	}

	if sumW == 0 {
		return 0, false
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].v < recs[j].v })

	target := q * sumW

	var cum float64
	for ind := 0; ind < len(recs); ind++ {
		cum += recs[ind].w

		if cum > target {
			return recs[ind].v, true
		}

		if cum == target {
			if ind == len(recs)-1 {
				return recs[ind].v, true
			}

			return (recs[ind].v + recs[ind+1].v) / 2, true
		}
	}

	return recs[len(recs)-1].v, true
}

// woodruffBounds inverts a confidence interval for the cumulative
// proportion at q into value space: the quantile function evaluated at
// q -/+ z*SE(p), with SE(p) from the effective sample size.
func woodruffBounds(q float64, vals, wts []float64, z float64) (lo, hi float64) {
	var sumW, sumW2 float64
	for _, w := range wts {
		sumW += w
		sumW2 += w * w
	}

	point, _ := weightedQuantile(q, vals, wts)
	if sumW2 == 0 {
		return point, point
	}

	nEff := sumW * sumW / sumW2
	seP := math.Sqrt(q * (1 - q) / nEff)

	qLo := math.Max(q-z*seP, 1e-9)
	qHi := math.Min(q+z*seP, 1-1e-9)

	lo, _ = weightedQuantile(qLo, vals, wts)
	hi, _ = weightedQuantile(qHi, vals, wts)

	return lo, hi
}
