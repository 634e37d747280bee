package svy

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the confidence level used when no option overrides
// it. 90% is the convention for published ACS estimates.
const DefaultConfidence = 0.90

// Design describes the weighting scheme behind a sample: the full-sample
// weights, optionally a set of replicate weight vectors for design-based
// variance estimation, and the confidence level for intervals. It is the
// explicit carrier of what would otherwise be ambient analysis options.
type Design struct {
	weights    []float64
	reps       [][]float64
	repFactor  float64
	confidence float64
}

type DOpt func(d *Design) *Design

// NewDesign builds a design over full-sample weights. Without replicates,
// standard errors fall back to a with-replacement linearization.
func NewDesign(weights []float64, opts ...DOpt) *Design {
	d := &Design{
		weights:    weights,
		confidence: DefaultConfidence,
	}

	for _, o := range opts {
		d = o(d)
	}

	return d
}

func WithConfidence(level float64) DOpt {
	if level <= 0.0 || level >= 1.0 {
		panic(fmt.Errorf("confidence level must be in (0,1)"))
	}

	return func(d *Design) *Design {
		d.confidence = level
		return d
	}
}

// WithReplicates attaches replicate weight vectors. Each vector must be the
// same length as the full-sample weights. The replication factor defaults
// to 4/R, the successive-difference convention the ACS replicate weights
// are built for.
func WithReplicates(reps [][]float64) DOpt {
	return func(d *Design) *Design {
		for ind := 0; ind < len(reps); ind++ {
			if len(reps[ind]) != len(d.weights) {
				panic(fmt.Errorf("replicate %d length mismatch", ind))
			}
		}

		d.reps = reps
		if d.repFactor == 0 && len(reps) > 0 {
			d.repFactor = 4.0 / float64(len(reps))
		}

		return d
	}
}

func WithReplicateFactor(f float64) DOpt {
	if f <= 0.0 {
		panic(fmt.Errorf("replication factor must be positive"))
	}

	return func(d *Design) *Design {
		d.repFactor = f
		return d
	}
}

func (d *Design) Len() int {
	return len(d.weights)
}

func (d *Design) Confidence() float64 {
	return d.confidence
}

// Subset restricts the design to the rows where keep is true, replicates
// included. Group-wise estimation runs on subsets of one shared design.
func (d *Design) Subset(keep []bool) *Design {
	if len(keep) != len(d.weights) {
		panic(fmt.Errorf("length mismatch in Design.Subset"))
	}

	sub := &Design{
		repFactor:  d.repFactor,
		confidence: d.confidence,
	}

	for ind := 0; ind < len(keep); ind++ {
		if keep[ind] {
			sub.weights = append(sub.weights, d.weights[ind])
		}
	}

	for _, rep := range d.reps {
		var r []float64
		for ind := 0; ind < len(keep); ind++ {
			if keep[ind] {
				r = append(r, rep[ind])
			}
		}

		sub.reps = append(sub.reps, r)
	}

	return sub
}

// critical is the two-sided normal critical value at the design's
// confidence level (1.645 at 90%).
func (d *Design) critical() float64 {
	n := distuv.Normal{Mu: 0, Sigma: 1}

	return n.Quantile(0.5 + d.confidence/2)
}
