package svy

import (
	"fmt"
	"sort"
)

// InsufficientData is the category for estimates whose margin of error is
// too wide to place in a bin, and for unknown estimates.
const InsufficientData = "insufficient data"

// Classifier assigns estimates to ordered bins defined by breakpoints, or
// to InsufficientData when the margin of error exceeds the suppression
// threshold. Bins are closed on the left: breaks b0 < b1 < ... define
// (-inf, b0), [b0, b1), ..., [bLast, +inf), so every value lands in exactly
// one bin.
type Classifier struct {
	breaks   []float64
	labels   []string
	suppress float64
}

// NewClassifier requires strictly ascending breaks and one more label than
// break. suppress is the largest margin of error still classified.
func NewClassifier(breaks []float64, labels []string, suppress float64) (*Classifier, error) {
	if len(breaks) == 0 {
		return nil, fmt.Errorf("no breakpoints")
	}

	if len(labels) != len(breaks)+1 {
		return nil, fmt.Errorf("need %d labels, got %d", len(breaks)+1, len(labels))
	}

	if !sort.Float64sAreSorted(breaks) {
		return nil, fmt.Errorf("breakpoints must be ascending")
	}

	for ind := 1; ind < len(breaks); ind++ {
		if breaks[ind] == breaks[ind-1] {
			return nil, fmt.Errorf("duplicate breakpoint %v", breaks[ind])
		}
	}

	if suppress < 0 {
		return nil, fmt.Errorf("negative suppression threshold")
	}

	return &Classifier{breaks: breaks, labels: labels, suppress: suppress}, nil
}

// Classify maps an estimate to its bin label. Suppression always wins: an
// estimate with MOE above the threshold is InsufficientData no matter where
// its point value falls.
func (c *Classifier) Classify(e Estimate) string {
	if !e.Known || e.MOE() > c.suppress {
		return InsufficientData
	}

	for ind := 0; ind < len(c.breaks); ind++ {
		if e.Point < c.breaks[ind] {
			return c.labels[ind]
		}
	}

	return c.labels[len(c.breaks)]
}

// Labels returns the bin labels in order, without InsufficientData.
func (c *Classifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)

	return out
}
