package svy

// Estimate is a weighted point estimate with its confidence bounds. The
// confidence level is a property of the Design that produced it, not of the
// estimate itself. Known=false marks groups where the statistic is
// undefined (no observed records, zero total weight).
type Estimate struct {
	Point float64
	Lo    float64
	Hi    float64

	Known bool
}

func UnknownEstimate() Estimate {
	return Estimate{}
}

// MOE is the half-width of the interval.
func (e Estimate) MOE() float64 {
	return (e.Hi - e.Lo) / 2
}

// Moe converts the estimate for margin-propagation arithmetic.
func (e Estimate) Moe() Moe {
	if !e.Known {
		return UnknownMoe()
	}

	return NewMoe(e.Point, e.MOE())
}
