package svy

import "math"

// Moe is a point value carrying an additive margin of error at some fixed
// confidence level. Known=false marks an undefined quantity: arithmetic on
// Moes propagates unknown rather than producing NaN.
type Moe struct {
	Est    float64
	Margin float64

	Known bool
}

func NewMoe(est, margin float64) Moe {
	return Moe{Est: est, Margin: math.Abs(margin), Known: true}
}

// Unknown is the Moe of an undefined quantity.
func UnknownMoe() Moe {
	return Moe{}
}

// SumMoe combines independently estimated totals. The combined margin is the
// root-sum-square of the parts, the standard combination under independence.
// Any unknown part makes the sum unknown.
func SumMoe(parts ...Moe) Moe {
	var est, ss float64
	for _, p := range parts {
		if !p.Known {
			return UnknownMoe()
		}

		est += p.Est
		ss += p.Margin * p.Margin
	}

	return Moe{Est: est, Margin: math.Sqrt(ss), Known: true}
}

// ShareMoe computes part's share of whole with a propagated margin:
//
//	s       = part / whole
//	MOE(s)  = sqrt(MOE(part)^2 - (s * MOE(whole))^2) / whole
//
// The radicand can go negative when the part's margin is small relative to
// its slice of the whole's margin; that case, a zero whole, and any unknown
// input all come back unknown rather than as a silently wrong number.
func ShareMoe(part, whole Moe) Moe {
	if !part.Known || !whole.Known || whole.Est == 0 {
		return UnknownMoe()
	}

	s := part.Est / whole.Est

	rad := part.Margin*part.Margin - s*s*whole.Margin*whole.Margin
	if rad < 0 {
		return UnknownMoe()
	}

	return Moe{Est: s, Margin: math.Sqrt(rad) / math.Abs(whole.Est), Known: true}
}

// Estimate converts back to interval form for tables and charts.
func (m Moe) Estimate() Estimate {
	if !m.Known {
		return UnknownEstimate()
	}

	return Estimate{Point: m.Est, Lo: m.Est - m.Margin, Hi: m.Est + m.Margin, Known: true}
}

// RatioMoe propagates the margin of a ratio of two independent estimates:
//
//	MOE(a/b) = sqrt(MOE(a)^2 + (a/b)^2 * MOE(b)^2) / b
//
// Unlike ShareMoe, the numerator is not a subset of the denominator, so the
// variance terms add.
func RatioMoe(num, den Moe) Moe {
	if !num.Known || !den.Known || den.Est == 0 {
		return UnknownMoe()
	}

	r := num.Est / den.Est
	m := math.Sqrt(num.Margin*num.Margin+r*r*den.Margin*den.Margin) / math.Abs(den.Est)

	return Moe{Est: r, Margin: m, Known: true}
}
