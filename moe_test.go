package svy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoe_Sum(t *testing.T) {
	combined := SumMoe(NewMoe(100, 10), NewMoe(200, 20))

	assert.True(t, combined.Known)
	assert.Equal(t, 300.0, combined.Est)
	assert.InDelta(t, math.Sqrt(500), combined.Margin, 1e-10) // 22.36

	// unknown part poisons the sum
	assert.False(t, SumMoe(NewMoe(100, 10), UnknownMoe()).Known)
}

func TestMoe_Share(t *testing.T) {
	whole := SumMoe(NewMoe(100, 10), NewMoe(200, 20))
	share := ShareMoe(NewMoe(100, 10), whole)

	assert.True(t, share.Known)
	assert.InDelta(t, 1.0/3.0, share.Est, 1e-10)

	// MOE(s) = sqrt(10^2 - (1/3)^2 * 500) / 300
	want := math.Sqrt(100-500.0/9.0) / 300
	assert.InDelta(t, want, share.Margin, 1e-10)
	assert.GreaterOrEqual(t, share.Margin, 0.0)
}

func TestMoe_ShareNegativeRadicand(t *testing.T) {
	// a part with a tiny margin against a whole with a huge one drives the
	// radicand negative; the result must be flagged, not NaN
	share := ShareMoe(NewMoe(100, 0.1), NewMoe(200, 50))

	assert.False(t, share.Known)
	assert.False(t, math.IsNaN(share.Margin))
}

func TestMoe_ShareZeroWhole(t *testing.T) {
	assert.False(t, ShareMoe(NewMoe(10, 1), NewMoe(0, 1)).Known)
}

func TestMoe_Ratio(t *testing.T) {
	r := RatioMoe(NewMoe(50, 5), NewMoe(100, 10))

	assert.True(t, r.Known)
	assert.InDelta(t, 0.5, r.Est, 1e-10)

	want := math.Sqrt(25+0.25*100) / 100
	assert.InDelta(t, want, r.Margin, 1e-10)

	assert.False(t, RatioMoe(NewMoe(1, 1), NewMoe(0, 1)).Known)
}

func TestMoe_Estimate(t *testing.T) {
	e := NewMoe(10, 2).Estimate()
	assert.True(t, e.Known)
	assert.Equal(t, 8.0, e.Lo)
	assert.Equal(t, 12.0, e.Hi)
	assert.InDelta(t, 2.0, e.MOE(), 1e-10)

	assert.False(t, UnknownMoe().Estimate().Known)
}
