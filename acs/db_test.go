package acs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urbandatalab/svy"
)

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{int64(42), 42},
		{int32(-7), -7},
		{int16(9), 9},
		{int8(3), 3},
		{int(100), 100},
		{uint64(85), 85},
		{uint32(36), 36},
		{uint16(12), 12},
		{uint8(5), 5},
		{float64(90), 90},
	}

	for _, c := range cases {
		got, e := asInt(c.in)
		assert.Nil(t, e)
		assert.Equal(t, c.want, got)
	}

	_, e := asInt("3801")
	assert.NotNil(t, e)

	_, e = asInt(nil)
	assert.NotNil(t, e)
}

func TestAsFloat(t *testing.T) {
	got, e := asFloat(float64(85.5))
	assert.Nil(t, e)
	assert.Equal(t, 85.5, got)

	got, e = asFloat(float32(2.5))
	assert.Nil(t, e)
	assert.Equal(t, 2.5, got)

	// integer-typed weight columns coerce through
	got, e = asFloat(int64(90))
	assert.Nil(t, e)
	assert.Equal(t, 90.0, got)

	_, e = asFloat("85.0")
	assert.NotNil(t, e)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"at_risk"`, quoteIdent("at_risk"))
	assert.Equal(t, `"building size"`, quoteIdent("building size"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestInsertArgs(t *testing.T) {
	known := svy.Row{
		Keys: []string{"under $25k"},
		Est:  svy.Estimate{Point: 0.25, Lo: 0.2, Hi: 0.3, Known: true},
	}
	assert.Equal(t, []any{"under $25k", 0.25, 0.2, 0.3}, insertArgs(known))

	// unknown estimates land as NULLs, never as zeros
	unknown := svy.Row{Keys: []string{"$150k+"}, Est: svy.UnknownEstimate()}
	assert.Equal(t, []any{"$150k+", nil, nil, nil}, insertArgs(unknown))
}
