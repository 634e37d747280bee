package svy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	g string
	x float64
	w float64
}

func TestGroupBy_Order(t *testing.T) {
	rows := []rec{{"b", 1, 1}, {"a", 2, 1}, {"b", 3, 1}, {"c", 4, 1}}

	keys, groups := GroupBy(rows, func(r rec) string { return r.g })

	assert.Equal(t, []string{"b", "a", "c"}, keys)
	assert.Len(t, groups["b"], 2)
	assert.Len(t, groups["a"], 1)
}

func TestGroupIndex_WithLevels(t *testing.T) {
	rows := []rec{{"b", 1, 1}, {"a", 2, 1}}

	keys, groups := GroupIndex(rows, func(r rec) string { return r.g })
	keys, groups = WithLevels(keys, groups, []string{"a", "b", "c"})

	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)
	assert.Empty(t, groups["c"])
	assert.Equal(t, []int{0}, groups["b"])
}

func TestGroupEstimate(t *testing.T) {
	rows := []rec{
		{"in", 5, 10},
		{"out", 100, 20},
		{"in", 11, 30},
	}

	var (
		wts  []float64
		data []float64
	)
	for _, r := range rows {
		wts = append(wts, r.w)
		data = append(data, r.x)
	}

	d := NewDesign(wts)
	v := NewVector(data)

	keys, groups := GroupIndex(rows, func(r rec) string { return r.g })
	keys, groups = WithLevels(keys, groups, []string{"empty"})

	ests := GroupEstimate(d, v, keys, groups,
		func(gd *Design, gv *Vector) Estimate { return gd.Total(gv) })

	assert.Equal(t, 10*5.0+30*11.0, ests["in"].Point)
	assert.Equal(t, 20*100.0, ests["out"].Point)

	// predeclared level with no rows is explicit, not omitted
	est, ok := ests["empty"]
	assert.True(t, ok)
	assert.False(t, est.Known)
}
