package svy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlotBars_OneKey(t *testing.T) {
	tbl := NewTable("group")
	assert.Nil(t, tbl.Append(est(0.3, 0.05), "a"))
	assert.Nil(t, tbl.Append(est(0.7, 0.10), "b"))
	assert.Nil(t, tbl.Append(UnknownEstimate(), "c")) // gap, not a zero bar

	p := NewPlot(WithTitle("shares"), WithYlabel("share"), WithLegend(false))
	assert.Nil(t, p.PlotBars(tbl))

	assert.Len(t, p.Fig.Data, 1)
}

func TestPlotBars_TwoKeys(t *testing.T) {
	tbl := NewTable("risk", "income")
	assert.Nil(t, tbl.Append(est(0.2, 0.02), "true", "under $25k"))
	assert.Nil(t, tbl.Append(est(0.4, 0.02), "true", "$25k-$50k"))
	assert.Nil(t, tbl.Append(est(0.1, 0.02), "false", "under $25k"))

	p := NewPlot()
	assert.Nil(t, p.PlotBars(tbl))

	// one trace per first-key level
	assert.Len(t, p.Fig.Data, 2)
}

func TestPlotXY(t *testing.T) {
	p := NewPlot(WithXlabel("quantile"), WithYlabel("share"))

	assert.Nil(t, p.PlotXY([]float64{0.25, 0.5, 0.75}, []float64{0.1, 0.3, 0.6}, "at risk", "black"))
	assert.Len(t, p.Fig.Data, 1)

	assert.NotNil(t, p.PlotXY([]float64{1, 2}, []float64{1}, "ragged", "red"))
}

func TestPlotBars_Errors(t *testing.T) {
	p := NewPlot()

	three := NewTable("a", "b", "c")
	assert.NotNil(t, p.PlotBars(three))

	allUnknown := NewTable("group")
	assert.Nil(t, allUnknown.Append(UnknownEstimate(), "a"))
	assert.NotNil(t, p.PlotBars(allUnknown))
}
