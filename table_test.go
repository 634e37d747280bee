package svy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_AppendRow(t *testing.T) {
	tbl := NewTable("income", "risk")

	assert.Nil(t, tbl.Append(est(0.5, 0.1), "under $25k", "true"))
	assert.Nil(t, tbl.Append(UnknownEstimate(), "under $25k", "false"))

	// key arity must match
	assert.NotNil(t, tbl.Append(est(1, 0), "only-one-key"))

	assert.Equal(t, 2, tbl.RowCount())

	r, e := tbl.Row("under $25k", "true")
	assert.Nil(t, e)
	assert.Equal(t, 0.5, r.Est.Point)

	_, e = tbl.Row("nope", "true")
	assert.NotNil(t, e)
}

func TestTable_Save(t *testing.T) {
	tbl := NewTable("group")
	assert.Nil(t, tbl.Append(est(0.25, 0.05), "a"))
	assert.Nil(t, tbl.Append(UnknownEstimate(), "b"))

	fileName := filepath.Join(t.TempDir(), "out.csv")
	assert.Nil(t, tbl.Save(fileName))

	raw, e := os.ReadFile(fileName)
	assert.Nil(t, e)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "group,est,lo,hi", lines[0])
	assert.Equal(t, "a,0.2500,0.2000,0.3000", lines[1])

	// unknown rows write empty estimate fields, never a stand-in number
	assert.Equal(t, "b,,,", lines[2])
}

func TestVector_Basics(t *testing.T) {
	v := MakeVector(3)
	assert.True(t, v.IsMissing(0))

	v.SetFloat(2.5, 0)
	assert.False(t, v.IsMissing(0))
	assert.Equal(t, 2.5, v.Element(0))

	v.SetMissing(0)
	assert.True(t, v.IsMissing(0))

	v.Append(7)
	assert.Equal(t, 4, v.Len())

	vals, wts := v.Observed([]float64{1, 2, 3, 4})
	assert.Equal(t, []float64{7}, vals)
	assert.Equal(t, []float64{4}, wts)

	cp := v.Copy()
	cp.SetFloat(99, 0)
	assert.True(t, v.IsMissing(0))
}
