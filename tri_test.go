package svy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTri_AnyTrue(t *testing.T) {
	// all unknown
	assert.Equal(t, TriUnknown, AnyTrue(TriUnknown, TriUnknown))

	// any true wins
	assert.Equal(t, TriTrue, AnyTrue(TriFalse, TriTrue, TriUnknown))
	assert.Equal(t, TriTrue, AnyTrue(TriTrue))

	// all classified false
	assert.Equal(t, TriFalse, AnyTrue(TriFalse, TriFalse))
	assert.Equal(t, TriFalse, AnyTrue(TriUnknown, TriFalse))

	// empty group
	assert.Equal(t, TriUnknown, AnyTrue())
}

func TestTri_AllTrue(t *testing.T) {
	// all unknown
	assert.Equal(t, TriUnknown, AllTrue(TriUnknown, TriUnknown))

	// any false wins
	assert.Equal(t, TriFalse, AllTrue(TriTrue, TriFalse))
	assert.Equal(t, TriFalse, AllTrue(TriUnknown, TriFalse))

	// every classified member true
	assert.Equal(t, TriTrue, AllTrue(TriTrue, TriTrue))
}

// A mix of unknown and true with no false resolves to true: the unknowns
// carry no evidence against "all". Easy to get backwards, so pinned here.
func TestTri_AllTrueMixedUnknown(t *testing.T) {
	assert.Equal(t, TriTrue, AllTrue(TriUnknown, TriTrue))
	assert.Equal(t, TriTrue, AllTrue(TriTrue, TriUnknown, TriTrue))
}

func TestTri_Strings(t *testing.T) {
	for _, tri := range []Tri{TriTrue, TriFalse, TriUnknown} {
		back, e := TriFromString(tri.String())
		assert.Nil(t, e)
		assert.Equal(t, tri, back)
	}

	_, e := TriFromString("maybe")
	assert.NotNil(t, e)
}
