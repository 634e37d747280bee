package svy

import "fmt"

// Vector is a float64 vector with an explicit missing mask. Missing is a
// state, not a sentinel: arithmetic helpers skip missing entries rather
// than folding a magic value into the result.
type Vector struct {
	data []float64
	miss []bool
}

// NewVector wraps data as a fully observed vector. The slice is not copied.
func NewVector(data []float64) *Vector {
	return &Vector{data: data, miss: make([]bool, len(data))}
}

// MakeVector returns a vector of n entries, all missing.
func MakeVector(n int) *Vector {
	v := &Vector{data: make([]float64, n), miss: make([]bool, n)}
	for ind := 0; ind < n; ind++ {
		v.miss[ind] = true
	}

	return v
}

func (v *Vector) Len() int {
	return len(v.data)
}

func (v *Vector) Element(indx int) float64 {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	return v.data[indx]
}

func (v *Vector) IsMissing(indx int) bool {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	return v.miss[indx]
}

func (v *Vector) SetFloat(val float64, indx int) {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	v.data[indx] = val
	v.miss[indx] = false
}

func (v *Vector) SetMissing(indx int) {
	if indx < 0 || indx >= v.Len() {
		panic(fmt.Errorf("index out of range"))
	}

	v.data[indx] = 0
	v.miss[indx] = true
}

func (v *Vector) Append(val float64) {
	v.data = append(v.data, val)
	v.miss = append(v.miss, false)
}

func (v *Vector) AppendMissing() {
	v.data = append(v.data, 0)
	v.miss = append(v.miss, true)
}

func (v *Vector) Copy() *Vector {
	data := make([]float64, v.Len())
	copy(data, v.data)
	miss := make([]bool, v.Len())
	copy(miss, v.miss)

	return &Vector{data: data, miss: miss}
}

// Where returns the entries of v at which keep is true.
func (v *Vector) Where(keep []bool) *Vector {
	if len(keep) != v.Len() {
		panic(fmt.Errorf("length mismatch in Vector.Where"))
	}

	outVec := &Vector{}
	for ind := 0; ind < v.Len(); ind++ {
		if !keep[ind] {
			continue
		}

		outVec.data = append(outVec.data, v.data[ind])
		outVec.miss = append(outVec.miss, v.miss[ind])
	}

	return outVec
}

// Observed pairs v with weights and drops the missing entries from both.
// This is the mean/quantile convention: a missing value removes its weight
// from the denominator too.
func (v *Vector) Observed(weights []float64) (vals, wts []float64) {
	if len(weights) != v.Len() {
		panic(fmt.Errorf("length mismatch in Vector.Observed"))
	}

	for ind := 0; ind < v.Len(); ind++ {
		if v.miss[ind] {
			continue
		}

		vals = append(vals, v.data[ind])
		wts = append(wts, weights[ind])
	}

	return vals, wts
}

// Ones returns a fully observed vector of 1s, the value column for
// estimating a population count.
func Ones(n int) *Vector {
	v := &Vector{data: make([]float64, n), miss: make([]bool, n)}
	for ind := 0; ind < n; ind++ {
		v.data[ind] = 1
	}

	return v
}
