package svy

import "fmt"

// Tri is a three-valued flag. Survey microdata routinely carries fields
// that are neither true nor false for a given record -- an occupation code
// with no entry in a crosswalk, a wage that was not collected. Folding such
// flags over a group with nullable bools gets the unknown-propagation rules
// wrong in subtle ways, so the type is explicit.
type Tri uint8

const (
	TriUnknown Tri = 0 + iota
	TriFalse
	TriTrue
)

func TriOf(b bool) Tri {
	if b {
		return TriTrue
	}

	return TriFalse
}

func (t Tri) Known() bool {
	return t != TriUnknown
}

func (t Tri) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

// AnyTrue folds flags with "does anyone?" semantics:
//   - every flag unknown: unknown
//   - at least one true: true
//   - otherwise (every known flag is false): false
func AnyTrue(flags ...Tri) Tri {
	out := TriUnknown
	for _, f := range flags {
		switch f {
		case TriTrue:
			return TriTrue
		case TriFalse:
			out = TriFalse
		}
	}

	return out
}

// AllTrue folds flags with "does everyone?" semantics over the known flags:
//   - every flag unknown: unknown
//   - at least one known flag false: false
//   - otherwise (every known flag is true, unknowns ignored): true
//
// A group mixing unknowns with trues and no falses resolves to true, not
// unknown: the unknowns carry no evidence against "all".
func AllTrue(flags ...Tri) Tri {
	out := TriUnknown
	for _, f := range flags {
		switch f {
		case TriFalse:
			return TriFalse
		case TriTrue:
			out = TriTrue
		}
	}

	return out
}

// TriFromString inverts Tri.String, for reading flags back from saved tables.
func TriFromString(s string) (Tri, error) {
	switch s {
	case "true":
		return TriTrue, nil
	case "false":
		return TriFalse, nil
	case "unknown":
		return TriUnknown, nil
	}

	return TriUnknown, fmt.Errorf("not a tri-state value: %s", s)
}
