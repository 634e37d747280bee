// Package acs implements the NYC occupation-risk pipeline over IPUMS USA
// extracts of the American Community Survey: loading person microdata,
// joining the occupation risk crosswalk, deriving person- and
// household-level fields, and producing the weighted estimate tables.
package acs

import (
	"github.com/urbandatalab/svy"
)

// IPUMS sentinel codes. Sentinels decode to missing at load time so no
// magic number survives into the pipeline.
const (
	IncWageNA      = 999999 // INCWAGE: not applicable (not in labor force)
	IncWageMissing = 999998 // INCWAGE: missing
	HHIncomeNA     = 9999999
)

// OWNERSHP codes.
const (
	TenureNA     = 0
	TenureOwned  = 1
	TenureRented = 2
)

// Person is one row of the IPUMS extract plus the derived fields computed
// by Derive. Raw fields are set by the loader and never modified after.
type Person struct {
	Serial   int // household identifier
	PerNum   int // person sequence within the household
	PUMA     int
	OCC      int // occupation code; 0 = no occupation reported
	PerWt    float64
	HHWt     float64
	IncWage  int // raw, sentinel-coded
	HHIncome int // raw, sentinel-coded; identical across a household
	Ownershp int
	RentGrs  int // gross monthly rent; 0 for non-renters
	Race     int
	Hispan   int
	UnitsStr int

	// replicate weights, empty when the extract carries none
	RepWtP []float64 // person-level (REPWTP)
	RepWt  []float64 // household-level (REPWT)

	// derived by Derive
	Wage      float64 // cleaned wage; valid only when WageKnown
	WageKnown bool
	OccRisk   svy.Tri // crosswalk flag for OCC, ungated
	Risk      svy.Tri // OccRisk gated on a positive known wage
	RiskWage  float64 // wage attributable to a risk occupation, else 0

	IncomeBucket string
	RaceEth      string
	BldgSize     string

	RentBurdened   svy.Tri // gross rent > 30% of monthly household income
	SevereBurden   svy.Tri // gross rent > 50%
	ModerateBurden svy.Tri // burdened but not severe
}

// Household is the one-row-per-household aggregate, folded from the
// persons sharing a Serial. Computed once, read-only downstream.
type Household struct {
	Serial   int
	PUMA     int
	HHWt     float64
	RepWt    []float64
	Size     int
	Income   int
	IncomeOK bool
	Ownershp int
	RentGrs  int

	AnyRisk        svy.Tri
	AllRisk        svy.Tri
	TotalRiskWages float64
	RiskWageShare  float64 // valid only when RiskShareOK
	RiskShareOK    bool

	IncomeBucket   string
	BldgSize       string
	RentBurdened   svy.Tri
	SevereBurden   svy.Tri
	ModerateBurden svy.Tri
}

// NYCPumas returns the 2010-vintage PUMA codes covering the five boroughs,
// the geography filter for the 2018 extract.
func NYCPumas() map[int]bool {
	pumas := make(map[int]bool)

	ranges := [][2]int{
		{3701, 3710}, // Bronx
		{3801, 3810}, // Manhattan
		{3901, 3903}, // Staten Island
		{4001, 4018}, // Brooklyn
		{4101, 4114}, // Queens
	}

	for _, r := range ranges {
		for p := r[0]; p <= r[1]; p++ {
			pumas[p] = true
		}
	}

	return pumas
}

// Borough names the borough of a NYC PUMA, "" for codes outside the city.
func Borough(puma int) string {
	switch {
	case puma >= 3701 && puma <= 3710:
		return "Bronx"
	case puma >= 3801 && puma <= 3810:
		return "Manhattan"
	case puma >= 3901 && puma <= 3903:
		return "Staten Island"
	case puma >= 4001 && puma <= 4018:
		return "Brooklyn"
	case puma >= 4101 && puma <= 4114:
		return "Queens"
	}

	return ""
}
