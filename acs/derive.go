package acs

import (
	"github.com/urbandatalab/svy"
)

// Rent burden thresholds as shares of monthly household income.
const (
	BurdenThreshold = 0.30
	SevereThreshold = 0.50
)

// Derive computes the per-person derived fields from the raw extract
// fields and the already-joined OccRisk flag. Raw fields are read, never
// written.
func Derive(persons []Person) {
	for ind := range persons {
		derivePerson(&persons[ind])
	}
}

func derivePerson(p *Person) {
	p.Wage, p.WageKnown = cleanWage(p.IncWage)

	// A person whose occupation code classifies but who has no current
	// wage is not treated as holding that occupation: the risk flag is
	// forced to unknown, and no wage is attributable.
	p.Risk = p.OccRisk
	if !p.WageKnown || p.Wage <= 0 {
		p.Risk = svy.TriUnknown
	}

	p.RiskWage = 0
	if p.Risk == svy.TriTrue {
		p.RiskWage = p.Wage
	}

	income, incomeOK := cleanIncome(p.HHIncome)
	p.IncomeBucket = incomeBucket(income, incomeOK)

	p.RentBurdened, p.SevereBurden, p.ModerateBurden =
		rentBurden(p.Ownershp, p.RentGrs, income, incomeOK)

	p.RaceEth = raceEthLabel(p.Race, p.Hispan)
	p.BldgSize = buildingSize(p.UnitsStr)
}

// cleanWage decodes INCWAGE sentinels. ok=false means the wage is unknown
// or not applicable.
func cleanWage(incWage int) (float64, bool) {
	if incWage == IncWageNA || incWage == IncWageMissing || incWage < 0 {
		return 0, false
	}

	return float64(incWage), true
}

func cleanIncome(hhIncome int) (float64, bool) {
	if hhIncome == HHIncomeNA {
		return 0, false
	}

	return float64(hhIncome), true
}

func incomeBucket(income float64, ok bool) string {
	if !ok {
		return "unknown"
	}

	switch {
	case income < 25000:
		return "under $25k"
	case income < 50000:
		return "$25k-$50k"
	case income < 75000:
		return "$50k-$75k"
	case income < 100000:
		return "$75k-$100k"
	case income < 150000:
		return "$100k-$150k"
	default:
		return "$150k+"
	}
}

// rentBurden evaluates the 30% and 50% thresholds against monthly income.
// Owners and group quarters are out of the renter universe (unknown), as
// are renters with unknown or non-positive income: the ratio is undefined,
// it does not default to false.
func rentBurden(ownershp, rentGrs int, income float64, incomeOK bool) (burdened, severe, moderate svy.Tri) {
	if ownershp != TenureRented {
		return svy.TriUnknown, svy.TriUnknown, svy.TriUnknown
	}

	if !incomeOK || income <= 0 {
		return svy.TriUnknown, svy.TriUnknown, svy.TriUnknown
	}

	monthly := income / 12
	rent := float64(rentGrs)

	burdened = svy.TriOf(rent > BurdenThreshold*monthly)
	severe = svy.TriOf(rent > SevereThreshold*monthly)
	moderate = svy.TriOf(burdened == svy.TriTrue && severe != svy.TriTrue)

	return burdened, severe, moderate
}

// raceEthLabel collapses RACE and HISPAN to the published categories.
// Hispanic ethnicity takes precedence over race.
func raceEthLabel(race, hispan int) string {
	if hispan >= 1 && hispan <= 4 {
		return "hispanic"
	}

	switch race {
	case 1:
		return "white"
	case 2:
		return "black"
	case 4, 5, 6:
		return "asian/pacific islander"
	default:
		return "other"
	}
}

// buildingSize collapses UNITSSTR to the four published size classes.
func buildingSize(unitsStr int) string {
	switch unitsStr {
	case 1, 2, 3, 4:
		return "1 unit"
	case 5, 6:
		return "2-4 units"
	case 7, 8, 9:
		return "5-49 units"
	case 10:
		return "50+ units"
	default:
		return "unknown"
	}
}
