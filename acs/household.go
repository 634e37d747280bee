package acs

import (
	"fmt"

	"github.com/urbandatalab/svy"
)

// Aggregate folds person records into one Household per Serial. Derive must
// have run first. Output order follows first appearance in persons, so the
// same input yields the same table.
//
// The risk folds are three-valued:
//   - AnyRisk: unknown when no person classifies, true when anyone
//     classifies true, else false.
//   - AllRisk: unknown when no person classifies, false when anyone
//     classifies false, else true -- a household mixing unknowns with trues
//     and no falses is all-risk, not unknown.
//
// TotalRiskWages treats unknown wages as zero. RiskWageShare is undefined
// when household income is zero or unknown; the division never runs in
// that case.
func Aggregate(persons []Person) ([]Household, error) {
	serials, groups := svy.GroupBy(persons, func(p Person) int { return p.Serial })

	hhs := make([]Household, 0, len(serials))
	for _, serial := range serials {
		hh, e := aggregateOne(groups[serial])
		if e != nil {
			return nil, e
		}

		hhs = append(hhs, hh)
	}

	return hhs, nil
}

func aggregateOne(members []Person) (Household, error) {
	first := members[0]

	hh := Household{
		Serial:   first.Serial,
		PUMA:     first.PUMA,
		HHWt:     first.HHWt,
		RepWt:    first.RepWt,
		Size:     len(members),
		Income:   first.HHIncome,
		Ownershp: first.Ownershp,
		RentGrs:  first.RentGrs,

		IncomeBucket:   first.IncomeBucket,
		BldgSize:       first.BldgSize,
		RentBurdened:   first.RentBurdened,
		SevereBurden:   first.SevereBurden,
		ModerateBurden: first.ModerateBurden,
	}

	flags := make([]svy.Tri, 0, len(members))
	for _, p := range members {
		// household-level attributes are constant within a household by
		// construction of the source data; a mismatch is a corrupt extract
		if p.HHIncome != first.HHIncome || p.Ownershp != first.Ownershp || p.RentGrs != first.RentGrs {
			return Household{}, fmt.Errorf("household %d: members disagree on household attributes", first.Serial)
		}

		flags = append(flags, p.Risk)
		hh.TotalRiskWages += p.RiskWage
	}

	hh.AnyRisk = svy.AnyTrue(flags...)
	hh.AllRisk = svy.AllTrue(flags...)

	income, incomeOK := cleanIncome(first.HHIncome)
	hh.IncomeOK = incomeOK

	if incomeOK && income != 0 {
		hh.RiskWageShare = hh.TotalRiskWages / income
		hh.RiskShareOK = true
	}

	return hh, nil
}
