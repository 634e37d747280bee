package acs

import (
	"fmt"

	"github.com/urbandatalab/svy"
)

// Config is all the input a run needs; there is no ambient state.
type Config struct {
	ExtractFile string
	RiskFile    string

	// Pumas filters the extract; nil keeps every row. Defaults to the NYC
	// 2018 set.
	Pumas map[int]bool

	// Confidence defaults to svy.DefaultConfidence.
	Confidence float64

	// Quantile levels for the risk-wage-share table.
	ShareQuantiles []float64
}

// Results is the complete set of estimate tables from one run. Either
// every table is present and internally consistent, or Run returned an
// error and nothing was produced.
type Results struct {
	Persons    []Person
	Households []Household

	AtRiskByIncome     *svy.Table
	AtRiskByRaceEth    *svy.Table
	BurdenByRisk       *svy.Table
	SevereBurdenByRisk *svy.Table
	MedianIncomeByRisk *svy.Table
	RiskShareQuantiles *svy.Table
	BuildingSizeShares *svy.Table
	PumaAtRisk         *svy.Table
}

// Run executes the pipeline end to end: load, join, derive, aggregate,
// estimate. Stages run strictly forward; any failure aborts before any
// output table exists.
func Run(cfg Config) (*Results, error) {
	if cfg.Pumas == nil {
		cfg.Pumas = NYCPumas()
	}

	if cfg.Confidence == 0 {
		cfg.Confidence = svy.DefaultConfidence
	}

	if cfg.ShareQuantiles == nil {
		cfg.ShareQuantiles = []float64{0.25, 0.5, 0.75}
	}

	persons, e := ReadExtract(cfg.ExtractFile, cfg.Pumas)
	if e != nil {
		return nil, fmt.Errorf("loading extract: %w", e)
	}

	if len(persons) == 0 {
		return nil, fmt.Errorf("no records after geography filter")
	}

	rt, e := ReadRiskTable(cfg.RiskFile)
	if e != nil {
		return nil, fmt.Errorf("loading risk crosswalk: %w", e)
	}

	Join(persons, rt)
	Derive(persons)

	hhs, e := Aggregate(persons)
	if e != nil {
		return nil, fmt.Errorf("aggregating households: %w", e)
	}

	hd := HouseholdDesign(hhs, svy.WithConfidence(cfg.Confidence))
	pd := PersonDesign(persons, svy.WithConfidence(cfg.Confidence))

	res := &Results{
		Persons:    persons,
		Households: hhs,

		AtRiskByIncome:     AtRiskByIncome(hhs, hd),
		AtRiskByRaceEth:    AtRiskByRaceEth(persons, pd),
		BurdenByRisk:       BurdenByRisk(hhs, hd, false),
		SevereBurdenByRisk: BurdenByRisk(hhs, hd, true),
		MedianIncomeByRisk: MedianIncomeByRisk(hhs, hd),
		RiskShareQuantiles: RiskShareQuantiles(hhs, hd, cfg.ShareQuantiles),
		BuildingSizeShares: BuildingSizeShares(hhs, hd),
		PumaAtRisk:         PumaAtRisk(hhs, hd),
	}

	return res, nil
}
