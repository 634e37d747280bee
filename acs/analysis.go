package acs

import (
	"fmt"
	"strconv"

	"github.com/urbandatalab/svy"
)

// The analysis tables for the 2018 NYC run. Each function is a thin,
// deterministic wiring of the estimator over the derived records; all
// weighting and interval logic lives in svy.

// IncomeBuckets lists the bucket labels in display order, the predeclared
// levels for income-grouped tables.
func IncomeBuckets() []string {
	return []string{
		"under $25k", "$25k-$50k", "$50k-$75k", "$75k-$100k",
		"$100k-$150k", "$150k+", "unknown",
	}
}

// BuildingSizes lists the size classes in display order.
func BuildingSizes() []string {
	return []string{"1 unit", "2-4 units", "5-49 units", "50+ units"}
}

// RaceEthnicities lists the published race/ethnicity categories in display
// order.
func RaceEthnicities() []string {
	return []string{"hispanic", "white", "black", "asian/pacific islander", "other"}
}

// PersonDesign builds the person-weighted design (PERWT, REPWTP replicates
// when every record carries them).
func PersonDesign(persons []Person, opts ...svy.DOpt) *svy.Design {
	wts := make([]float64, len(persons))
	for ind := range persons {
		wts[ind] = persons[ind].PerWt
	}

	if reps := replicateMatrix(len(persons), func(i int) []float64 { return persons[i].RepWtP }); reps != nil {
		opts = append([]svy.DOpt{svy.WithReplicates(reps)}, opts...)
	}

	return svy.NewDesign(wts, opts...)
}

// HouseholdDesign builds the household-weighted design (HHWT, REPWT).
func HouseholdDesign(hhs []Household, opts ...svy.DOpt) *svy.Design {
	wts := make([]float64, len(hhs))
	for ind := range hhs {
		wts[ind] = hhs[ind].HHWt
	}

	if reps := replicateMatrix(len(hhs), func(i int) []float64 { return hhs[i].RepWt }); reps != nil {
		opts = append([]svy.DOpt{svy.WithReplicates(reps)}, opts...)
	}

	return svy.NewDesign(wts, opts...)
}

// replicateMatrix transposes per-record replicate weights into per-replicate
// vectors. Records disagreeing on replicate count means the extract carries
// partial replicates; the design then falls back to linearization.
func replicateMatrix(n int, rowOf func(i int) []float64) [][]float64 {
	if n == 0 {
		return nil
	}

	nRep := len(rowOf(0))
	if nRep == 0 {
		return nil
	}

	for ind := 0; ind < n; ind++ {
		if len(rowOf(ind)) != nRep {
			return nil
		}
	}

	reps := make([][]float64, nRep)
	for r := 0; r < nRep; r++ {
		reps[r] = make([]float64, n)
		for ind := 0; ind < n; ind++ {
			reps[r][ind] = rowOf(ind)[r]
		}
	}

	return reps
}

// triVector encodes Tri flags as a 0/1 vector with unknowns missing, the
// shape a weighted proportion wants.
func triVector(n int, flag func(i int) svy.Tri) *svy.Vector {
	v := svy.MakeVector(n)
	for ind := 0; ind < n; ind++ {
		switch flag(ind) {
		case svy.TriTrue:
			v.SetFloat(1, ind)
		case svy.TriFalse:
			v.SetFloat(0, ind)
		}
	}

	return v
}

// groupedShares estimates a proportion per group and assembles the table.
func groupedShares[K comparable](d *svy.Design, v *svy.Vector, keys []K, groups map[K][]int,
	keyName string, label func(K) string) *svy.Table {
	ests := svy.GroupEstimate(d, v, keys, groups,
		func(gd *svy.Design, gv *svy.Vector) svy.Estimate { return gd.Mean(gv) })

	t := svy.NewTable(keyName)
	for _, k := range keys {
		if e := t.Append(ests[k], label(k)); e != nil {
			panic(e)
		}
	}

	return t
}

// AtRiskByIncome estimates the share of households with any vulnerable
// worker, by household income bucket. Households where no member
// classifies are excluded from both sides of the share.
func AtRiskByIncome(hhs []Household, d *svy.Design) *svy.Table {
	v := triVector(len(hhs), func(i int) svy.Tri { return hhs[i].AnyRisk })

	keys, groups := svy.GroupIndex(hhs, func(h Household) string { return h.IncomeBucket })
	keys, groups = svy.WithLevels(keys, groups, IncomeBuckets())
	keys = inDeclaredOrder(keys, IncomeBuckets())

	return groupedShares(d, v, keys, groups, "income", func(k string) string { return k })
}

// AtRiskByRaceEth estimates the share of workers in vulnerable occupations,
// by race/ethnicity. The universe is classified workers: persons whose risk
// status is unknown (no wage, wage sentinel, unmatched occupation) drop out
// of both sides. d is the person-weighted design.
func AtRiskByRaceEth(persons []Person, d *svy.Design) *svy.Table {
	v := triVector(len(persons), func(i int) svy.Tri { return persons[i].Risk })

	keys, groups := svy.GroupIndex(persons, func(p Person) string { return p.RaceEth })
	keys, groups = svy.WithLevels(keys, groups, RaceEthnicities())
	keys = inDeclaredOrder(keys, RaceEthnicities())

	return groupedShares(d, v, keys, groups, "race_eth", func(k string) string { return k })
}

// BurdenByRisk estimates the rent-burden rate among renter households,
// grouped by any-risk status. severe selects the 50% threshold.
func BurdenByRisk(hhs []Household, d *svy.Design, severe bool) *svy.Table {
	v := triVector(len(hhs), func(i int) svy.Tri {
		if severe {
			return hhs[i].SevereBurden
		}

		return hhs[i].RentBurdened
	})

	keys, groups := svy.GroupIndex(hhs, func(h Household) svy.Tri { return h.AnyRisk })
	keys, groups = svy.WithLevels(keys, groups, []svy.Tri{svy.TriTrue, svy.TriFalse, svy.TriUnknown})
	keys = inDeclaredOrder(keys, []svy.Tri{svy.TriTrue, svy.TriFalse, svy.TriUnknown})

	return groupedShares(d, v, keys, groups, "any_risk", func(k svy.Tri) string { return k.String() })
}

// MedianIncomeByRisk estimates the weighted median household income by
// any-risk status. Households with unknown income are excluded.
func MedianIncomeByRisk(hhs []Household, d *svy.Design) *svy.Table {
	v := svy.MakeVector(len(hhs))
	for ind := range hhs {
		if income, ok := cleanIncome(hhs[ind].Income); ok {
			v.SetFloat(income, ind)
		}
	}

	keys, groups := svy.GroupIndex(hhs, func(h Household) svy.Tri { return h.AnyRisk })
	keys, groups = svy.WithLevels(keys, groups, []svy.Tri{svy.TriTrue, svy.TriFalse, svy.TriUnknown})
	keys = inDeclaredOrder(keys, []svy.Tri{svy.TriTrue, svy.TriFalse, svy.TriUnknown})

	ests := svy.GroupEstimate(d, v, keys, groups,
		func(gd *svy.Design, gv *svy.Vector) svy.Estimate { return gd.Median(gv) })

	t := svy.NewTable("any_risk")
	for _, k := range keys {
		if e := t.Append(ests[k], k.String()); e != nil {
			panic(e)
		}
	}

	return t
}

// RiskShareQuantiles estimates quantiles of the household risk-wage share
// of income among at-risk households.
func RiskShareQuantiles(hhs []Household, d *svy.Design, qs []float64) *svy.Table {
	v := svy.MakeVector(len(hhs))
	for ind := range hhs {
		if hhs[ind].RiskShareOK {
			v.SetFloat(hhs[ind].RiskWageShare, ind)
		}
	}

	keep := make([]bool, len(hhs))
	for ind := range hhs {
		keep[ind] = hhs[ind].AnyRisk == svy.TriTrue
	}

	gd, gv := d.Subset(keep), v.Where(keep)

	t := svy.NewTable("quantile")
	for _, q := range qs {
		if e := t.Append(gd.Quantile(q, gv), fmt.Sprintf("%g", q)); e != nil {
			panic(e)
		}
	}

	return t
}

// BuildingSizeShares estimates each building-size class's share of
// households: weighted counts per class, combined into shares with
// propagated margins. Households with unknown building size are excluded
// from the partition.
func BuildingSizeShares(hhs []Household, d *svy.Design) *svy.Table {
	keys, groups := svy.GroupIndex(hhs, func(h Household) string { return h.BldgSize })
	keys, groups = svy.WithLevels(keys, groups, BuildingSizes())
	keys = inDeclaredOrder(keys, BuildingSizes())

	var (
		labels []string
		parts  []svy.Moe
	)

	for _, k := range keys {
		if k == "unknown" {
			continue
		}

		idx := groups[k]
		if len(idx) == 0 {
			// a predeclared class with no households is a zero count,
			// not an unknown one
			labels = append(labels, k)
			parts = append(parts, svy.NewMoe(0, 0))
			continue
		}

		keep := svy.Mask(len(hhs), idx)
		gd := d.Subset(keep)

		labels = append(labels, k)
		parts = append(parts, gd.Count().Moe())
	}

	whole := svy.SumMoe(parts...)

	t := svy.NewTable("building_size")
	for ind, label := range labels {
		share := svy.ShareMoe(parts[ind], whole)
		if e := t.Append(share.Estimate(), label); e != nil {
			panic(e)
		}
	}

	return t
}

// PumaAtRisk estimates the share of households with any vulnerable worker
// per PUMA, the input to the choropleth.
func PumaAtRisk(hhs []Household, d *svy.Design) *svy.Table {
	v := triVector(len(hhs), func(i int) svy.Tri { return hhs[i].AnyRisk })

	keys, groups := svy.GroupIndex(hhs, func(h Household) int { return h.PUMA })

	return groupedShares(d, v, keys, groups, "puma", strconv.Itoa)
}

// Classes runs a one-key table through the reliability classifier, mapping
// each key to its bin label.
func Classes(t *svy.Table, c *svy.Classifier) (map[string]string, error) {
	if len(t.KeyNames()) != 1 {
		return nil, fmt.Errorf("classification wants a one-key table")
	}

	out := make(map[string]string, t.RowCount())
	for _, r := range t.Rows() {
		out[r.Keys[0]] = c.Classify(r.Est)
	}

	return out, nil
}

// inDeclaredOrder reorders keys so declared levels come first in their
// declared order, then any undeclared keys in first-seen order.
func inDeclaredOrder[K comparable](keys []K, levels []K) []K {
	seen := make(map[K]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}

	var out []K
	inLevels := make(map[K]bool, len(levels))
	for _, lv := range levels {
		inLevels[lv] = true
		if seen[lv] {
			out = append(out, lv)
		}
	}

	for _, k := range keys {
		if !inLevels[k] {
			out = append(out, k)
		}
	}

	return out
}
