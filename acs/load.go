package acs

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// The extract is the csv form of an IPUMS USA download, optionally
// gzipped. Column order is whatever the extract engine produced; the
// header row is authoritative.

// columns the loader requires; anything else in the file is ignored except
// replicate weights, which are picked up when present.
var requiredCols = []string{
	"SERIAL", "PERNUM", "PUMA", "OCC", "PERWT", "HHWT",
	"INCWAGE", "HHINCOME", "OWNERSHP", "RENTGRS", "RACE", "HISPAN", "UNITSSTR",
}

// ReadExtract loads person records from an IPUMS csv extract, keeping only
// rows whose PUMA is in pumas (every row when pumas is nil). A malformed
// header or cell is fatal: a batch run has no salvage path for a
// wrong-shaped input.
func ReadExtract(fileName string, pumas map[int]bool) ([]Person, error) {
	fid, e := os.Open(fileName)
	if e != nil {
		return nil, e
	}
	defer func() { _ = fid.Close() }()

	var rdr io.Reader = fid
	if strings.HasSuffix(fileName, ".gz") {
		gz, eg := gzip.NewReader(fid)
		if eg != nil {
			return nil, eg
		}
		defer func() { _ = gz.Close() }()

		rdr = gz
	}

	return readExtract(rdr, pumas)
}

func readExtract(r io.Reader, pumas map[int]bool) ([]Person, error) {
	crdr := csv.NewReader(r)
	crdr.ReuseRecord = true

	hdr, e := crdr.Read()
	if e != nil {
		return nil, fmt.Errorf("cannot read extract header: %w", e)
	}

	pos := make(map[string]int, len(hdr))
	for ind, name := range hdr {
		pos[strings.ToUpper(strings.TrimSpace(name))] = ind
	}

	for _, name := range requiredCols {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("extract missing column %s", name)
		}
	}

	stateCol, hasState := pos["STATEFIP"]
	repPCols := replicateCols(pos, "REPWTP")
	repHCols := replicateCols(pos, "REPWT")

	var persons []Person
	for {
		rec, er := crdr.Read()
		if er == io.EOF {
			break
		}
		if er != nil {
			return nil, fmt.Errorf("malformed extract row: %w", er)
		}

		cellInt := func(name string) (int, error) {
			return strconv.Atoi(strings.TrimSpace(rec[pos[name]]))
		}
		cellFloat := func(name string) (float64, error) {
			return strconv.ParseFloat(strings.TrimSpace(rec[pos[name]]), 64)
		}

		puma, ep := cellInt("PUMA")
		if ep != nil {
			return nil, fmt.Errorf("bad PUMA: %w", ep)
		}

		if hasState {
			st, es := strconv.Atoi(strings.TrimSpace(rec[stateCol]))
			if es != nil {
				return nil, fmt.Errorf("bad STATEFIP: %w", es)
			}

			if st != 36 { // New York
				continue
			}
		}

		if pumas != nil && !pumas[puma] {
			continue
		}

		var p Person
		p.PUMA = puma

		var errs []error
		intField := func(dst *int, name string) {
			v, err := cellInt(name)
			if err != nil {
				errs = append(errs, fmt.Errorf("bad %s: %w", name, err))
				return
			}
			*dst = v
		}
		floatField := func(dst *float64, name string) {
			v, err := cellFloat(name)
			if err != nil {
				errs = append(errs, fmt.Errorf("bad %s: %w", name, err))
				return
			}
			*dst = v
		}

		intField(&p.Serial, "SERIAL")
		intField(&p.PerNum, "PERNUM")
		intField(&p.OCC, "OCC")
		intField(&p.IncWage, "INCWAGE")
		intField(&p.HHIncome, "HHINCOME")
		intField(&p.Ownershp, "OWNERSHP")
		intField(&p.RentGrs, "RENTGRS")
		intField(&p.Race, "RACE")
		intField(&p.Hispan, "HISPAN")
		intField(&p.UnitsStr, "UNITSSTR")
		floatField(&p.PerWt, "PERWT")
		floatField(&p.HHWt, "HHWT")

		if errs != nil {
			return nil, errs[0]
		}

		for _, c := range repPCols {
			w, ew := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if ew != nil {
				return nil, fmt.Errorf("bad replicate weight: %w", ew)
			}

			p.RepWtP = append(p.RepWtP, w)
		}

		for _, c := range repHCols {
			w, ew := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if ew != nil {
				return nil, fmt.Errorf("bad replicate weight: %w", ew)
			}

			p.RepWt = append(p.RepWt, w)
		}

		persons = append(persons, p)
	}

	return persons, nil
}

// replicateCols finds columns named prefix1, prefix2, ... and returns their
// positions in replicate order. REPWTP columns must not swallow REPWT ones,
// so the suffix has to be all digits.
func replicateCols(pos map[string]int, prefix string) []int {
	type rc struct {
		num int
		col int
	}

	var found []rc
	for name, col := range pos {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		sfx := name[len(prefix):]
		if sfx == "" {
			continue
		}

		num, e := strconv.Atoi(sfx)
		if e != nil {
			continue
		}

		if prefix == "REPWT" && strings.HasPrefix(name, "REPWTP") {
			continue
		}

		found = append(found, rc{num: num, col: col})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].num < found[j].num })

	var cols []int
	for _, f := range found {
		cols = append(cols, f.col)
	}

	return cols
}
