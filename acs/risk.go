package acs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urbandatalab/svy"
)

// RiskTable maps occupation codes to the "more vulnerable" flag. Loaded
// once, immutable for the run.
type RiskTable map[int]bool

// Flag looks up an occupation code. A code with no entry is unknown, never
// a default.
func (rt RiskTable) Flag(occ int) svy.Tri {
	v, ok := rt[occ]
	if !ok {
		return svy.TriUnknown
	}

	return svy.TriOf(v)
}

// ReadRiskTable loads the occupation-risk crosswalk from a two-column csv
// (occupation code, risk flag). The flag column accepts 1/0, true/false,
// yes/no. A duplicate occupation code with a conflicting flag is fatal.
func ReadRiskTable(fileName string) (RiskTable, error) {
	fid, e := os.Open(fileName)
	if e != nil {
		return nil, e
	}
	defer func() { _ = fid.Close() }()

	return readRiskTable(fid)
}

func readRiskTable(r io.Reader) (RiskTable, error) {
	crdr := csv.NewReader(r)

	hdr, e := crdr.Read()
	if e != nil {
		return nil, fmt.Errorf("cannot read crosswalk header: %w", e)
	}

	if len(hdr) < 2 {
		return nil, fmt.Errorf("crosswalk needs 2 columns, has %d", len(hdr))
	}

	rt := make(RiskTable)
	for {
		rec, er := crdr.Read()
		if er == io.EOF {
			break
		}
		if er != nil {
			return nil, fmt.Errorf("malformed crosswalk row: %w", er)
		}

		occ, eo := strconv.Atoi(strings.TrimSpace(rec[0]))
		if eo != nil {
			return nil, fmt.Errorf("bad occupation code %q: %w", rec[0], eo)
		}

		var flag bool
		switch strings.ToLower(strings.TrimSpace(rec[1])) {
		case "1", "true", "yes":
			flag = true
		case "0", "false", "no":
			flag = false
		default:
			return nil, fmt.Errorf("bad risk flag %q for occupation %d", rec[1], occ)
		}

		if prior, ok := rt[occ]; ok && prior != flag {
			return nil, fmt.Errorf("conflicting risk flags for occupation %d", occ)
		}

		rt[occ] = flag
	}

	return rt, nil
}

// Join attaches the crosswalk flag to every person as OccRisk. Gating on
// wages happens in Derive, not here.
func Join(persons []Person, rt RiskTable) {
	for ind := range persons {
		persons[ind].OccRisk = rt.Flag(persons[ind].OCC)
	}
}
