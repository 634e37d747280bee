package acs

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"

	"github.com/urbandatalab/svy"
)

// DB endpoints for a batch run: extracts too large for a flat file live in
// ClickHouse; finished estimate tables land in Postgres.

// ConnectCH opens a ClickHouse connection (assumes port 9000).
func ConnectCH(host, user, password, database string) (*sql.DB, error) {
	db := clickhouse.OpenDB(
		&clickhouse.Options{
			Addr: []string{host + ":9000"},
			Auth: clickhouse.Auth{
				Database: database,
				Username: user,
				Password: password,
			},
			DialTimeout: 300 * time.Second,
			Compression: &clickhouse.Compression{
				Method: clickhouse.CompressionLZ4,
				Level:  0,
			},
		})

	if e := db.Ping(); e != nil {
		return nil, e
	}

	return db, nil
}

// ConnectPG opens a Postgres connection through the pgx driver.
func ConnectPG(host, user, password, dbName string) (*sql.DB, error) {
	connectionStr := fmt.Sprintf("postgres://%s:%s@%s:5432/%s", user, password, host, dbName)

	db, e := sql.Open("pgx", connectionStr)
	if e != nil {
		return nil, e
	}

	if e := db.Ping(); e != nil {
		return nil, e
	}

	return db, nil
}

// LoadDB reads person records from qry, which must return the same columns
// a csv extract would carry (case-insensitive names), including any
// replicate weight columns. Rows outside pumas are dropped (all kept when
// pumas is nil).
func LoadDB(db *sql.DB, qry string, pumas map[int]bool) ([]Person, error) {
	rows, e := db.Query(qry)
	if e != nil {
		return nil, e
	}
	defer func() { _ = rows.Close() }()

	colNames, e := rows.Columns()
	if e != nil {
		return nil, e
	}

	pos := make(map[string]int, len(colNames))
	for ind, name := range colNames {
		pos[strings.ToUpper(name)] = ind
	}

	for _, name := range requiredCols {
		if _, ok := pos[name]; !ok {
			return nil, fmt.Errorf("query missing column %s", name)
		}
	}

	stateCol, hasState := pos["STATEFIP"]
	repPCols := replicateCols(pos, "REPWTP")
	repHCols := replicateCols(pos, "REPWT")

	var persons []Person
	for rows.Next() {
		vals := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for ind := range vals {
			ptrs[ind] = &vals[ind]
		}

		if e := rows.Scan(ptrs...); e != nil {
			return nil, e
		}

		cellInt := func(name string) (int, error) { return asInt(vals[pos[name]]) }
		cellFloat := func(name string) (float64, error) { return asFloat(vals[pos[name]]) }

		puma, ep := cellInt("PUMA")
		if ep != nil {
			return nil, fmt.Errorf("bad PUMA: %w", ep)
		}

		if hasState {
			st, es := asInt(vals[stateCol])
			if es != nil {
				return nil, fmt.Errorf("bad STATEFIP: %w", es)
			}

			if st != 36 {
				continue
			}
		}

		if pumas != nil && !pumas[puma] {
			continue
		}

		var (
			p    Person
			errs []error
		)
		p.PUMA = puma

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
			w, ew := asFloat(vals[c])
			if ew != nil {
				return nil, fmt.Errorf("bad replicate weight: %w", ew)
			}

			p.RepWtP = append(p.RepWtP, w)
		}

		for _, c := range repHCols {
			w, ew := asFloat(vals[c])
			if ew != nil {
				return nil, fmt.Errorf("bad replicate weight: %w", ew)
			}

			p.RepWt = append(p.RepWt, w)
		}

		persons = append(persons, p)
	}

	return persons, rows.Err()
}

// SaveEstimates writes an estimate table to Postgres, replacing any prior
// table of the same name. Unknown estimates save as NULLs.
func SaveEstimates(db *sql.DB, tableName string, t *svy.Table) error {
	var cols []string
	for _, k := range t.KeyNames() {
		cols = append(cols, fmt.Sprintf("%s TEXT", quoteIdent(k)))
	}
	cols = append(cols, `"est" DOUBLE PRECISION`, `"lo" DOUBLE PRECISION`, `"hi" DOUBLE PRECISION`)

	name := quoteIdent(tableName)

	if _, e := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); e != nil {
		return e
	}

	if _, e := db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(cols, ", "))); e != nil {
		return e
	}

	nk := len(t.KeyNames())
	var ph []string
	for ind := 0; ind < nk+3; ind++ {
		ph = append(ph, fmt.Sprintf("$%d", ind+1))
	}

	ins := fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, strings.Join(ph, ", "))

	for _, r := range t.Rows() {
		if _, e := db.Exec(ins, insertArgs(r)...); e != nil {
			return e
		}
	}

	return nil
}

// quoteIdent quotes a table or column name, doubling any embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// insertArgs lays out one table row as insert parameters: keys first, then
// est/lo/hi, NULLs when the estimate is unknown.
func insertArgs(r svy.Row) []any {
	args := make([]any, 0, len(r.Keys)+3)
	for _, k := range r.Keys {
		args = append(args, k)
	}

	if r.Est.Known {
		return append(args, r.Est.Point, r.Est.Lo, r.Est.Hi)
	}

	return append(args, nil, nil, nil)
}

// asInt coerces the numeric types database drivers hand back.
func asInt(x any) (int, error) {
	switch v := x.(type) {
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case int16:
		return int(v), nil
	case int8:
		return int(v), nil
	case int:
		return v, nil
	case uint64:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint8:
		return int(v), nil
	case float64:
		return int(v), nil
	}

	return 0, fmt.Errorf("cannot convert %T to int", x)
}

func asFloat(x any) (float64, error) {
	switch v := x.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		i, e := asInt(x)
		if e != nil {
			return 0, fmt.Errorf("cannot convert %T to float", x)
		}

		return float64(i), nil
	}
}
