package svy

import (
	"fmt"
	"os"
	"strings"
)

// Formatting defaults for saved tables.
const (
	Sep         = ','
	EOL         = '\n'
	FloatFormat = "%.4f"
	Header      = true
)

// Table is a per-group estimate table: one row per group, the group's key
// values plus the estimate triple. It is the hand-off shape between the
// estimator and any chart, map, or saved file.
type Table struct {
	keyNames []string
	rows     []Row
}

type Row struct {
	Keys []string
	Est  Estimate
}

func NewTable(keyNames ...string) *Table {
	if keyNames == nil {
		panic(fmt.Errorf("table needs at least one key column"))
	}

	return &Table{keyNames: keyNames}
}

func (t *Table) KeyNames() []string {
	out := make([]string, len(t.keyNames))
	copy(out, t.keyNames)

	return out
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

func (t *Table) Rows() []Row {
	return t.rows
}

func (t *Table) Append(est Estimate, keys ...string) error {
	if len(keys) != len(t.keyNames) {
		return fmt.Errorf("row has %d keys, table has %d key columns", len(keys), len(t.keyNames))
	}

	t.rows = append(t.rows, Row{Keys: keys, Est: est})

	return nil
}

// Row looks up the first row whose keys match.
func (t *Table) Row(keys ...string) (Row, error) {
	for _, r := range t.rows {
		if equalKeys(r.Keys, keys) {
			return r, nil
		}
	}

	return Row{}, fmt.Errorf("no row with keys %v", keys)
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for ind := 0; ind < len(a); ind++ {
		if a[ind] != b[ind] {
			return false
		}
	}

	return true
}

// Files writes estimate tables out as delimited text.
type Files struct {
	EOL         byte
	Sep         byte
	FloatFormat string
	Header      bool

	file     *os.File
	fileName string
}

func NewFiles() *Files {
	return &Files{
		EOL:         byte(EOL),
		Sep:         byte(Sep),
		FloatFormat: FloatFormat,
		Header:      Header,
	}
}

func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file == nil {
		return fmt.Errorf("no open files")
	}

	return f.file.Close()
}

func (f *Files) writeLine(fields []string) error {
	line := strings.Join(fields, string(rune(f.Sep))) + string(rune(f.EOL))
	_, e := f.file.WriteString(line)

	return e
}

// WriteTable writes the header (key names, est, lo, hi) and one line per
// row. Unknown estimates write empty estimate fields, never a stand-in
// number.
func (f *Files) WriteTable(t *Table) error {
	if f.file == nil {
		return fmt.Errorf("no open files")
	}

	if f.Header {
		hdr := append(t.KeyNames(), "est", "lo", "hi")
		if e := f.writeLine(hdr); e != nil {
			return e
		}
	}

	for _, r := range t.Rows() {
		fields := make([]string, 0, len(r.Keys)+3)
		fields = append(fields, r.Keys...)

		if r.Est.Known {
			fields = append(fields,
				fmt.Sprintf(f.FloatFormat, r.Est.Point),
				fmt.Sprintf(f.FloatFormat, r.Est.Lo),
				fmt.Sprintf(f.FloatFormat, r.Est.Hi))
		} else {
			fields = append(fields, "", "", "")
		}

		if e := f.writeLine(fields); e != nil {
			return e
		}
	}

	return nil
}

// Save is the one-call path: create, write, close.
func (t *Table) Save(fileName string) error {
	f := NewFiles()
	if e := f.Create(fileName); e != nil {
		return e
	}

	if e := f.WriteTable(t); e != nil {
		_ = f.Close()
		return e
	}

	return f.Close()
}
