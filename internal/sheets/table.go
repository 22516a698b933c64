package sheets

import (
	"fmt"
	"strings"
)

// Row is a single record keyed by column name.
type Row map[string]string

// Get returns the trimmed value of col, or "" when absent.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Table is an ordered list of rows with header-derived column names.
type Table struct {
	Columns []string
	Rows    []Row
}

// FromValues builds a Table from a raw values matrix whose first row is the
// header. Blank headers become "COLUNA N" (1-based position), repeated
// headers get a "__N" suffix, rows are padded or truncated to the header
// width and fully blank rows are skipped.
func FromValues(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	headers := SafeHeaders(values[0])
	t := Table{Columns: headers}
	for _, raw := range values[1:] {
		row := make(Row, len(headers))
		blank := true
		for i, h := range headers {
			v := ""
			if i < len(raw) {
				v = raw[i]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row[h] = v
		}
		if blank {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromInterfaces adapts the [][]interface{} matrix returned by the Sheets API.
func FromInterfaces(values [][]interface{}) Table {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			out[i][j] = fmt.Sprint(v)
		}
	}
	return FromValues(out)
}

// SafeHeaders disambiguates blank and duplicate header cells deterministically.
func SafeHeaders(headers []string) []string {
	safe := make([]string, len(headers))
	used := map[string]int{}
	for i, h := range headers {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("COLUNA %d", i+1)
		}
		n := used[base]
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s__%d", base, n+1)
		}
		used[base] = n + 1
		safe[i] = name
	}
	return safe
}

// HasColumn reports whether col is one of the table columns.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// MissingColumns returns the requested columns that are absent, in order.
func (t Table) MissingColumns(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
