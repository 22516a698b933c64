// Package xlsx reads spreadsheet exports from a local directory so reports
// can run offline against a downloaded copy of the workbooks.
//
// A spreadsheet id maps to <dir>/<id>.xlsx (or .xls). The tab is chosen by
// name when a tab is named after the numeric sheet id, otherwise by its
// zero-based position.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"comissoes/internal/log"
	"comissoes/internal/sheets"
)

// Reader loads tables from workbook files in Dir.
type Reader struct {
	Dir string
}

var _ sheets.TableReader = (*Reader)(nil)

func New(dir string) *Reader {
	return &Reader{Dir: dir}
}

// FetchTable implements sheets.TableReader.
func (r *Reader) FetchTable(ctx context.Context, spreadsheetID string, sheetID int64) (sheets.Table, error) {
	base := filepath.Join(r.Dir, spreadsheetID)

	var path string
	var read func(string, int64) ([][]string, error)
	switch {
	case fileExists(base + ".xlsx"):
		path, read = base+".xlsx", readXLSX
	case fileExists(base + ".xls"):
		path, read = base+".xls", readXLS
	default:
		return sheets.Table{}, fmt.Errorf("no workbook for spreadsheet %s in %s", spreadsheetID, r.Dir)
	}

	rows, err := read(path, sheetID)
	if err != nil {
		return sheets.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	t := sheets.FromValues(rows)
	log.FromContext(ctx).WithComponent(log.ComponentSheets).DebugContext(ctx, "Workbook tab read",
		"path", path,
		log.FieldSheetID, sheetID,
		log.FieldRows, len(t.Rows))
	return t, nil
}

func readXLSX(path string, sheetID int64) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := pickSheet(f.GetSheetList(), sheetID)
	if err != nil {
		return nil, err
	}
	return f.GetRows(name)
}

func readXLS(path string, sheetID int64) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, sh := range workbook.GetSheets() {
		names = append(names, sh.GetName())
	}
	name, err := pickSheet(names, sheetID)
	if err != nil {
		return nil, err
	}
	sheet, err := workbook.GetSheet(slices.Index(names, name))
	if err != nil {
		return nil, fmt.Errorf("get sheet %q: %w", name, err)
	}

	var out [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		out = append(out, cells)
	}
	return out, nil
}

// pickSheet prefers a tab named after the gid, then falls back to position.
func pickSheet(names []string, sheetID int64) (string, error) {
	want := strconv.FormatInt(sheetID, 10)
	for _, n := range names {
		if n == want {
			return n, nil
		}
	}
	if sheetID >= 0 && sheetID < int64(len(names)) {
		return names[sheetID], nil
	}
	return "", fmt.Errorf("gid %d among %v: %w", sheetID, names, sheets.ErrSheetNotFound)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
