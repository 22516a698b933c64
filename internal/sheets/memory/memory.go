package memory

import (
	"context"
	"fmt"
	"sync"

	"comissoes/internal/sheets"
)

type key struct {
	spreadsheetID string
	sheetID       int64
}

// Store serves tables kept in memory. It is used by tests and dry runs.
type Store struct {
	mu      sync.Mutex
	tables  map[key]sheets.Table
	fetches int
}

var _ sheets.TableReader = (*Store)(nil)

func New() *Store {
	return &Store{tables: map[key]sheets.Table{}}
}

// Put registers a table under the given spreadsheet and sheet id.
func (s *Store) Put(spreadsheetID string, sheetID int64, t sheets.Table) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[key{spreadsheetID, sheetID}] = t
	return s
}

// PutValues registers a raw values matrix (header first).
func (s *Store) PutValues(spreadsheetID string, sheetID int64, values [][]string) *Store {
	return s.Put(spreadsheetID, sheetID, sheets.FromValues(values))
}

// FetchTable returns a copy of the stored table so callers cannot mutate it.
func (s *Store) FetchTable(_ context.Context, spreadsheetID string, sheetID int64) (sheets.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	t, ok := s.tables[key{spreadsheetID, sheetID}]
	if !ok {
		return sheets.Table{}, fmt.Errorf("gid %d in spreadsheet %s: %w", sheetID, spreadsheetID, sheets.ErrSheetNotFound)
	}
	return clone(t), nil
}

// Fetches returns how many times FetchTable was called.
func (s *Store) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func clone(t sheets.Table) sheets.Table {
	out := sheets.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]sheets.Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cp := make(sheets.Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
