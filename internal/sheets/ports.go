package sheets

import (
	"context"
	"errors"
)

// ErrSheetNotFound is returned when no tab matches the requested sheet id.
var ErrSheetNotFound = errors.New("sheet not found")

// Ports for outbound adapters.
type (
	// TableReader loads a whole tab of a spreadsheet as a header-keyed table.
	TableReader interface {
		// FetchTable returns the rows of the tab identified by sheetID (the
		// numeric "gid") inside the spreadsheet spreadsheetID.
		FetchTable(ctx context.Context, spreadsheetID string, sheetID int64) (Table, error)
	}
)
