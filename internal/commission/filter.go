package commission

import (
	"context"
	"fmt"
	"strings"

	"comissoes/internal/core"
	"comissoes/internal/sheets"
)

// DateLookup resolves shipment dates by transaction code.
type DateLookup interface {
	LookupDates(ctx context.Context, code string) (core.ShipmentDates, error)
}

// RequireTransactionColumns checks the transactions table for the code,
// seller and gross columns plus the settlement override column when set.
func RequireTransactionColumns(t sheets.Table, gpColumn, settlementColumn string) error {
	cols := []string{ColCode, ColSeller, gpColumn}
	if settlementColumn != "" {
		cols = append(cols, settlementColumn)
	}
	if missing := t.MissingColumns(cols...); len(missing) > 0 {
		return fmt.Errorf("transactions sheet needs column %q: %w", missing[0], ErrMissingColumn)
	}
	return nil
}

// FilterBySeller keeps rows whose seller contains name, ignoring case.
// Partial names match, so "Ana" also selects "Ana Souza" and "Mariana".
func FilterBySeller(t sheets.Table, name string) []sheets.Row {
	needle := strings.ToLower(strings.TrimSpace(name))
	var out []sheets.Row
	for _, row := range t.Rows {
		if strings.Contains(strings.ToLower(row[ColSeller]), needle) {
			out = append(out, row)
		}
	}
	return out
}

// Verdict is the outcome of matching one row against a period pair.
type Verdict int

const (
	Included Verdict = iota
	SkippedBlankCode
	SkippedOtherCode
	RejectedMissingDates
	RejectedCreationPeriod
	RejectedSettlementPeriod
)

func (v Verdict) String() string {
	switch v {
	case Included:
		return "included"
	case SkippedBlankCode:
		return "blank code"
	case SkippedOtherCode:
		return "not the debug code"
	case RejectedMissingDates:
		return "creation or settlement date missing"
	case RejectedCreationPeriod:
		return "creation period mismatch"
	case RejectedSettlementPeriod:
		return "settlement period mismatch"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Decision records how a row was judged.
type Decision struct {
	Code    string
	Seller  string
	Dates   core.ShipmentDates
	Verdict Verdict
}

func (d Decision) Included() bool {
	return d.Verdict == Included
}

// Looked reports whether dates were fetched for the row.
func (d Decision) Looked() bool {
	return d.Verdict != SkippedBlankCode && d.Verdict != SkippedOtherCode
}

// Matcher decides whether transaction rows fall in a creation and settlement
// period pair.
type Matcher struct {
	Lookup DateLookup
	// SettlementColumn, when set, names a sheet column whose date replaces
	// the settlement date from the lookup.
	SettlementColumn string
	// DebugCode restricts matching to a single transaction code.
	DebugCode string
}

// Match judges row. Lookup failures are returned as errors; every other
// reason to leave the row out is reported through the decision.
func (m *Matcher) Match(ctx context.Context, row sheets.Row, creation, settlement core.Period) (Decision, error) {
	d := Decision{Code: row.Get(ColCode), Seller: row.Get(ColSeller)}
	if d.Code == "" {
		d.Verdict = SkippedBlankCode
		return d, nil
	}
	if m.DebugCode != "" && d.Code != m.DebugCode {
		d.Verdict = SkippedOtherCode
		return d, nil
	}

	dates, err := m.Lookup.LookupDates(ctx, d.Code)
	if err != nil {
		return d, fmt.Errorf("lookup dates for %s: %w", d.Code, err)
	}
	if m.SettlementColumn != "" {
		dates.SettledAt, _ = core.ParseDate(row.Get(m.SettlementColumn))
	}
	d.Dates = dates

	switch {
	case !dates.Resolved():
		d.Verdict = RejectedMissingDates
	case core.PeriodOf(dates.CreatedAt) != creation:
		d.Verdict = RejectedCreationPeriod
	case core.PeriodOf(dates.SettledAt) != settlement:
		d.Verdict = RejectedSettlementPeriod
	default:
		d.Verdict = Included
	}
	return d, nil
}
