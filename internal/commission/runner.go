package commission

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"comissoes/internal/core"
	"comissoes/internal/log"
	"comissoes/internal/sheets"
)

// Sources locates the three sheets a run reads.
type Sources struct {
	ParamSpreadsheet        string
	TransactionsSpreadsheet string
	LevelsSheet             int64
	RosterSheet             int64
	TransactionsSheet       int64
}

// Params configures one run.
type Params struct {
	Sources          Sources
	Role             string
	CreationPeriods  []core.Period
	SettlementPeriod core.Period
	// Seller skips the roster sheet and reports only this person.
	Seller           *core.Person
	GPColumn         string
	SettlementColumn string
	DebugCode        string
}

func (p Params) withDefaults() Params {
	if p.Role == "" {
		p.Role = DefaultRole
	}
	if p.GPColumn == "" {
		p.GPColumn = DefaultGPColumn
	}
	return p
}

// Validate reports every missing or invalid parameter at once.
func (p Params) Validate() error {
	var errs []error
	if p.Sources.ParamSpreadsheet == "" {
		errs = append(errs, errors.New("parameter spreadsheet id is required"))
	}
	if p.Sources.TransactionsSpreadsheet == "" {
		errs = append(errs, errors.New("transactions spreadsheet id is required"))
	}
	if len(p.CreationPeriods) == 0 {
		errs = append(errs, errors.New("at least one creation period is required"))
	}
	if p.SettlementPeriod == "" {
		errs = append(errs, errors.New("settlement period is required"))
	}
	if p.Seller != nil {
		if err := p.Seller.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("seller: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Line is one matched transaction.
type Line struct {
	Code       string
	CreatedAt  time.Time
	SettledAt  time.Time
	Level      string
	Rate       float64
	Gross      decimal.Decimal
	Commission decimal.Decimal
}

// PeriodResult holds the lines of one creation period.
type PeriodResult struct {
	Creation   core.Period
	Settlement core.Period
	Lines      []Line
	Gross      decimal.Decimal
	Commission decimal.Decimal
	// Trace lists every looked up row, filled only in debug runs.
	Trace []Decision
}

// Matched reports whether any transaction fell in the period.
func (r PeriodResult) Matched() bool {
	return len(r.Lines) > 0
}

// PersonResult aggregates a person across all creation periods.
type PersonResult struct {
	Person     core.Person
	Rate       float64
	Periods    []PeriodResult
	Gross      decimal.Decimal
	Commission decimal.Decimal
}

// Report is the outcome of a run.
type Report struct {
	RunID            string
	Role             string
	CreationPeriods  []core.Period
	SettlementPeriod core.Period
	GPColumn         string
	DebugCode        string
	// DebugHits are the raw transaction rows carrying DebugCode, before any
	// seller or date filtering.
	DebugHits  []sheets.Row
	People     []PersonResult
	Gross      decimal.Decimal
	Commission decimal.Decimal
}

// PercentLabel renders a fraction as a whole percentage ("50%"). Halves
// round to even, so 12.5% shows as "12%".
func PercentLabel(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.RoundToEven(rate*100)))
}

// Runner executes commission runs against a table reader and a date lookup.
type Runner struct {
	tables   sheets.TableReader
	dates    DateLookup
	logger   *log.Logger
	newRunID func() string
}

func NewRunner(tables sheets.TableReader, dates DateLookup, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Discard()
	}
	return &Runner{
		tables:   tables,
		dates:    dates,
		logger:   logger.WithComponent(log.ComponentCommission),
		newRunID: uuid.NewString,
	}
}

// Run reads the sheets, resolves every person's rate and sums their matched
// transactions per creation period. It holds no state between calls.
func (r *Runner) Run(ctx context.Context, p Params) (Report, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid run parameters: %w", err)
	}

	runID := r.newRunID()
	logger := r.logger.With(log.FieldRunID, runID)
	ctx = log.NewContext(ctx, logger)
	start := time.Now()

	levels, err := r.fetch(ctx, logger, "levels", p.Sources.ParamSpreadsheet, p.Sources.LevelsSheet)
	if err != nil {
		return Report{}, err
	}
	people, err := r.people(ctx, logger, p)
	if err != nil {
		return Report{}, err
	}
	tx, err := r.fetch(ctx, logger, "transactions", p.Sources.TransactionsSpreadsheet, p.Sources.TransactionsSheet)
	if err != nil {
		return Report{}, err
	}
	if err := RequireTransactionColumns(tx, p.GPColumn, p.SettlementColumn); err != nil {
		return Report{}, err
	}

	rep := Report{
		RunID:            runID,
		Role:             p.Role,
		CreationPeriods:  p.CreationPeriods,
		SettlementPeriod: p.SettlementPeriod,
		GPColumn:         p.GPColumn,
		DebugCode:        p.DebugCode,
	}
	if p.DebugCode != "" {
		rep.DebugHits = rowsWithCode(tx, p.DebugCode)
	}

	m := &Matcher{Lookup: r.dates, SettlementColumn: p.SettlementColumn, DebugCode: p.DebugCode}
	for _, person := range people {
		pr, err := r.runPerson(ctx, logger, m, levels, tx, person, p)
		if err != nil {
			return Report{}, err
		}
		rep.People = append(rep.People, pr)
		rep.Gross = rep.Gross.Add(pr.Gross)
		rep.Commission = rep.Commission.Add(pr.Commission)
	}

	logger.InfoContext(ctx, "Commission run finished",
		"people", len(rep.People),
		"gross", rep.Gross.StringFixed(2),
		"commission", rep.Commission.StringFixed(2),
		log.FieldDuration, time.Since(start).Milliseconds())
	return rep, nil
}

func (r *Runner) fetch(ctx context.Context, logger *log.Logger, what, spreadsheetID string, sheetID int64) (sheets.Table, error) {
	t, err := r.tables.FetchTable(ctx, spreadsheetID, sheetID)
	if err != nil {
		return sheets.Table{}, fmt.Errorf("read %s sheet: %w", what, err)
	}
	logger.DebugContext(ctx, "Sheet loaded",
		"sheet", what,
		log.FieldSpreadsheet, spreadsheetID,
		log.FieldSheetID, sheetID,
		log.FieldRows, len(t.Rows))
	return t, nil
}

func (r *Runner) people(ctx context.Context, logger *log.Logger, p Params) ([]core.Person, error) {
	if p.Seller != nil {
		logger.InfoContext(ctx, "Single seller mode", log.FieldPerson, p.Seller.Name, log.FieldLevel, p.Seller.Level)
		return []core.Person{*p.Seller}, nil
	}

	meta, err := r.fetch(ctx, logger, "roster", p.Sources.ParamSpreadsheet, p.Sources.RosterSheet)
	if err != nil {
		return nil, err
	}
	people, err := ExtractRoster(meta, p.Role)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("role %q: %w", p.Role, ErrEmptyRoster)
	}
	return people, nil
}

func (r *Runner) runPerson(ctx context.Context, logger *log.Logger, m *Matcher, levels, tx sheets.Table, person core.Person, p Params) (PersonResult, error) {
	lr, err := LookupLevel(levels, p.Role, person.Level)
	if err != nil {
		return PersonResult{}, fmt.Errorf("rate for %s: %w", person.Name, err)
	}
	rate := lr.Percentage
	rows := FilterBySeller(tx, person.Name)
	logger = logger.With(log.FieldPerson, person.Name)
	logger.DebugContext(ctx, "Rate resolved",
		log.FieldLevel, person.Level,
		"sheet_level", lr.Level,
		log.FieldRate, rate,
		log.FieldRows, len(rows))

	pr := PersonResult{Person: person, Rate: rate}
	for _, period := range p.CreationPeriods {
		res := PeriodResult{Creation: period, Settlement: p.SettlementPeriod}
		for _, row := range rows {
			d, err := m.Match(ctx, row, period, p.SettlementPeriod)
			if err != nil {
				return PersonResult{}, err
			}
			if p.DebugCode != "" && d.Looked() {
				res.Trace = append(res.Trace, d)
			}
			if !d.Included() {
				continue
			}

			gross := core.ParseMoney(row.Get(p.GPColumn))
			line := Line{
				Code:       d.Code,
				CreatedAt:  d.Dates.CreatedAt,
				SettledAt:  d.Dates.SettledAt,
				Level:      person.Level,
				Rate:       rate,
				Gross:      decimal.NewFromFloat(gross),
				Commission: core.RoundCommission(gross, rate),
			}
			res.Lines = append(res.Lines, line)
			res.Gross = res.Gross.Add(line.Gross)
			res.Commission = res.Commission.Add(line.Commission)

			if p.DebugCode != "" {
				break
			}
		}
		sortLines(res.Lines)

		logger.DebugContext(ctx, "Period evaluated",
			log.FieldPeriod, period.String(),
			log.FieldSettlement, p.SettlementPeriod.String(),
			log.FieldMatched, len(res.Lines))

		pr.Periods = append(pr.Periods, res)
		pr.Gross = pr.Gross.Add(res.Gross)
		pr.Commission = pr.Commission.Add(res.Commission)
	}
	return pr, nil
}

// sortLines orders by creation day, then code.
func sortLines(lines []Line) {
	slices.SortStableFunc(lines, func(a, b Line) int {
		if c := cmp.Compare(a.CreatedAt.Format(time.DateOnly), b.CreatedAt.Format(time.DateOnly)); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
}

func rowsWithCode(t sheets.Table, code string) []sheets.Row {
	var hits []sheets.Row
	for _, row := range t.Rows {
		if row.Get(ColCode) == code {
			hits = append(hits, row)
		}
	}
	return hits
}
