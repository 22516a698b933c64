// Package report prints commission runs as console tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"comissoes/internal/commission"
	"comissoes/internal/core"
)

const noMatches = "Nenhum processo encontrado com esses filtros."

var columns = []string{"codigo", "date_creation", "date_comission", "nivel", "percentual", "gp", "valor_comissao"}

var (
	boldGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	yellow      = color.New(color.FgYellow).SprintFunc()
)

// Renderer writes a human readable report.
type Renderer struct {
	printer *message.Printer
}

func NewRenderer() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Render writes r to w: one section per person, one table per creation
// period, then the grand total. Debug runs also get the raw code lookup and
// a trace of every evaluated row.
func (rd *Renderer) Render(w io.Writer, r commission.Report) error {
	out := &errWriter{w: w}

	if r.DebugCode != "" {
		rd.debugPrecheck(out, r)
	}

	periods := core.JoinPeriods(r.CreationPeriods)
	for _, p := range r.People {
		rd.person(out, r, p, periods)
	}

	out.printf("\n%s\n", strings.Repeat("#", 90))
	out.printf("%s\n", boldMagenta(fmt.Sprintf("TOTAL GERAL (%s | %s | DATE_COMISSION %s)", r.Role, periods, r.SettlementPeriod)))
	out.printf("GP total geral: %s\n", rd.money(r.Gross))
	out.printf("Comissão total geral: %s\n", boldGreen(rd.money(r.Commission)))
	out.printf("%s\n", strings.Repeat("#", 90))
	return out.err
}

func (rd *Renderer) person(out *errWriter, r commission.Report, p commission.PersonResult, periods string) {
	out.printf("\n%s\n", strings.Repeat("#", 100))
	out.printf("%s <%s> | %s | Nível: %s | %%: %s\n",
		p.Person.Name, p.Person.Email, r.Role, p.Person.Level, commission.PercentLabel(p.Rate))
	out.printf("Filtros: DATE_CREATION em %s | DATE_COMISSION em %s\n", periods, r.SettlementPeriod)
	out.printf("%s\n", strings.Repeat("#", 100))

	for _, pr := range p.Periods {
		if r.DebugCode != "" {
			rd.trace(out, pr)
		}

		out.printf("\n%s\n", strings.Repeat("-", 90))
		out.printf("%s | Competência %s | DATE_COMISSION %s\n", p.Person.Name, pr.Creation, pr.Settlement)
		if !pr.Matched() {
			out.printf("%s\n", yellow(noMatches))
			continue
		}

		table, err := rd.table(pr.Lines)
		if err != nil {
			out.fail(err)
			return
		}
		out.printf("\n%s\n", table)
		out.printf("GP total: %s\n", rd.money(pr.Gross))
		out.printf("Comissão total: %s\n", rd.money(pr.Commission))
	}

	out.printf("\n%s\n", strings.Repeat("=", 90))
	out.printf("TOTAL %s (Competências: %s | DATE_COMISSION: %s)\n", p.Person.Name, periods, r.SettlementPeriod)
	out.printf("GP total: %s\n", rd.money(p.Gross))
	out.printf("Comissão total: %s\n", boldGreen(rd.money(p.Commission)))
	out.printf("%s\n", strings.Repeat("=", 90))
}

func (rd *Renderer) table(lines []commission.Line) (string, error) {
	data := pterm.TableData{columns}
	for _, l := range lines {
		data = append(data, []string{
			l.Code,
			l.CreatedAt.Format("2006-01-02"),
			l.SettledAt.Format("2006-01-02"),
			l.Level,
			commission.PercentLabel(l.Rate),
			rd.money(l.Gross),
			rd.money(l.Commission),
		})
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
}

func (rd *Renderer) debugPrecheck(out *errWriter, r commission.Report) {
	out.printf("\n%s\n", strings.Repeat("-", 90))
	out.printf("DEBUG (pré-filtros): procurando o código no Apurado inteiro\n")
	out.printf("DEBUG_CODE: %q\n", r.DebugCode)
	out.printf("Encontrados (match exato): %d\n", len(r.DebugHits))
	if len(r.DebugHits) > 0 {
		hit := r.DebugHits[0]
		out.printf("\nLinha (bruta) no Apurado:\n")
		out.printf("%s: %q\n", commission.ColCode, hit[commission.ColCode])
		out.printf("%s: %q\n", commission.ColSeller, hit[commission.ColSeller])
		out.printf("%s: %q\n", r.GPColumn, hit[r.GPColumn])
	}
	out.printf("%s\n", strings.Repeat("-", 90))
}

func (rd *Renderer) trace(out *errWriter, pr commission.PeriodResult) {
	for _, d := range pr.Trace {
		out.printf("\n%s\n", strings.Repeat("=", 90))
		out.printf("DEBUG competencia: %s | pay_yyyymm: %s\n", pr.Creation, pr.Settlement)
		out.printf("codigo: %q | vendedor: %q\n", d.Code, d.Seller)
		out.printf("date_creation: %s | date_comission: %s\n", dateLabel(d.Dates.CreatedAt), dateLabel(d.Dates.SettledAt))
		out.printf("=> %s\n", verdictLabel(d.Verdict))
	}
}

func (rd *Renderer) money(d decimal.Decimal) string {
	return rd.printer.Sprintf("%.2f", d.InexactFloat64())
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return "None"
	}
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04:05"), core.PeriodOf(t))
}

func verdictLabel(v commission.Verdict) string {
	switch v {
	case commission.Included:
		return "ENTROU NA LISTA"
	case commission.RejectedMissingDates:
		return "REPROVOU: date_creation ou date_comission ausente"
	case commission.RejectedCreationPeriod:
		return "REPROVOU no filtro de COMPETÊNCIA (DATE_CREATION)"
	case commission.RejectedSettlementPeriod:
		return "REPROVOU no filtro de PAY (DATE_COMISSION)"
	default:
		return "IGNORADO: " + v.String()
	}
}

// errWriter keeps the first write error so callers check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
