package commission

import (
	"context"
	"errors"
	"time"

	"comissoes/internal/core"
	"comissoes/internal/sheets"
	"comissoes/internal/sheets/memory"
)

const (
	paramKey = "param"
	opsKey   = "atlantis"

	levelsGID = 1124232309
	rosterGID = 873121416
	opsGID    = 1259003990
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeDates struct {
	dates map[string]core.ShipmentDates
	calls int
	err   error
}

func (f *fakeDates) LookupDates(_ context.Context, code string) (core.ShipmentDates, error) {
	f.calls++
	if f.err != nil {
		return core.ShipmentDates{}, f.err
	}
	return f.dates[code], nil
}

var errDB = errors.New("connection refused")

func levelsTable() [][]string {
	return [][]string{
		{"Niveis", "Sales Executive", "Sales Manager"},
		{"Guardiao", "50%", "10%"},
		{"Explorador", "12,5%", "5%"},
		{"Quebrado", "50", "5%"},
	}
}

func rosterTable() [][]string {
	return [][]string{
		{"Colaborador", "Email", "Função", "Nível"},
		{"Ana Souza", "ana@audaz.com", "Sales Executive", "Guardião"},
		{"Bruno Lima", "bruno@audaz.com", "sales executive", "Explorador"},
		{"Carla", "carla@audaz.com", "Sales Manager", "Guardiao"},
	}
}

func fixtureStore(ops [][]string) *memory.Store {
	return memory.New().
		PutValues(paramKey, levelsGID, levelsTable()).
		PutValues(paramKey, rosterGID, rosterTable()).
		PutValues(opsKey, opsGID, ops)
}

func fixtureParams() Params {
	return Params{
		Sources: Sources{
			ParamSpreadsheet:        paramKey,
			TransactionsSpreadsheet: opsKey,
			LevelsSheet:             levelsGID,
			RosterSheet:             rosterGID,
			TransactionsSheet:       opsGID,
		},
		CreationPeriods:  []core.Period{"2025-08", "2025-09"},
		SettlementPeriod: "2025-12",
	}
}

func tableOf(values [][]string) sheets.Table {
	return sheets.FromValues(values)
}
