package commission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comissoes/internal/core"
	"comissoes/internal/sheets"
)

func TestRequireTransactionColumns(t *testing.T) {
	tx := tableOf([][]string{{"Código", "Vendedor", "Profit Liquido", "Aprovada"}})
	require.NoError(t, RequireTransactionColumns(tx, DefaultGPColumn, ""))
	require.NoError(t, RequireTransactionColumns(tx, DefaultGPColumn, "Aprovada"))

	err := RequireTransactionColumns(tx, "GP", "")
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "GP")

	require.ErrorIs(t, RequireTransactionColumns(tx, DefaultGPColumn, "Pago em"), ErrMissingColumn)
}

func TestFilterBySeller_Substring(t *testing.T) {
	tx := tableOf([][]string{
		{"Código", "Vendedor"},
		{"1", "Ana Souza"},
		{"2", "MARIANA ALVES"},
		{"3", "Bruno"},
	})
	rows := FilterBySeller(tx, "ana")
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Get(ColCode))
	assert.Equal(t, "2", rows[1].Get(ColCode))
}

func TestMatcher(t *testing.T) {
	dates := &fakeDates{dates: map[string]core.ShipmentDates{
		"S-1": {CreatedAt: day(2025, 8, 10), SettledAt: day(2025, 12, 2)},
		"S-2": {CreatedAt: day(2025, 8, 10)},
	}}
	m := &Matcher{Lookup: dates}
	ctx := context.Background()

	cases := []struct {
		name       string
		row        sheets.Row
		creation   core.Period
		settlement core.Period
		want       Verdict
	}{
		{"both periods match", sheets.Row{ColCode: "S-1"}, "2025-08", "2025-12", Included},
		{"creation differs", sheets.Row{ColCode: "S-1"}, "2025-09", "2025-12", RejectedCreationPeriod},
		{"settlement differs", sheets.Row{ColCode: "S-1"}, "2025-08", "2025-11", RejectedSettlementPeriod},
		{"settlement missing", sheets.Row{ColCode: "S-2"}, "2025-08", "2025-12", RejectedMissingDates},
		{"unknown code", sheets.Row{ColCode: "S-404"}, "2025-08", "2025-12", RejectedMissingDates},
		{"blank code", sheets.Row{ColCode: "  "}, "2025-08", "2025-12", SkippedBlankCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := m.Match(ctx, tc.row, tc.creation, tc.settlement)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Verdict, d.Verdict.String())
		})
	}
	assert.Equal(t, 5, dates.calls, "blank codes must not be looked up")
}

func TestMatcher_DebugCodeAndOverride(t *testing.T) {
	dates := &fakeDates{dates: map[string]core.ShipmentDates{
		"S-1": {CreatedAt: day(2025, 8, 10), SettledAt: day(2025, 11, 2)},
	}}
	m := &Matcher{Lookup: dates, DebugCode: "S-1", SettlementColumn: "Aprovada"}
	ctx := context.Background()

	d, err := m.Match(ctx, sheets.Row{ColCode: "S-9"}, "2025-08", "2025-12")
	require.NoError(t, err)
	assert.Equal(t, SkippedOtherCode, d.Verdict)
	assert.False(t, d.Looked())
	assert.Zero(t, dates.calls)

	d, err = m.Match(ctx, sheets.Row{ColCode: "S-1", "Aprovada": "05/12/2025"}, "2025-08", "2025-12")
	require.NoError(t, err)
	assert.True(t, d.Included(), d.Verdict.String())

	d, err = m.Match(ctx, sheets.Row{ColCode: "S-1", "Aprovada": ""}, "2025-08", "2025-11")
	require.NoError(t, err)
	assert.Equal(t, RejectedMissingDates, d.Verdict, "an empty override column clears the settlement date")
}

func TestMatcher_LookupErrorPropagates(t *testing.T) {
	m := &Matcher{Lookup: &fakeDates{err: errDB}}
	_, err := m.Match(context.Background(), sheets.Row{ColCode: "S-1"}, "2025-08", "2025-12")
	require.ErrorIs(t, err, errDB)
}
