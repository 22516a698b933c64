// Package commission computes sales commissions from the levels, roster and
// settled-transactions sheets cross-referenced with shipment dates.
package commission

import (
	"errors"

	"comissoes/internal/core"
)

// Column names of the source sheets.
const (
	ColLevelName = "Niveis"

	ColName  = "Colaborador"
	ColEmail = "Email"
	ColRole  = "Função"
	ColLevel = "Nível"

	ColCode   = "Código"
	ColSeller = "Vendedor"
)

const (
	DefaultRole     = "Sales Executive"
	DefaultGPColumn = "Profit Liquido"
)

var (
	ErrMissingColumn       = errors.New("missing required column")
	ErrLevelNotFound       = errors.New("level not found")
	ErrMalformedPercentage = core.ErrMalformedPercentage
	ErrEmptyRoster         = errors.New("no one holds the target role")
)
