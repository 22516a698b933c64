// Package core provides money parsing and text normalization utilities.
//
// This file contains functions for parsing pt-BR monetary amounts and
// percentages coming from spreadsheet cells.
package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney converts a spreadsheet value to a float.
//
// It never fails: nil, empty and unparsable values yield 0. Numbers pass
// through unchanged. Strings have the currency symbol and spaces stripped and,
// when a comma is present, dots are treated as thousands separators and the
// comma as the decimal separator.
//
// Examples:
//
//	ParseMoney("R$ 4.374,34") -> 4374.34
//	ParseMoney("4374,34")     -> 4374.34
//	ParseMoney("4374.34")     -> 4374.34
//	ParseMoney(1500)          -> 1500
//	ParseMoney("")            -> 0
func ParseMoney(x any) float64 {
	switch v := x.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case decimal.Decimal:
		return v.InexactFloat64()
	case string:
		return parseMoneyString(v)
	default:
		return 0
	}
}

func parseMoneyString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ErrMalformedPercentage is returned when a percentage cell is not of the form "NN%".
var ErrMalformedPercentage = errors.New("malformed percentage")

// ParsePercent converts a cell like "50%" or "12,5%" into a fraction (0.5, 0.125).
// Dots are thousands separators and a comma is the decimal separator.
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, ErrMalformedPercentage
	}
	num := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	num = strings.ReplaceAll(num, ".", "")
	num = strings.ReplaceAll(num, ",", ".")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, ErrMalformedPercentage
	}
	return f / 100.0, nil
}

// RoundCommission returns gross × rate rounded to cents, half away from zero.
func RoundCommission(gross, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(gross).Mul(decimal.NewFromFloat(rate)).Round(2)
}
