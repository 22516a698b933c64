package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  any
		out float64
	}{
		{"R$ 4.374,34", 4374.34},
		{"4.374,34", 4374.34},
		{"4374,34", 4374.34},
		{"4374.34", 4374.34},
		{"R$ 1.000,00", 1000},
		{" 12 ", 12},
		{"", 0},
		{"   ", 0},
		{nil, 0},
		{1500, 1500},
		{int64(7), 7},
		{2.5, 2.5},
		{decimal.RequireFromString("10.25"), 10.25},
		{"abc", 0},
		{"1,2,3", 0},
		{struct{}{}, 0},
	}
	for _, tc := range cases {
		if got := ParseMoney(tc.in); got != tc.out {
			t.Fatalf("ParseMoney(%#v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"50%", 0.5, true},
		{" 50 % ", 0.5, true},
		{"12,5%", 0.125, true},
		{"100%", 1, true},
		{"50", 0, false},
		{"", 0, false},
		{"abc%", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePercent(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrMalformedPercentage) {
			t.Fatalf("%q expected ErrMalformedPercentage, got %v", tc.in, err)
		}
	}
}

func TestRoundCommission(t *testing.T) {
	cases := []struct {
		gross, rate float64
		want        string
	}{
		{1000, 0.5, "500"},
		{4374.34, 0.05, "218.72"},
		{0.125, 1, "0.13"}, // half away from zero
		{-0.125, 1, "-0.13"},
		{0, 0.5, "0"},
	}
	for _, tc := range cases {
		got := RoundCommission(tc.gross, tc.rate)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("RoundCommission(%v, %v) = %s, want %s", tc.gross, tc.rate, got, tc.want)
		}
	}
}
