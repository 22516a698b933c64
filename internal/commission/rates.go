package commission

import (
	"fmt"

	"github.com/schollz/closestmatch"

	"comissoes/internal/core"
	"comissoes/internal/sheets"
)

// ResolveRate returns the commission fraction for level in the role column of
// the levels table. Level names compare case and accent insensitively and the
// first matching row wins.
func ResolveRate(rates sheets.Table, role, level string) (float64, error) {
	lr, err := LookupLevel(rates, role, level)
	if err != nil {
		return 0, err
	}
	return lr.Percentage, nil
}

// LookupLevel is ResolveRate keeping the level name as written in the sheet.
func LookupLevel(rates sheets.Table, role, level string) (core.LevelRate, error) {
	if missing := rates.MissingColumns(ColLevelName, role); len(missing) > 0 {
		return core.LevelRate{}, fmt.Errorf("levels sheet needs column %q: %w", missing[0], ErrMissingColumn)
	}

	want := core.NormalizeText(level)
	for _, row := range rates.Rows {
		if core.NormalizeText(row.Get(ColLevelName)) != want {
			continue
		}
		cell := row.Get(role)
		pct, err := core.ParsePercent(cell)
		if err != nil {
			return core.LevelRate{}, fmt.Errorf("percentage %q for %s/%s: %w", cell, role, level, err)
		}
		return core.LevelRate{Level: row.Get(ColLevelName), Percentage: pct}, nil
	}

	if s := suggestLevel(rates, want); s != "" {
		return core.LevelRate{}, fmt.Errorf("level %q not in levels sheet (did you mean %q?): %w", level, s, ErrLevelNotFound)
	}
	return core.LevelRate{}, fmt.Errorf("level %q not in levels sheet: %w", level, ErrLevelNotFound)
}

// suggestLevel returns the known level closest to the normalized input, or "".
func suggestLevel(rates sheets.Table, normalized string) string {
	byKey := map[string]string{}
	var keys []string
	for _, row := range rates.Rows {
		name := row.Get(ColLevelName)
		key := core.NormalizeText(name)
		if key == "" {
			continue
		}
		if _, dup := byKey[key]; dup {
			continue
		}
		byKey[key] = name
		keys = append(keys, key)
	}
	if len(keys) == 0 || normalized == "" {
		return ""
	}
	cm := closestmatch.New(keys, []int{2, 3})
	return byKey[cm.Closest(normalized)]
}
