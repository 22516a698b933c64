package commission

import (
	"fmt"

	"comissoes/internal/core"
	"comissoes/internal/sheets"
)

// ExtractRoster returns the people holding role in the metadata table.
// Rows without name or level are dropped and duplicates (by lowercased email,
// or name when email is blank) keep their first occurrence.
func ExtractRoster(meta sheets.Table, role string) ([]core.Person, error) {
	if missing := meta.MissingColumns(ColName, ColEmail, ColRole, ColLevel); len(missing) > 0 {
		return nil, fmt.Errorf("roster sheet needs column %q: %w", missing[0], ErrMissingColumn)
	}

	want := core.NormalizeText(role)
	seen := map[string]bool{}
	var people []core.Person
	for _, row := range meta.Rows {
		if core.NormalizeText(row.Get(ColRole)) != want {
			continue
		}
		p := core.Person{
			Name:  row.Get(ColName),
			Email: row.Get(ColEmail),
			Level: row.Get(ColLevel),
		}
		if p.Validate() != nil {
			continue
		}
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		people = append(people, p)
	}
	return people, nil
}
