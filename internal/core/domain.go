package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// LevelRate maps an employee level to its commission fraction (0.5 for "50%").
	LevelRate struct {
		Level      string
		Percentage float64
	}

	// Person is a member of the roster entitled to commission.
	Person struct {
		Name  string
		Email string
		Level string
	}

	// ShipmentDates holds the creation and settlement timestamps of a
	// shipment. A zero time means the value is missing.
	ShipmentDates struct {
		CreatedAt time.Time
		SettledAt time.Time
	}
)

var (
	ErrEmptyName  = errors.New("empty name")
	ErrEmptyLevel = errors.New("empty level")
)

func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Level) == "" {
		return ErrEmptyLevel
	}
	return nil
}

// Key is the deduplication key: lowercased email, or name when email is empty.
func (p Person) Key() string {
	k := strings.TrimSpace(p.Email)
	if k == "" {
		k = strings.TrimSpace(p.Name)
	}
	return strings.ToLower(k)
}

// Resolved reports whether both dates are present.
func (d ShipmentDates) Resolved() bool {
	return !d.CreatedAt.IsZero() && !d.SettledAt.IsZero()
}
