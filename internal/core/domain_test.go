package core

import (
	"testing"
	"time"
)

func TestPersonValidate(t *testing.T) {
	if err := (Person{Name: "Ana", Level: "Guardiao"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Person{Level: "Guardiao"}).Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (Person{Name: "Ana", Level: "  "}).Validate(); err != ErrEmptyLevel {
		t.Fatalf("expected ErrEmptyLevel, got %v", err)
	}
}

func TestPersonKey(t *testing.T) {
	if k := (Person{Name: "Ana", Email: " Ana@X.com "}).Key(); k != "ana@x.com" {
		t.Fatalf("got %q", k)
	}
	if k := (Person{Name: " Ana Souza "}).Key(); k != "ana souza" {
		t.Fatalf("got %q", k)
	}
}

func TestShipmentDatesResolved(t *testing.T) {
	now := time.Now()
	if (ShipmentDates{CreatedAt: now}).Resolved() {
		t.Fatal("missing settlement should not resolve")
	}
	if !(ShipmentDates{CreatedAt: now, SettledAt: now}).Resolved() {
		t.Fatal("expected resolved")
	}
}
