package storage

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/record"
)

func TestUpsertSQL_KeyedTable(t *testing.T) {
	got := UpsertSQL(record.PatientInfo)
	want := "INSERT INTO patient_info (username, name, gender, birthday, national_id, phone_number, email) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7) " +
		"ON CONFLICT (username) DO UPDATE SET " +
		"name = EXCLUDED.name, gender = EXCLUDED.gender, birthday = EXCLUDED.birthday, " +
		"national_id = EXCLUDED.national_id, phone_number = EXCLUDED.phone_number, email = EXCLUDED.email"
	if got != want {
		t.Errorf("unexpected SQL:\n got: %s\nwant: %s", got, want)
	}
}

func TestUpsertSQL_CompositeKey(t *testing.T) {
	got := UpsertSQL(record.Appointment)
	want := "INSERT INTO appointment (patient_username, doctor_username, visit_date, visit_time, cost, status) " +
		"VALUES ($1, $2, $3, $4, $5, $6) " +
		"ON CONFLICT (patient_username, doctor_username, visit_date, visit_time) DO UPDATE SET " +
		"cost = EXCLUDED.cost, status = EXCLUDED.status"
	if got != want {
		t.Errorf("unexpected SQL:\n got: %s\nwant: %s", got, want)
	}
}

func TestUpsertSQL_KeylessTableAppends(t *testing.T) {
	got := UpsertSQL(record.Work)
	want := "INSERT INTO work (username, work_date, status) VALUES ($1, $2, $3)"
	if got != want {
		t.Errorf("unexpected SQL:\n got: %s\nwant: %s", got, want)
	}
}

func TestUpsert_MissingFieldShortCircuits(t *testing.T) {
	// A nil pool is safe here: the missing-field check runs before any
	// database access.
	g := NewPG(nil, zerolog.Nop())

	reply, err := g.Upsert(context.Background(), record.Work, record.Fragment{
		"username": "w",
		"status":   "clock",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "no [date]" {
		t.Errorf("expected no [date], got %q", reply)
	}
}

func TestTextValue(t *testing.T) {
	if got := textValue(nil); got != "NULL" {
		t.Errorf("expected NULL, got %q", got)
	}
	if got := textValue("x"); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if got := textValue([]byte("y")); got != "y" {
		t.Errorf("expected y, got %q", got)
	}
	if got := textValue(int64(42)); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
}
