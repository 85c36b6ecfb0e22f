package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 15 {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("expected local midnight, got %v", d)
	}

	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}

func TestDateOf(t *testing.T) {
	now := time.Date(2026, time.July, 4, 15, 30, 45, 0, time.Local)
	d := DateOf(now)
	if d.String() != "2026-07-04" {
		t.Fatalf("expected 2026-07-04, got %s", d)
	}
	if d.Hour() != 0 {
		t.Fatalf("expected truncation to midnight")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2026-01-31")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"2026-01-31"` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("expected %v, got %v", d, back)
	}
}

func TestDateJSONZero(t *testing.T) {
	var d Date
	data, _ := json.Marshal(d)
	if string(data) != `""` {
		t.Fatalf("expected empty string for zero date, got %s", data)
	}

	var back Date
	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.IsZero() {
		t.Fatalf("expected zero date")
	}
}

func TestDateAddDays(t *testing.T) {
	d, _ := ParseDate("2026-02-27")
	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Fatalf("expected 2026-03-01, got %s", got)
	}
}
