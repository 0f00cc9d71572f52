package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	for _, raw := range []string{"2024-01-15", "2024-01-15T09:30", "2024-01-15T09:30:00.000Z"} {
		parsed, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if parsed.Year() != 2024 || parsed.Month() != time.January || parsed.Day() != 15 {
			t.Fatalf("unexpected date for %q: %v", raw, parsed)
		}
	}
	if _, err := ParseDate("next week"); err == nil {
		t.Fatalf("expected error")
	}
	blank := ""
	if got, err := ParseOptionalDate(&blank); err != nil || got != nil {
		t.Fatalf("expected nil for blank, got %v (%v)", got, err)
	}
}

func TestOptionalDecimal(t *testing.T) {
	var payload struct {
		Price OptionalDecimal `json:"price"`
	}
	cases := map[string]string{
		`{"price":1299.99}`: "1299.99",
		`{"price":"45.5"}`:  "45.5",
		`{"price":""}`:      "",
		`{"price":null}`:    "",
		`{}`:                "",
	}
	for raw, want := range cases {
		payload.Price = OptionalDecimal{}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		got := ""
		if payload.Price.Value != nil {
			got = payload.Price.Value.String()
		}
		if got != want {
			t.Fatalf("%s: expected %q got %q", raw, want, got)
		}
	}
	if err := json.Unmarshal([]byte(`{"price":"abc"}`), &payload); err == nil {
		t.Fatalf("expected error for non-numeric price")
	}
}
