package audit

import (
	"testing"
	"time"

	"sentinel/internal/models"
)

func TestStringify(t *testing.T) {
	dateOnly := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2026, 3, 15, 14, 30, 5, 0, time.UTC)
	s := "hello"
	var nilStr *string
	var nilTime *time.Time

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "<nil>"},
		{"nil_string_pointer", nilStr, "<nil>"},
		{"nil_time_pointer", nilTime, "<nil>"},
		{"empty_string", "", ""},
		{"string", "hello", "hello"},
		{"string_pointer", &s, "hello"},
		{"midnight_utc_date", dateOnly, "2026-03-15"},
		{"date_pointer", &dateOnly, "2026-03-15"},
		{"timestamp", stamp, "2026-03-15T14:30:05Z"},
		{"int", 42, "42"},
		{"int64_cents", int64(125000), "125000"},
		{"bool_true", true, "true"},
		{"bool_false", false, "false"},
		{"named_string_type", models.StageClosedWon, "Closed-Won"},
		{"status_type", models.TaskStatusCompleted, "Completed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.in); got != tc.want {
				t.Errorf("Stringify(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStringifyNilDistinctFromEmpty(t *testing.T) {
	if Stringify(nil) == Stringify("") {
		t.Error("nil and empty string must stringify differently")
	}
}

func TestStringifyNonUTCDate(t *testing.T) {
	// Midnight in a non-UTC zone is not midnight UTC, so it renders as a
	// full timestamp.
	loc := time.FixedZone("EST", -5*3600)
	d := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)
	if got := Stringify(d); got != "2026-03-15T05:00:00Z" {
		t.Errorf("expected full timestamp for non-UTC midnight, got %q", got)
	}
}

func TestDiff(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		ch, ok := Diff("status", "Open", "Completed")
		if !ok {
			t.Fatal("expected a change")
		}
		if ch.Field != "status" || ch.OldValue != "Open" || ch.NewValue != "Completed" {
			t.Errorf("unexpected change: %+v", ch)
		}
	})

	t.Run("no_change", func(t *testing.T) {
		if _, ok := Diff("status", "Open", "Open"); ok {
			t.Error("identical values should not produce a change")
		}
	})

	t.Run("pointer_vs_value", func(t *testing.T) {
		s := "Open"
		if _, ok := Diff("status", &s, "Open"); ok {
			t.Error("pointer and value with the same canonical form should not differ")
		}
	})

	t.Run("nil_to_empty", func(t *testing.T) {
		var old *string
		ch, ok := Diff("phone", old, "")
		if !ok {
			t.Fatal("clearing a nil field to empty string is a change")
		}
		if ch.OldValue != "<nil>" || ch.NewValue != "" {
			t.Errorf("unexpected change: %+v", ch)
		}
	})
}
