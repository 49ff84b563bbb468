package utils

import (
	"testing"
	"time"
)

func TestParseDayStrictFormat(t *testing.T) {
	parsed, err := ParseDay("2026-09-01")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if FormatDay(parsed) != "2026-09-01" {
		t.Fatalf("expected round trip, got %s", FormatDay(parsed))
	}

	for _, bad := range []string{"01-09-2026", "2026/09/01", "2026-9-1", "tomorrow", ""} {
		if _, err := ParseDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestStartCurrentDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	moment := time.Date(2026, 9, 1, 18, 45, 30, 0, loc)

	start := StartCurrentDay(moment)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight, got %v", start)
	}
	if start.Location() != loc {
		t.Fatalf("expected location preserved, got %v", start.Location())
	}
}
