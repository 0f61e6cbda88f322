package model

import (
	"testing"
	"time"
)

func TestVerifyLicensePlate_Sentinel(t *testing.T) {
	if err := VerifyLicensePlate("INVALID"); err == nil {
		t.Fatalf("expected error for sentinel plate, got nil")
	}
	if err := VerifyLicensePlate("ABC123"); err != nil {
		t.Fatalf("expected no error for normal plate, got %v", err)
	}
}

func TestParseClock_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		in        string
		hour, min int
	}{
		{"10:30", 10, 30},
		{"9:05", 9, 5},
		{"10:30:45", 10, 30},
		{"9:05:01", 9, 5},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", tc.in, err)
		}
		if got.Hour() != tc.hour || got.Minute() != tc.min {
			t.Fatalf("ParseClock(%q) = %02d:%02d, want %02d:%02d", tc.in, got.Hour(), got.Minute(), tc.hour, tc.min)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	if _, err := ParseClock("not a time"); err == nil {
		t.Fatalf("expected error for malformed clock, got nil")
	}
}

func TestFormatClock_AlwaysTwoDigit(t *testing.T) {
	c, err := ParseClock("9:05")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if got := FormatClock(c); got != "09:05" {
		t.Fatalf("FormatClock = %q, want %q", got, "09:05")
	}
}

func TestClockOf_StripsDate(t *testing.T) {
	wall := time.Date(2025, time.June, 15, 13, 45, 30, 0, time.Local)
	got := ClockOf(wall)

	want, err := ParseClock("13:45:30")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("ClockOf = %v, want %v", got, want)
	}
}
