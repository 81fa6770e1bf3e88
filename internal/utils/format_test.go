package utils

import (
	"testing"
	"time"
)

func TestFormatDose(t *testing.T) {
	cases := map[float64]string{
		0:    "0.00",
		7.4:  "7.40",
		0.25: "0.25",
		-0.8: "-0.80",
	}
	for value, want := range cases {
		if got := FormatDose(value); got != want {
			t.Errorf("FormatDose(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestFormatCarbs(t *testing.T) {
	if got := FormatCarbs(42); got != "42.0" {
		t.Errorf("FormatCarbs(42) = %q", got)
	}
	if got := FormatCarbs(12.34); got != "12.3" {
		t.Errorf("FormatCarbs(12.34) = %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "07.03.2025 09:05" {
		t.Errorf("FormatTimestamp = %q", got)
	}
}
