package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWeeklyHoursForTime(t *testing.T) {
	hours := WeeklyHours{
		"monday": {Opening: "09:00", Closing: "17:00"},
	}

	monday := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	day, ok := hours.ForTime(monday)
	if !ok {
		t.Fatal("expected monday entry")
	}
	if day.Opening != "09:00" || day.Closing != "17:00" {
		t.Fatalf("unexpected window %+v", day)
	}

	tuesday := monday.AddDate(0, 0, 1)
	if _, ok := hours.ForTime(tuesday); ok {
		t.Fatal("tuesday has no entry")
	}

	var empty WeeklyHours
	if _, ok := empty.ForTime(monday); ok {
		t.Fatal("empty schedule has no entries")
	}
}

func TestWeeklyHoursJSONRoundTrip(t *testing.T) {
	hours := WeeklyHours{
		"monday":   {Opening: "09:00", Closing: "17:00"},
		"saturday": {Opening: "10:00", Closing: "23:30"},
	}

	raw, err := json.Marshal(hours)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded WeeklyHours
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["saturday"].Closing != "23:30" {
		t.Fatalf("unexpected decoded value %+v", decoded)
	}
}

func TestIsWeekday(t *testing.T) {
	for _, day := range Weekdays {
		if !IsWeekday(day) {
			t.Fatalf("%s should be accepted", day)
		}
	}
	for _, bad := range []string{"Monday", "funday", ""} {
		if IsWeekday(bad) {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}
