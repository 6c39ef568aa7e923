package news

import (
	"testing"
	"time"

	"fx-decision-bot/internal/types"
)

func TestParseClockTimeFormats(t *testing.T) {
	cases := []struct {
		in         string
		hour, min  int
	}{
		{"2:30pm", 14, 30},
		{"2:30PM", 14, 30},
		{"9:00am", 9, 0},
		{"14:30", 14, 30},
		{"00:00", 0, 0},
		{" 2:30pm ", 14, 30},
	}
	for _, c := range cases {
		got, err := ParseClockTime(c.in)
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", c.in, err)
			continue
		}
		if got.Hour() != c.hour || got.Minute() != c.min {
			t.Errorf("ParseClockTime(%q) = %02d:%02d, want %02d:%02d", c.in, got.Hour(), got.Minute(), c.hour, c.min)
		}
	}
}

func TestParseClockTimeSpecialTokens(t *testing.T) {
	for _, token := range []string{"Day 1", "Day 2", "Tentative", "All Day"} {
		got, err := ParseClockTime(token)
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", token, err)
			continue
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("ParseClockTime(%q) should normalize to midnight, got %02d:%02d", token, got.Hour(), got.Minute())
		}
	}
}

func TestParseClockTimeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "soon", "25:00pm"} {
		if _, err := ParseClockTime(in); err == nil {
			t.Errorf("ParseClockTime(%q): expected error", in)
		}
	}
}

func TestParseImpact(t *testing.T) {
	cases := []struct {
		in   string
		want types.Impact
		ok   bool
	}{
		{"Low Impact Expected", types.ImpactLow, true},
		{"Medium Impact Expected", types.ImpactMedium, true},
		{"High Impact Expected", types.ImpactHigh, true},
		{"Non-Economic", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseImpact(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseImpact(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCombineEventTime(t *testing.T) {
	got, err := CombineEventTime(2025, "ThuNov 27", "1:30pm")
	if err != nil {
		t.Fatalf("CombineEventTime: %v", err)
	}
	want := time.Date(2025, 11, 27, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineEventTime = %v, want %v", got, want)
	}
}

func TestCombineEventTimeAllDay(t *testing.T) {
	got, err := CombineEventTime(2025, "FriNov 28", "All Day")
	if err != nil {
		t.Fatalf("CombineEventTime: %v", err)
	}
	want := time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineEventTime = %v, want %v", got, want)
	}
}

func TestCombineEventTimeBadDate(t *testing.T) {
	if _, err := CombineEventTime(2025, "sometime", "1:30pm"); err == nil {
		t.Error("expected error for unparseable date cell")
	}
}
