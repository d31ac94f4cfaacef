package rules

import (
	"testing"
	"time"

	"stormwatch/internal/types"
)

func TestDaysOutPhrase(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "today"},
		{1, "1 day out"},
		{2, "2 days out"},
		{9, "9 days out"},
	}
	for _, tt := range tests {
		if got := daysOutPhrase(tt.in); got != tt.want {
			t.Errorf("daysOutPhrase(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFriendlyDayList(t *testing.T) {
	day := func(i int) types.DayForecast {
		return types.DayForecast{Date: testStart.AddDate(0, 0, i)}
	}
	tests := []struct {
		name string
		days []types.DayForecast
		want string
	}{
		{"single", []types.DayForecast{day(0)}, "Saturday"},
		{"pair", []types.DayForecast{day(0), day(1)}, "Saturday and Sunday"},
		{"run of three", []types.DayForecast{day(0), day(1), day(2)}, "Saturday, Sunday and Monday"},
		{"run of four", []types.DayForecast{day(0), day(1), day(2), day(3)}, "Saturday, Sunday, Monday and Tuesday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendlyDayList(tt.days); got != tt.want {
				t.Errorf("friendlyDayList = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysOutPhraseMatchesWeekday(t *testing.T) {
	// Sanity-pin the anchor date the other tests rely on.
	if wd := testStart.Weekday(); wd != time.Saturday {
		t.Fatalf("test anchor date should be a Saturday, got %s", wd)
	}
}
