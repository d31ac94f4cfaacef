package rules

import (
	"fmt"
	"strings"

	"stormwatch/internal/types"
)

// daysOutPhrase renders the forecast index as a human phrase. Day 0 is
// always the current day, so the index is the number of days out.
func daysOutPhrase(i int) string {
	switch i {
	case 0:
		return "today"
	case 1:
		return "1 day out"
	default:
		return fmt.Sprintf("%d days out", i)
	}
}

// friendlyDayList renders consecutive days as a spoken-style weekday
// list: "Saturday", "Saturday and Sunday", "Saturday, Sunday and Monday".
func friendlyDayList(days []types.DayForecast) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.DayName()
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
