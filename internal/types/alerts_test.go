package types

import (
	"testing"
	"time"
)

func TestAlertKind_Key(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		kind AlertKind
		want string
	}{
		{KindFreezeWatch, "freeze_10day_2026-02-10"},
		{KindUrgentFreeze, "freeze_urgent_2026-02-10"},
		{KindRainIncoming, "rain_change_2026-02-10"},
		{KindHeavyRain, "heavy_rain_2026-02-10"},
		{KindHighWind, "high_wind_2026-02-10"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Key(date); got != tt.want {
				t.Errorf("Key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlertKind_KeyChangesWithDate(t *testing.T) {
	a := KindFreezeWatch.Key(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	b := KindFreezeWatch.Key(time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC))
	if a == b {
		t.Error("different driving dates must yield different keys")
	}
}

func TestAlertKind_IsValid(t *testing.T) {
	for _, k := range []AlertKind{KindFreezeWatch, KindUrgentFreeze, KindRainIncoming, KindHeavyRain, KindHighWind} {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if AlertKind("tornado_watch").IsValid() {
		t.Error("unknown kind reported valid")
	}
}
