package billing

import (
	"testing"
	"time"
)

func TestCalendarUsesBusinessTimezone(t *testing.T) {
	cal := NewCalendar("America/Argentina/Buenos_Aires")

	// 01:30 UTC on July 1st is still June 30th in Buenos Aires (UTC-3).
	ts := time.Date(2024, 7, 1, 1, 30, 0, 0, time.UTC)

	today := cal.Today(ts)
	if today != (Date{Year: 2024, Month: 6, Day: 30}) {
		t.Fatalf("expected 2024-06-30 business-local, got %+v", today)
	}

	period := cal.CurrentPeriod(ts)
	if period != (Period{Year: 2024, Month: 6}) {
		t.Fatalf("expected period 2024-06, got %+v", period)
	}
}

func TestCalendarInvalidTimezoneFallsBackToUTC(t *testing.T) {
	cal := NewCalendar("Mars/Olympus_Mons")

	ts := time.Date(2024, 7, 1, 1, 30, 0, 0, time.UTC)
	if got := cal.Today(ts); got != (Date{Year: 2024, Month: 7, Day: 1}) {
		t.Fatalf("expected UTC fallback date 2024-07-01, got %+v", got)
	}
}

func TestPeriodEqual(t *testing.T) {
	a := Period{Year: 2024, Month: 6}
	if !a.Equal(Period{Year: 2024, Month: 6}) {
		t.Fatal("expected equal periods")
	}
	if a.Equal(Period{Year: 2024, Month: 7}) {
		t.Fatal("different months must not be equal")
	}
	if a.Equal(Period{Year: 2023, Month: 6}) {
		t.Fatal("different years must not be equal")
	}
}

func TestDateBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want bool
	}{
		{name: "earlier day", a: Date{2024, 6, 14}, b: Date{2024, 6, 15}, want: true},
		{name: "same date", a: Date{2024, 6, 15}, b: Date{2024, 6, 15}, want: false},
		{name: "earlier month later day", a: Date{2024, 5, 30}, b: Date{2024, 6, 1}, want: true},
		{name: "earlier year later month", a: Date{2023, 12, 31}, b: Date{2024, 1, 1}, want: true},
		{name: "later day", a: Date{2024, 6, 16}, b: Date{2024, 6, 15}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Before(tt.b); got != tt.want {
				t.Fatalf("Before(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
