/**
 * @description
 * Calendar and period utilities for the billing cycle engine.
 * The business operates in a single fixed timezone; every "today" and
 * "current period" in the system is derived here so that no two
 * components disagree about what day it is.
 */
package billing

import (
	"log"
	"time"
)

// DefaultTimezone is the business timezone when none is configured.
const DefaultTimezone = "America/Argentina/Buenos_Aires"

// Period identifies one monthly billing cycle.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Equal reports whether two periods identify the same month.
func (p Period) Equal(other Period) bool {
	return p.Year == other.Year && p.Month == other.Month
}

// Date is a calendar date in the business timezone.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Period returns the billing period the date falls in.
func (d Date) Period() Period {
	return Period{Year: d.Year, Month: d.Month}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// DateOf extracts the calendar date of t without timezone conversion.
// Used for DATE columns, which carry no time-of-day information.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Calendar converts timestamps into business-local periods and dates.
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar for the given IANA timezone name.
// An invalid name falls back to UTC rather than failing startup.
func NewCalendar(timezone string) Calendar {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("WARN: invalid timezone %q, defaulting to UTC", timezone)
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Location returns the business timezone.
func (c Calendar) Location() *time.Location {
	return c.loc
}

// CurrentPeriod returns the billing period t falls in, business-local.
func (c Calendar) CurrentPeriod(t time.Time) Period {
	lt := t.In(c.loc)
	return Period{Year: lt.Year(), Month: int(lt.Month())}
}

// Today returns the calendar date of t, business-local.
func (c Calendar) Today(t time.Time) Date {
	lt := t.In(c.loc)
	return Date{Year: lt.Year(), Month: int(lt.Month()), Day: lt.Day()}
}
