// Package forecast implements the temporal ledger projection engine: a pure,
// deterministic computation that, given accounts, a recurring-item catalogue
// and optional dated revisions, produces one balance snapshot per day out to
// an arbitrary horizon.
package forecast

import (
	"time"

	"github.com/prospera-app/prospera-backend/internal/domain"
)

// DateUTC truncates t to midnight UTC. All engine date arithmetic runs on
// these normalized values so that whole-day comparisons are exact.
func DateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in t's month.
func LastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDay anchors a target day to month-end rather than skipping: day 31
// fires on day 28/29/30 in short months.
func clampDay(day, last int) int {
	if day > last {
		return last
	}
	return day
}

// Fires reports whether item produces a transaction on date. It is callable
// independently of the projection loop and never fails: configuration gaps
// degrade to documented fallbacks.
func Fires(date time.Time, item domain.RecurringItem) bool {
	switch item.Frequency {
	case domain.FrequencyMonthly:
		return firesMonthly(date, item)
	case domain.FrequencySemiMonthly:
		return firesSemiMonthly(date, item)
	case domain.FrequencyBiweekly:
		return firesBiweekly(date, item)
	case domain.FrequencyWeekly:
		return firesWeekly(date, item)
	case domain.FrequencyQuarterly:
		return firesQuarterly(date, item)
	case domain.FrequencyAnnual:
		return firesAnnual(date, item)
	default:
		// Unrecognized or missing frequency: monthly anchored to day 1.
		return date.Day() == 1
	}
}

func firesMonthly(date time.Time, item domain.RecurringItem) bool {
	return date.Day() == clampDay(item.AnchorDay(), LastDayOfMonth(date))
}

func firesSemiMonthly(date time.Time, item domain.RecurringItem) bool {
	last := LastDayOfMonth(date)
	anchor := item.AnchorDay()
	return date.Day() == clampDay(anchor, last) || date.Day() == clampDay(anchor+15, last)
}

func firesBiweekly(date time.Time, item domain.RecurringItem) bool {
	// Both anchors are required; without them the item degrades to the
	// monthly rule.
	if item.Weekday == nil || item.ReferenceDate == nil {
		return firesMonthly(date, item)
	}
	if date.Weekday() != *item.Weekday {
		return false
	}
	days := wholeDaysBetween(*item.ReferenceDate, date)
	return days >= 0 && days%14 == 0
}

func firesWeekly(date time.Time, item domain.RecurringItem) bool {
	if item.Weekday != nil {
		return date.Weekday() == *item.Weekday
	}
	// Legacy fallback: older items encoded the weekday in dayOfMonth.
	return date.Weekday() == time.Weekday(item.DayOfMonth%7)
}

func firesQuarterly(date time.Time, item domain.RecurringItem) bool {
	if (int(date.Month())-1)%3 != 0 {
		return false
	}
	return firesMonthly(date, item)
}

func firesAnnual(date time.Time, item domain.RecurringItem) bool {
	month := time.January
	if item.MonthOfYear != nil {
		month = *item.MonthOfYear
	}
	if date.Month() != month {
		return false
	}
	return firesMonthly(date, item)
}

// wholeDaysBetween returns the integer number of whole days from a to b,
// negative when b precedes a.
func wholeDaysBetween(a, b time.Time) int {
	return int(DateUTC(b).Sub(DateUTC(a)).Hours() / 24)
}
