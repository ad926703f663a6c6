package repository

import (
	"time"

	"StockDesk/pkg/util"
)

// Period is a relative chart window anchored to "now".
type Period string

const (
	Period7D  Period = "7d"
	Period1M  Period = "1m"
	Period3M  Period = "3m"
	Period6M  Period = "6m"
	Period1Y  Period = "1y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// maxLookbackYears bounds the "max" window so requests stay finite.
const maxLookbackYears = 10

// DateRange is a concrete [From, To] window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Query renders the range as UTC calendar dates for the candles endpoint.
func (r DateRange) Query() (from, to string) {
	return util.ISODate(r.From), util.ISODate(r.To)
}

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period7D, Period1M, Period3M, Period6M, Period1Y, PeriodYTD, PeriodMax:
		return true
	default:
		return false
	}
}

// NormalizePeriod converts raw input to a valid period or def.
func NormalizePeriod(s string, def Period) Period {
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return def
}

// ResolvePeriod maps p to a window ending at now. Unknown periods give an empty
// window (From == To).
func ResolvePeriod(p Period, now time.Time) DateRange {
	from := now
	switch p {
	case Period7D:
		from = now.AddDate(0, 0, -7)
	case Period1M:
		from = now.AddDate(0, -1, 0)
	case Period3M:
		from = now.AddDate(0, -3, 0)
	case Period6M:
		from = now.AddDate(0, -6, 0)
	case Period1Y:
		from = now.AddDate(-1, 0, 0)
	case PeriodYTD:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case PeriodMax:
		from = now.AddDate(-maxLookbackYears, 0, 0)
	}
	return DateRange{From: from, To: now}
}
