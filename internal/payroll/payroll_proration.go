package payroll

import (
	"time"

	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

// WorkingDaysRatio is the share of the pay month's weekdays covered by
// [start, end], rounded to 2 places. The pay month is the calendar month of
// end; weekdays before that month are not counted, the divisor is always the
// whole month. A range covering no weekday of the pay month (weekend only,
// or ending before any weekday) yields 0 rather than an error, so callers
// must not assume a positive ratio.
func WorkingDaysRatio(start, end time.Time) (decimal.Decimal, error) {
	if start.IsZero() || end.IsZero() {
		return decimal.Zero, payrollerrors.ErrInvalidDate.WithReason("start_date and end_date are required")
	}

	start = civilDate(start)
	end = civilDate(end)
	if start.After(end) {
		return decimal.Zero, payrollerrors.ErrInvalidDateRange.WithReason(
			"start_date %s is after end_date %s",
			start.Format(dateLayout), end.Format(dateLayout),
		)
	}

	monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	from := start
	if from.Before(monthStart) {
		from = monthStart
	}

	worked := countWeekdays(from, end)
	total := countWeekdays(monthStart, monthEnd)

	return decimal.NewFromInt(int64(worked)).DivRound(decimal.NewFromInt(int64(total)), 2), nil
}

// countWeekdays counts Monday–Friday in the inclusive range.
func countWeekdays(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// civilDate drops the clock and zone so calendar arithmetic is exact.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDate.WithReason("got %q", v)
	}
	return t, nil
}
