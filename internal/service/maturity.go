package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

const dateLayout = "2006-01-02"

// maturityDate derives the maturity date for a term starting at
// issueDate (YYYY-MM-DD).
//
// Month terms (including fractional ones like "1.5m") add
// round(months*30) calendar days; this is a deliberate approximation,
// not a true month increment. Year terms advance the year component
// with the month and day fixed; an issue date of Feb-29 landing on a
// non-leap year clamps to Feb-28. Any other suffix defaults to one
// year.
func maturityDate(issueDate string, term domain.Term) (string, error) {
	issue, err := time.Parse(dateLayout, issueDate)
	if err != nil {
		return "", fmt.Errorf("parse issue date %q: %w", issueDate, err)
	}

	t := string(term)
	switch {
	case strings.HasSuffix(t, "m"):
		months, err := strconv.ParseFloat(strings.TrimSuffix(t, "m"), 64)
		if err != nil {
			return addYears(issue, 1), nil
		}
		days := int(math.Round(months * 30))
		return issue.AddDate(0, 0, days).Format(dateLayout), nil

	case strings.HasSuffix(t, "Y"):
		years, err := strconv.Atoi(strings.TrimSuffix(t, "Y"))
		if err != nil {
			return addYears(issue, 1), nil
		}
		return addYears(issue, years), nil

	default:
		return addYears(issue, 1), nil
	}
}

// addYears advances the year component keeping month and day fixed,
// clamping Feb-29 to Feb-28 on non-leap target years. time.AddDate is
// avoided here because it normalizes Feb-29 into Mar-1.
func addYears(t time.Time, years int) string {
	y, m, d := t.Date()
	y += years
	if m == time.February && d == 29 && !isLeapYear(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
