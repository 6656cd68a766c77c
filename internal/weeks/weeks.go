// Package weeks implements the simplified week-coordinate calendar: every
// year has exactly 52 numbered weeks, overflow carries into adjacent years.
// All functions are pure; nothing here touches storage.
package weeks

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/julianstephens/weekplan/internal/constants"
	"github.com/julianstephens/weekplan/internal/errors"
)

// Week identifies a calendar week under the fixed-52-week model.
type Week struct {
	Year int
	Num  int
}

// Day identifies a single day inside a week, 1=Monday..7=Sunday.
type Day struct {
	Year int
	Week int
	Num  int
}

var (
	weekRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	dayRe  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-([1-7])$`)
)

// String renders the canonical zero-padded form, e.g. "2025-07".
func (w Week) String() string {
	return fmt.Sprintf(constants.WeekFormat, w.Year, w.Num)
}

// String renders the canonical day form, e.g. "2025-07-3".
func (d Day) String() string {
	return fmt.Sprintf(constants.DayFormat, d.Year, d.Week, d.Num)
}

// WeekOf computes the week coordinate containing t. The raw week number may
// reach 53 at the very end of a year; callers that need a storable coordinate
// normalize with AddWeeks(w, 0).
func WeekOf(t time.Time) Week {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	week := (days+int(jan1.Weekday())+1+6) / 7
	return Week{Year: t.Year(), Num: week}
}

// DayOf computes the day coordinate containing t, with Monday as day 1.
func DayOf(t time.Time) Day {
	w := WeekOf(t)
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	return Day{Year: w.Year, Week: w.Num, Num: day}
}

// CurrentWeek returns the week containing the local clock's now.
func CurrentWeek() Week {
	return WeekOf(time.Now())
}

// CurrentDay returns the day containing the local clock's now.
func CurrentDay() Day {
	return DayOf(time.Now())
}

// ParseWeek parses the "YYYY-WW" grammar. The week number must be in 1..52.
func ParseWeek(s string) (Week, error) {
	m := weekRe.FindStringSubmatch(s)
	if m == nil {
		return Week{}, errors.Validationf("invalid week format %q (expected YYYY-WW)", s)
	}
	year, _ := strconv.Atoi(m[1])
	num, _ := strconv.Atoi(m[2])
	if num < 1 || num > constants.WeeksPerYear {
		return Week{}, errors.Validationf("week number %d out of range 1..%d in %q", num, constants.WeeksPerYear, s)
	}
	return Week{Year: year, Num: num}, nil
}

// ParseDay parses the "YYYY-WW-D" grammar.
func ParseDay(s string) (Day, error) {
	m := dayRe.FindStringSubmatch(s)
	if m == nil {
		return Day{}, errors.Validationf("invalid day format %q (expected YYYY-WW-D)", s)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if week < 1 || week > constants.WeeksPerYear {
		return Day{}, errors.Validationf("week number %d out of range 1..%d in %q", week, constants.WeeksPerYear, s)
	}
	return Day{Year: year, Week: week, Num: day}, nil
}

// Normalize re-renders a week string to canonical zero-padded form. The
// numeric value is untouched; only formatting changes.
func Normalize(s string) (string, error) {
	w, err := ParseWeek(s)
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// AddWeeks adds n (possibly negative) weeks, carrying into the year using
// exactly 52 weeks per year.
func AddWeeks(w Week, n int) Week {
	num := w.Num + n
	year := w.Year
	for num > constants.WeeksPerYear {
		num -= constants.WeeksPerYear
		year++
	}
	for num < 1 {
		num += constants.WeeksPerYear
		year--
	}
	return Week{Year: year, Num: num}
}

// Compare orders two weeks lexicographically on (year, week): -1, 0 or 1.
func Compare(a, b Week) int {
	if a.Year != b.Year {
		if a.Year < b.Year {
			return -1
		}
		return 1
	}
	if a.Num != b.Num {
		if a.Num < b.Num {
			return -1
		}
		return 1
	}
	return 0
}

// Diff returns the signed number of weeks from a to b, so that
// AddWeeks(a, Diff(a, b)) == b. This is the index arithmetic goals use to
// locate their active week record.
func Diff(a, b Week) int {
	return (b.Year-a.Year)*constants.WeeksPerYear + (b.Num - a.Num)
}

// IsDayInWeek reports whether d falls inside w.
func IsDayInWeek(d Day, w Week) bool {
	return d.Year == w.Year && d.Week == w.Num
}

// FormatWeekDisplay renders the human label, e.g. "Week 51 of 2025".
func FormatWeekDisplay(w Week) string {
	return fmt.Sprintf("Week %d of %d", w.Num, w.Year)
}
