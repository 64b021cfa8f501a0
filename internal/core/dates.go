package core

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a day-granularity timestamp that marshals as YYYY-MM-DD, matching
// the persisted entity shape.
type Date struct {
	time.Time
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Tolerate full RFC 3339 strings from older exports.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// ChitEndDate derives a group's end date: the start month plus totalMonths-1.
func ChitEndDate(start Date, totalMonths int) Date {
	t := start.AddDate(0, totalMonths-1, 0)
	return Date{Time: t}
}

// CurrentChitMonth is the 1-based installment month index for "now" relative
// to the group start, clamped at 1 before the chit begins.
func CurrentChitMonth(start Date, now time.Time) int {
	diff := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month()) + 1
	if diff < 1 {
		return 1
	}
	return diff
}

// InstallmentDueDate is the calendar date a given installment month falls on.
func InstallmentDueDate(start Date, month int) Date {
	return Date{Time: start.AddDate(0, month-1, 0)}
}

// ReminderDate is the day before an installment falls due.
func ReminderDate(start Date, month int) Date {
	return Date{Time: InstallmentDueDate(start, month).AddDate(0, 0, -1)}
}
