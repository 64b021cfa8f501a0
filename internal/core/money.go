// Package core defines the chit fund entities and the pure business rules
// that operate on them: installment calculation, payment settlement, prize
// allotment and enrollment admission.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in whole rupees. The system never deals in sub-unit
// precision; fractional inputs are rounded half-up on parse.
type Money struct {
	Rupees int64
}

func (m Money) Validate() error {
	if m.Rupees <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) IsZero() bool {
	return m.Rupees == 0
}

// String renders the amount with the rupee sign and Indian digit grouping,
// e.g. ₹1,00,000.
func (m Money) String() string {
	neg := m.Rupees < 0
	digits := strconv.FormatInt(m.Rupees, 10)
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	// Indian grouping: last group of three, then groups of two.
	n := len(digits)
	if n <= 3 {
		b.WriteString(digits)
		return b.String()
	}
	head := digits[:n-3]
	rem := len(head) % 2
	if rem == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		if len(head) > 0 {
			b.WriteByte(',')
		}
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		b.WriteByte(',')
	}
	b.WriteString(digits[n-3:])
	return b.String()
}

// MarshalJSON writes the amount as a bare number so the persisted shape
// matches the original backup format.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Rupees, 10)), nil
}

// UnmarshalJSON accepts integers and fractional numbers, rounding half-up.
func (m *Money) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	m.Rupees = int64(math.Floor(f + 0.5))
	return nil
}

// ParseRupees converts operator input to Money. An empty string is a valid
// zero amount (callers treat it as "use the expected installment").
func ParseRupees(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, nil
	}
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Rupees: int64(math.Floor(f + 0.5))}, nil
}
