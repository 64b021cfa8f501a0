package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMoneyString(t *testing.T) {
	cases := []struct {
		rupees int64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{5000, "₹5,000"},
		{100000, "₹1,00,000"},
		{12345678, "₹1,23,45,678"},
	}
	for _, tc := range cases {
		if got := (Money{Rupees: tc.rupees}).String(); got != tc.want {
			t.Errorf("Money(%d).String() = %q, want %q", tc.rupees, got, tc.want)
		}
	}
}

func TestMoneyJSONShape(t *testing.T) {
	// Amounts persist as bare numbers so original backups stay loadable.
	b, err := json.Marshal(Money{Rupees: 5000})
	if err != nil || string(b) != "5000" {
		t.Fatalf("Marshal = %s, %v; want 5000", b, err)
	}
	var m Money
	if err := json.Unmarshal([]byte("6000"), &m); err != nil || m.Rupees != 6000 {
		t.Fatalf("Unmarshal(6000) = %+v, %v", m, err)
	}
	if err := json.Unmarshal([]byte("4999.5"), &m); err != nil || m.Rupees != 5000 {
		t.Fatalf("Unmarshal(4999.5) = %+v, %v; want half-up 5000", m, err)
	}
}

func TestParseRupees(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"", 0, true}, // empty means "use expected"
		{"5000", 5000, true},
		{"₹5,000", 5000, true},
		{" 6000 ", 6000, true},
		{"-10", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseRupees(tc.in)
		if tc.ok && (err != nil || got.Rupees != tc.want) {
			t.Errorf("ParseRupees(%q) = %d, %v; want %d", tc.in, got.Rupees, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseRupees(%q) expected error", tc.in)
		}
	}
}

func TestDateJSONShape(t *testing.T) {
	d := NewDate(2025, 3, 9)
	b, err := json.Marshal(d)
	if err != nil || string(b) != `"2025-03-09"` {
		t.Fatalf("Marshal = %s, %v", b, err)
	}
	var back Date
	if err := json.Unmarshal([]byte(`"2025-03-09T00:00:00.000Z"`), &back); err != nil {
		t.Fatalf("Unmarshal RFC 3339 form: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestChitEndDate(t *testing.T) {
	got := ChitEndDate(NewDate(2025, 1, 15), 20)
	if got.Year() != 2026 || int(got.Month()) != 8 || got.Day() != 15 {
		t.Errorf("ChitEndDate = %v, want 2026-08-15", got)
	}
}

func TestCurrentChitMonth(t *testing.T) {
	start := NewDate(2025, 1, 1)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), 1}, // clamped before start
	}
	for _, tc := range cases {
		if got := CurrentChitMonth(start, tc.now); got != tc.want {
			t.Errorf("CurrentChitMonth(%v) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestCleanPhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"9876543210", "9876543210"},
		{"+91 98765 43210", "9876543210"},
		{"098-7654-3210", "0987654321"},
		{"call me", ""},
	}
	for _, tc := range cases {
		if got := CleanPhone(tc.in); got != tc.want {
			t.Errorf("CleanPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGroupValidate(t *testing.T) {
	if err := testGroup().Validate(); err != nil {
		t.Fatalf("valid group rejected: %v", err)
	}
	bad := testGroup()
	bad.RegularInstallment = Money{}
	if err := bad.Validate(); err == nil {
		t.Fatal("zero installment accepted")
	}
}

func TestFindGroupOrphanDistinct(t *testing.T) {
	groups := []Group{testGroup()}
	if _, ok := FindGroup(groups, "deleted-id"); ok {
		t.Fatal("lookup of missing group reported found")
	}
	if g, ok := FindGroup(groups, "g1"); !ok || g.Name != "Diamond 20" {
		t.Fatalf("lookup of existing group = %+v, %v", g, ok)
	}
}
