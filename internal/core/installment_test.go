package core

import "testing"

func testGroup() Group {
	return Group{
		ID:                 "g1",
		Name:               "Diamond 20",
		TotalValue:         Money{Rupees: 100000},
		TotalMonths:        20,
		MemberCount:        20,
		RegularInstallment: Money{Rupees: 5000},
		PrizedInstallment:  Money{Rupees: 6000},
		StartDate:          NewDate(2025, 1, 1),
		Status:             GroupActive,
	}
}

func TestExpectedInstallment(t *testing.T) {
	g := testGroup()

	tests := []struct {
		name   string
		member Member
		month  int
		want   int64
	}{
		{"unprized pays regular month 1", Member{ID: "m1"}, 1, 5000},
		{"unprized pays regular month 20", Member{ID: "m1"}, 20, 5000},
		{"prized pays regular before win", Member{ID: "m1", IsPrized: true, PrizedMonth: 5}, 4, 5000},
		{"winning month still regular", Member{ID: "m1", IsPrized: true, PrizedMonth: 5}, 5, 5000},
		{"month after win pays prized", Member{ID: "m1", IsPrized: true, PrizedMonth: 5}, 6, 6000},
		{"every later month pays prized", Member{ID: "m1", IsPrized: true, PrizedMonth: 5}, 20, 6000},
		{"prized flag without month pays regular", Member{ID: "m1", IsPrized: true}, 10, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedInstallment(g, tt.member, tt.month)
			if got.Rupees != tt.want {
				t.Errorf("ExpectedInstallment() = %d, want %d", got.Rupees, tt.want)
			}
		})
	}
}

func TestForecast(t *testing.T) {
	g := testGroup()
	m := Member{ID: "m1", IsPrized: true, PrizedMonth: 5}

	got := Forecast(g, m, 4, 3)
	want := []MonthAmount{
		{Month: 5, Amount: Money{Rupees: 5000}},
		{Month: 6, Amount: Money{Rupees: 6000}},
		{Month: 7, Amount: Money{Rupees: 6000}},
	}
	if len(got) != len(want) {
		t.Fatalf("Forecast() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestForecastStopsAtTotalMonths(t *testing.T) {
	g := testGroup()
	m := Member{ID: "m1"}

	got := Forecast(g, m, 19, 3)
	if len(got) != 1 || got[0].Month != 20 {
		t.Fatalf("Forecast() past group end = %+v, want single month 20 entry", got)
	}
	if got := Forecast(g, m, 20, 3); got != nil {
		t.Fatalf("Forecast() at group end = %+v, want nil", got)
	}
}

func TestForecastRestartable(t *testing.T) {
	g := testGroup()
	m := Member{ID: "m1"}

	first := Forecast(g, m, 2, 3)
	second := Forecast(g, m, 2, 3)
	if len(first) != len(second) {
		t.Fatalf("repeated Forecast() calls disagree: %d vs %d entries", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
