package core

// MonthAmount is one entry of a forward installment forecast.
type MonthAmount struct {
	Month  int
	Amount Money
}

// ExpectedInstallment computes what a member owes for a target month.
//
// A member who won in month k still pays the regular installment for month k;
// the prized rate applies strictly from month k+1 onwards. Deterministic and
// side-effect free so reports can re-derive historical expectations.
func ExpectedInstallment(g Group, m Member, targetMonth int) Money {
	if m.IsPrized && m.PrizedMonth > 0 && targetMonth > m.PrizedMonth {
		return g.PrizedInstallment
	}
	return g.RegularInstallment
}

// Forecast returns the expected installments for the n months following
// fromMonth, stopping at the group's total duration. It retains no state
// between calls.
func Forecast(g Group, m Member, fromMonth, n int) []MonthAmount {
	var out []MonthAmount
	for i := 1; i <= n; i++ {
		month := fromMonth + i
		if month > g.TotalMonths {
			break
		}
		out = append(out, MonthAmount{Month: month, Amount: ExpectedInstallment(g, m, month)})
	}
	return out
}
