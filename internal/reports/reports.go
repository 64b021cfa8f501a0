// Package reports builds the read-side aggregates: dues per month,
// per-member statements, the consolidated master audit and the
// dashboard summary.
package reports

import (
	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

// UnassignedGroup labels members whose group record no longer exists.
const UnassignedGroup = "Unassigned"

// DueEntry is one unpaid member for a month.
type DueEntry struct {
	Member   core.Member
	Expected core.Money
}

// DueReport lists members with no payment record for the month.
type DueReport struct {
	Group       core.Group
	Month       int
	Entries     []DueEntry
	Outstanding core.Money
}

// Due reports the members of the group with no payment recorded for the
// month, each with the installment they owe.
func Due(g core.Group, members []core.Member, payments []core.Payment, month int) DueReport {
	rep := DueReport{Group: g, Month: month}
	for _, m := range members {
		if m.GroupID != g.ID {
			continue
		}
		if _, ok := core.FindPayment(payments, m.ID, month); ok {
			continue
		}
		expected := core.ExpectedInstallment(g, m, month)
		rep.Entries = append(rep.Entries, DueEntry{Member: m, Expected: expected})
		rep.Outstanding.Rupees += expected.Rupees
	}
	return rep
}

// Statement is the per-member account statement.
type Statement struct {
	Member    core.Member
	GroupName string
	Receipts  []core.Payment
	Total     core.Money
}

// Individual builds the statement of account for one member. A member
// whose group was deleted reports under "Unassigned".
func Individual(m core.Member, groups []core.Group, payments []core.Payment) Statement {
	st := Statement{Member: m, GroupName: UnassignedGroup}
	if g, ok := core.FindGroup(groups, m.GroupID); ok {
		st.GroupName = g.Name
	}
	for _, p := range payments {
		if p.MemberID != m.ID {
			continue
		}
		st.Receipts = append(st.Receipts, p)
		st.Total.Rupees += p.AmountPaid.Rupees
	}
	return st
}

// GroupTotal is one row of the consolidated report.
type GroupTotal struct {
	Group       core.Group
	Subscribers int
	Collected   core.Money
}

// ConsolidatedReport covers every group plus the overall collection.
type ConsolidatedReport struct {
	Rows             []GroupTotal
	MasterCollection core.Money
}

// Consolidated totals collections per group and overall.
func Consolidated(groups []core.Group, members []core.Member, payments []core.Payment) ConsolidatedReport {
	var rep ConsolidatedReport
	for _, g := range groups {
		row := GroupTotal{Group: g, Subscribers: core.MembersOfGroup(members, g.ID)}
		for _, p := range payments {
			if p.GroupID == g.ID {
				row.Collected.Rupees += p.AmountPaid.Rupees
			}
		}
		rep.Rows = append(rep.Rows, row)
	}
	for _, p := range payments {
		rep.MasterCollection.Rupees += p.AmountPaid.Rupees
	}
	return rep
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalCollections core.Money
	ActiveGroups     int
	TotalMembers     int
}

// Summarize computes the dashboard totals.
func Summarize(groups []core.Group, members []core.Member, payments []core.Payment) Summary {
	var s Summary
	for _, g := range groups {
		if g.Status == core.GroupActive {
			s.ActiveGroups++
		}
	}
	s.TotalMembers = len(members)
	for _, p := range payments {
		s.TotalCollections.Rupees += p.AmountPaid.Rupees
	}
	return s
}
