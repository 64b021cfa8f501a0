package reports

import (
	"strings"
	"testing"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

func testGroup() core.Group {
	return core.Group{
		ID:                 "g1",
		Name:               "Diamond",
		TotalValue:         core.Money{Rupees: 100000},
		TotalMonths:        20,
		MemberCount:        20,
		RegularInstallment: core.Money{Rupees: 5000},
		PrizedInstallment:  core.Money{Rupees: 6000},
		StartDate:          core.NewDate(2025, 1, 5),
		Status:             core.GroupActive,
	}
}

func testData() ([]core.Group, []core.Member, []core.Payment) {
	g := testGroup()
	members := []core.Member{
		{ID: "m1", GroupID: "g1", Name: "Latha", Phone: "9876543210", Status: core.MemberActive},
		{ID: "m2", GroupID: "g1", Name: "Ravi", Phone: "9123456780", Status: core.MemberActive,
			IsPrized: true, PrizedMonth: 2},
		{ID: "m3", GroupID: "gone", Name: "Mani", Phone: "9012345678", Status: core.MemberActive},
	}
	payments := []core.Payment{
		{ID: "p1", MemberID: "m1", GroupID: "g1", MonthNumber: 3,
			AmountPaid: core.Money{Rupees: 5000}, ReceiptNumber: "GTS-000111"},
		{ID: "p2", MemberID: "m2", GroupID: "g1", MonthNumber: 2,
			AmountPaid: core.Money{Rupees: 5000}, ReceiptNumber: "GTS-000112"},
	}
	return []core.Group{g}, members, payments
}

func TestDue(t *testing.T) {
	groups, members, payments := testData()

	rep := Due(groups[0], members, payments, 3)

	// m1 paid month 3; m2 has not. m3 is in another (deleted) group.
	if len(rep.Entries) != 1 {
		t.Fatalf("Due() entries = %d, want 1", len(rep.Entries))
	}
	e := rep.Entries[0]
	if e.Member.ID != "m2" {
		t.Errorf("due member = %s, want m2", e.Member.ID)
	}
	// Prized in month 2, so month 3 bills at the prized rate.
	if e.Expected.Rupees != 6000 {
		t.Errorf("expected = %d, want 6000", e.Expected.Rupees)
	}
	if rep.Outstanding.Rupees != 6000 {
		t.Errorf("outstanding = %d, want 6000", rep.Outstanding.Rupees)
	}
}

func TestDue_AllPaid(t *testing.T) {
	groups, members, payments := testData()

	rep := Due(groups[0], members[:1], payments, 3)
	if len(rep.Entries) != 0 || rep.Outstanding.Rupees != 0 {
		t.Errorf("Due() = %+v, want empty", rep)
	}
}

func TestIndividual(t *testing.T) {
	groups, members, payments := testData()

	st := Individual(members[0], groups, payments)
	if st.GroupName != "Diamond" {
		t.Errorf("GroupName = %q, want Diamond", st.GroupName)
	}
	if len(st.Receipts) != 1 || st.Total.Rupees != 5000 {
		t.Errorf("statement = %+v", st)
	}
}

func TestIndividual_OrphanReportsUnassigned(t *testing.T) {
	groups, members, payments := testData()

	st := Individual(members[2], groups, payments)
	if st.GroupName != UnassignedGroup {
		t.Errorf("GroupName = %q, want %q", st.GroupName, UnassignedGroup)
	}
}

func TestConsolidated(t *testing.T) {
	groups, members, payments := testData()

	rep := Consolidated(groups, members, payments)
	if len(rep.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rep.Rows))
	}
	row := rep.Rows[0]
	if row.Subscribers != 2 {
		t.Errorf("subscribers = %d, want 2", row.Subscribers)
	}
	if row.Collected.Rupees != 10000 {
		t.Errorf("collected = %d, want 10000", row.Collected.Rupees)
	}
	if rep.MasterCollection.Rupees != 10000 {
		t.Errorf("master = %d, want 10000", rep.MasterCollection.Rupees)
	}
}

func TestSummarize(t *testing.T) {
	groups, members, payments := testData()
	closed := testGroup()
	closed.ID = "g2"
	closed.Status = core.GroupClosed
	groups = append(groups, closed)

	s := Summarize(groups, members, payments)
	if s.ActiveGroups != 1 {
		t.Errorf("ActiveGroups = %d, want 1", s.ActiveGroups)
	}
	if s.TotalMembers != 3 {
		t.Errorf("TotalMembers = %d, want 3", s.TotalMembers)
	}
	if s.TotalCollections.Rupees != 10000 {
		t.Errorf("TotalCollections = %d, want 10000", s.TotalCollections.Rupees)
	}
}

func TestWriteCSV_QuotingAndLineEndings(t *testing.T) {
	var b strings.Builder
	err := WriteCSV(&b,
		[]string{"Name", "Note"},
		[][]string{
			{"Latha", `said "hello"`},
			{"Ravi", "plain"},
		})
	if err != nil {
		t.Fatal(err)
	}

	want := "Name,Note\r\n" +
		`"Latha","said ""hello"""` + "\r\n" +
		`"Ravi","plain"`
	if b.String() != want {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestDueCSV(t *testing.T) {
	groups, members, payments := testData()
	rep := Due(groups[0], members, payments, 3)

	var b strings.Builder
	if err := DueCSV(&b, rep); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "Subscriber,Contact,Month,Outstanding") {
		t.Errorf("DueCSV() header = %q", got)
	}
	if !strings.Contains(got, `"Ravi","9123456780","3","6000"`) {
		t.Errorf("DueCSV() row missing:\n%s", got)
	}
}
