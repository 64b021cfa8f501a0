package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/importer"
	"github.com/madhuerpdirect-droid/gts-chits/internal/keyval/memory"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
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

func testMember() core.Member {
	return core.Member{
		ID:      "m1",
		GroupID: "g1",
		Name:    "Latha",
		Phone:   "9876543210",
		Status:  core.MemberActive,
	}
}

func seedRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	ctx := context.Background()
	reg, err := registry.Load(ctx, memory.New())
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.SetGroups(ctx, []core.Group{testGroup()}); err != nil {
		t.Fatal(err)
	}
	if err := reg.SetMembers(ctx, []core.Member{testMember()}); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestCollectionService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	reg := seedRegistry(t)
	svc := NewCollectionService(reg, nil)

	rec, err := svc.RecordPayment(ctx, "m1", core.PaymentInput{Month: 1})
	if err != nil {
		t.Fatalf("RecordPayment() error: %v", err)
	}
	if rec.AmountPaid.Rupees != 5000 {
		t.Errorf("AmountPaid = %d, want 5000 (expected installment default)", rec.AmountPaid.Rupees)
	}
	if !strings.HasPrefix(rec.ReceiptNumber, "GTS-") {
		t.Errorf("ReceiptNumber = %q", rec.ReceiptNumber)
	}

	// Persisted through the registry.
	if got := len(reg.Payments()); got != 1 {
		t.Errorf("Payments() len = %d, want 1", got)
	}

	// Settling the same month again is rejected.
	if _, err := svc.RecordPayment(ctx, "m1", core.PaymentInput{Month: 1}); !errors.Is(err, core.ErrAlreadySettled) {
		t.Errorf("second RecordPayment() error = %v, want ErrAlreadySettled", err)
	}
}

func TestCollectionService_RecordPayment_Mismatch(t *testing.T) {
	ctx := context.Background()
	reg := seedRegistry(t)
	svc := NewCollectionService(reg, nil)

	_, err := svc.RecordPayment(ctx, "m1", core.PaymentInput{Month: 1, Amount: core.Money{Rupees: 4000}})
	if !errors.Is(err, core.ErrAmountMismatch) {
		t.Fatalf("RecordPayment() error = %v, want ErrAmountMismatch", err)
	}
	if got := len(reg.Payments()); got != 0 {
		t.Errorf("Payments() len = %d after rejected entry, want 0", got)
	}
}

func TestCollectionService_UnknownMember(t *testing.T) {
	reg := seedRegistry(t)
	svc := NewCollectionService(reg, nil)

	_, err := svc.RecordPayment(context.Background(), "ghost", core.PaymentInput{Month: 1})
	if !errors.Is(err, core.ErrMemberNotFound) {
		t.Errorf("RecordPayment() error = %v, want ErrMemberNotFound", err)
	}
}

func TestAllotmentService(t *testing.T) {
	ctx := context.Background()
	reg := seedRegistry(t)
	svc := NewAllotmentService(reg, nil)

	if err := svc.AllotPrize(ctx, "m1", 5); err != nil {
		t.Fatalf("AllotPrize() error: %v", err)
	}
	m, _ := core.FindMember(reg.Members(), "m1")
	if !m.IsPrized || m.PrizedMonth != 5 {
		t.Errorf("member after allotment = %+v", m)
	}

	// One prize per membership.
	if err := svc.AllotPrize(ctx, "m1", 6); !errors.Is(err, core.ErrAlreadyPrized) {
		t.Errorf("second AllotPrize() error = %v, want ErrAlreadyPrized", err)
	}
}

func TestEnrollmentService_Enroll(t *testing.T) {
	ctx := context.Background()
	reg := seedRegistry(t)
	svc := NewEnrollmentService(reg)

	m, err := svc.Enroll(ctx, "g1", core.Member{Name: "Ravi", Phone: "+91 91234-56780"})
	if err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}
	if m.ID == "" {
		t.Error("admitted member has no id")
	}
	if m.Phone != "9123456780" {
		t.Errorf("Phone = %q, want cleaned digits", m.Phone)
	}
	if got := len(reg.Members()); got != 2 {
		t.Errorf("Members() len = %d, want 2", got)
	}

	if _, err := svc.Enroll(ctx, "missing", core.Member{Name: "X", Phone: "9000000000"}); !errors.Is(err, core.ErrGroupNotFound) {
		t.Errorf("Enroll(missing group) error = %v, want ErrGroupNotFound", err)
	}
}

type stubSource struct {
	rows []importer.Row
	err  error
}

func (s stubSource) Rows(context.Context) ([]importer.Row, error) {
	return s.rows, s.err
}

func TestEnrollmentService_BulkEnroll(t *testing.T) {
	ctx := context.Background()
	reg := seedRegistry(t)
	svc := NewEnrollmentService(reg)

	src := stubSource{rows: []importer.Row{
		{"Name": "Ravi", "Phone": "9123456780", "Group": "Diamond"},
		{"Name": "Mani", "Phone": "9012345678"},               // no group, falls back to default
		{"Name": "", "Phone": "9555555555"},                   // rejected: missing name
		{"Name": "Kala", "Phone": "9666666666", "Group": "?"}, // unknown group, falls back to default
	}}

	res, err := svc.BulkEnroll(ctx, src, "Diamond")
	if err != nil {
		t.Fatalf("BulkEnroll() error: %v", err)
	}
	if len(res.Accepted) != 3 {
		t.Errorf("Accepted = %d, want 3", len(res.Accepted))
	}
	if len(res.Rejected) != 1 {
		t.Errorf("Rejected = %d, want 1", len(res.Rejected))
	}

	// 1 seeded + 3 admitted.
	if got := len(reg.Members()); got != 4 {
		t.Errorf("Members() len = %d, want 4", got)
	}
}

func TestEnrollmentService_BulkEnroll_SourceError(t *testing.T) {
	reg := seedRegistry(t)
	svc := NewEnrollmentService(reg)

	_, err := svc.BulkEnroll(context.Background(), stubSource{err: errors.New("boom")}, "")
	if err == nil {
		t.Fatal("BulkEnroll() expected error")
	}
	if got := len(reg.Members()); got != 1 {
		t.Errorf("Members() len = %d after failed import, want 1", got)
	}
}
