package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentInput carries the operator-entered fields of a collection entry.
// A zero Amount means "collect the expected installment".
type PaymentInput struct {
	Month          int
	Amount         Money
	Mode           PaymentMode
	Date           Date
	Remarks        string
	TransactionRef string
}

// RecordPayment settles one installment for a member and returns the updated
// payment collection. The input slice is never mutated.
//
// The settlement policy is strict: the resolved amount must equal the
// expected installment exactly, partial and over-payments are rejected. A
// month that is already fully settled cannot be settled again. Re-saving an
// unsettled (member, month) pair updates the existing record in place,
// keeping its id and receipt number, so the collection holds at most one
// record per (member, month).
func RecordPayment(payments []Payment, g Group, m Member, in PaymentInput) ([]Payment, Payment, error) {
	if in.Month < 1 {
		return nil, Payment{}, ErrInvalidMonth
	}

	expected := ExpectedInstallment(g, m, in.Month)

	existing, exists := FindPayment(payments, m.ID, in.Month)
	if exists && existing.AmountPaid.Rupees >= expected.Rupees {
		return nil, Payment{}, ErrAlreadySettled
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = expected
	}
	if amount.Rupees <= 0 {
		return nil, Payment{}, ErrInvalidAmount
	}
	if amount.Rupees != expected.Rupees {
		return nil, Payment{}, fmt.Errorf("%w: expected %s", ErrAmountMismatch, expected)
	}

	mode := in.Mode
	if mode == "" {
		mode = ModeCash
	}
	date := in.Date
	if date.IsZero() {
		date = Today()
	}

	record := Payment{
		ID:             existing.ID,
		MemberID:       m.ID,
		GroupID:        m.GroupID,
		MonthNumber:    in.Month,
		AmountPaid:     amount,
		ExpectedAmount: expected,
		PaymentDate:    date,
		PaymentMode:    mode,
		ReceiptNumber:  existing.ReceiptNumber,
		Remarks:        in.Remarks,
		TransactionRef: in.TransactionRef,
	}
	if !exists {
		record.ID = uuid.NewString()
		record.ReceiptNumber = newReceiptNumber(time.Now())
	}

	updated := make([]Payment, 0, len(payments)+1)
	replaced := false
	for _, p := range payments {
		if exists && p.ID == existing.ID {
			updated = append(updated, record)
			replaced = true
			continue
		}
		updated = append(updated, p)
	}
	if !replaced {
		updated = append(updated, record)
	}
	return updated, record, nil
}

// newReceiptNumber derives a receipt number from the current timestamp,
// e.g. GTS-483920.
func newReceiptNumber(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "GTS-" + ms
}
