package core

import (
	"errors"
	"strings"
)

const (
	GroupActive GroupStatus = "Active"
	GroupClosed GroupStatus = "Closed"

	MemberActive   MemberStatus = "Active"
	MemberInactive MemberStatus = "Inactive"

	ModeCash   PaymentMode = "Cash"
	ModeUPI    PaymentMode = "UPI"
	ModeCheque PaymentMode = "Cheque"
	ModeOther  PaymentMode = "Other"
)

type (
	GroupStatus  string
	MemberStatus string
	PaymentMode  string

	// Group is a chit fund portfolio. It is the root entity; members and
	// payments reference it by id only, with no foreign-key enforcement.
	Group struct {
		ID                 string      `json:"id"`
		Name               string      `json:"name"`
		TotalValue         Money       `json:"totalValue"`
		TotalMonths        int         `json:"totalMonths"`
		MemberCount        int         `json:"memberCount"`
		RegularInstallment Money       `json:"regularInstallment"`
		PrizedInstallment  Money       `json:"prizedInstallment"`
		StartDate          Date        `json:"startDate"`
		EndDate            Date        `json:"endDate"`
		AllotmentDay       int         `json:"allotmentDay"`
		Status             GroupStatus `json:"status"`
		UPIID              string      `json:"upiId,omitempty"`
	}

	// Member is a subscriber. A member belongs to exactly one group.
	Member struct {
		ID              string       `json:"id"`
		GroupID         string       `json:"groupId"`
		Name            string       `json:"name"`
		Phone           string       `json:"phone"`
		Address         string       `json:"address"`
		Email           string       `json:"email"`
		IDProofType     string       `json:"idProofType"`
		IDProofNumber   string       `json:"idProofNumber"`
		NomineeName     string       `json:"nomineeName"`
		NomineeRelation string       `json:"nomineeRelation"`
		JoiningDate     Date         `json:"joiningDate"`
		IsPrized        bool         `json:"isPrized"`
		PrizedMonth     int          `json:"prizedMonth,omitempty"`
		Status          MemberStatus `json:"status"`
	}

	// Payment is a settlement record for one member and one installment
	// month. GroupID is denormalized from the member for query convenience.
	Payment struct {
		ID             string      `json:"id"`
		MemberID       string      `json:"memberId"`
		GroupID        string      `json:"groupId"`
		MonthNumber    int         `json:"monthNumber"`
		AmountPaid     Money       `json:"amountPaid"`
		ExpectedAmount Money       `json:"expectedAmount"`
		PaymentDate    Date        `json:"paymentDate"`
		PaymentMode    PaymentMode `json:"paymentMode"`
		ReceiptNumber  string      `json:"receiptNumber"`
		Remarks        string      `json:"remarks"`
		TransactionRef string      `json:"transactionRef,omitempty"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrAmountMismatch   = errors.New("amount does not match expected installment")
	ErrAlreadySettled   = errors.New("installment already settled")
	ErrCapacityExceeded = errors.New("group capacity exceeded")
	ErrAlreadyPrized    = errors.New("member already prized")
	ErrMemberNotFound   = errors.New("member not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrInvalidMonth     = errors.New("invalid month number")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPhone       = errors.New("empty phone")
	ErrEmptyGroup       = errors.New("no group assigned")
)

func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TotalMonths < 1 {
		return ErrInvalidMonth
	}
	if g.MemberCount < 1 {
		return errors.New("member capacity must be positive")
	}
	if err := g.RegularInstallment.Validate(); err != nil {
		return err
	}
	if err := g.PrizedInstallment.Validate(); err != nil {
		return err
	}
	if g.StartDate.IsZero() {
		return errors.New("start date cannot be zero")
	}
	return nil
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(m.Phone) == "" {
		return ErrEmptyPhone
	}
	if m.GroupID == "" {
		return ErrEmptyGroup
	}
	if m.IsPrized && m.PrizedMonth < 1 {
		return errors.New("prized member missing prized month")
	}
	return nil
}

func (p Payment) Validate() error {
	if p.MemberID == "" {
		return ErrMemberNotFound
	}
	if p.MonthNumber < 1 {
		return ErrInvalidMonth
	}
	return p.AmountPaid.Validate()
}

// FindGroup returns the group with the given id. The second return value is
// false when the id does not resolve, so callers can tell an orphaned
// reference apart from a zero Group.
func FindGroup(groups []Group, id string) (Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// FindMember returns the member with the given id, not-found distinct.
func FindMember(members []Member, id string) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// FindPayment returns the payment for a (member, month) pair, if any.
func FindPayment(payments []Payment, memberID string, month int) (Payment, bool) {
	for _, p := range payments {
		if p.MemberID == memberID && p.MonthNumber == month {
			return p, true
		}
	}
	return Payment{}, false
}

// FindGroupByName resolves a group by display name, trimmed and
// case-insensitive. Bulk import matches spreadsheet rows this way.
func FindGroupByName(groups []Group, name string) (Group, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, false
	}
	for _, g := range groups {
		if strings.EqualFold(strings.TrimSpace(g.Name), name) {
			return g, true
		}
	}
	return Group{}, false
}

// MembersOfGroup counts current enrollment for a group.
func MembersOfGroup(members []Member, groupID string) int {
	n := 0
	for _, m := range members {
		if m.GroupID == groupID {
			n++
		}
	}
	return n
}
