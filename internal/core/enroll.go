package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Candidate is one bulk-import row after column resolution.
type Candidate struct {
	Name      string
	Phone     string
	GroupName string
	Address   string
	Email     string
}

// Rejection explains why a bulk-import row was not admitted. The default
// reporting surface is an aggregate count; the itemized list exists for
// verbose output and tests.
type Rejection struct {
	Row    int // 1-based position within the batch
	Name   string
	Reason string
}

// CanEnroll reports whether a group has a free subscriber slot.
func CanEnroll(g Group, currentCount int) bool {
	return currentCount < g.MemberCount
}

// Enroll adds a single member to the collection after validating the member
// and the group's capacity. The input slice is never mutated.
func Enroll(members []Member, g Group, m Member) ([]Member, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	count := MembersOfGroup(members, g.ID)
	if !CanEnroll(g, count) {
		return nil, fmt.Errorf("%w: %s is at %d/%d", ErrCapacityExceeded, g.Name, count, g.MemberCount)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = MemberActive
	}
	m.Phone = CleanPhone(m.Phone)

	updated := make([]Member, len(members), len(members)+1)
	copy(updated, members)
	return append(updated, m), nil
}

// AdmitCandidates runs greedy, input-order-preserving admission control over
// a batch of candidate rows.
//
// Per-group counters are seeded from current enrollment and incremented as
// rows are accepted, so no group exceeds its declared capacity even when many
// rows in the same batch target it. Rows are taken strictly first come first
// served; there is no reordering or look-ahead. A row that names no
// resolvable group falls back to defaultGroup; if that does not resolve
// either, or the target is full, or a required field is missing, the row is
// rejected and the batch continues.
func AdmitCandidates(groups []Group, members []Member, candidates []Candidate, defaultGroup string) ([]Member, []Rejection) {
	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.ID] = MembersOfGroup(members, g.ID)
	}

	var accepted []Member
	var rejected []Rejection
	for i, c := range candidates {
		row := i + 1
		if c.Name == "" {
			rejected = append(rejected, Rejection{Row: row, Reason: "missing name"})
			continue
		}
		phone := CleanPhone(c.Phone)
		if phone == "" {
			rejected = append(rejected, Rejection{Row: row, Name: c.Name, Reason: "missing phone"})
			continue
		}

		g, ok := FindGroupByName(groups, c.GroupName)
		if !ok {
			g, ok = FindGroupByName(groups, defaultGroup)
		}
		if !ok {
			rejected = append(rejected, Rejection{Row: row, Name: c.Name, Reason: "no resolvable group"})
			continue
		}
		if counts[g.ID] >= g.MemberCount {
			rejected = append(rejected, Rejection{Row: row, Name: c.Name, Reason: fmt.Sprintf("group %s at capacity", g.Name)})
			continue
		}

		counts[g.ID]++
		accepted = append(accepted, Member{
			ID:          uuid.NewString(),
			GroupID:     g.ID,
			Name:        c.Name,
			Phone:       phone,
			Address:     c.Address,
			Email:       c.Email,
			JoiningDate: Today(),
			Status:      MemberActive,
		})
	}
	return accepted, rejected
}
