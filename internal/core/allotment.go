package core

import "fmt"

// AllotPrize marks a member as the winner of the given installment month and
// returns the updated member collection. The input slice is never mutated.
//
// The transition is one-way: an already-prized member cannot be allotted
// again, and the engine enforces this regardless of what the caller checked.
func AllotPrize(members []Member, memberID string, month int) ([]Member, error) {
	if month < 1 {
		return nil, ErrInvalidMonth
	}
	idx := -1
	for i, m := range members {
		if m.ID == memberID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	if members[idx].IsPrized {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPrized, members[idx].Name)
	}

	updated := make([]Member, len(members))
	copy(updated, members)
	updated[idx].IsPrized = true
	updated[idx].PrizedMonth = month
	return updated, nil
}
