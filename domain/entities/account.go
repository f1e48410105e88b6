package entities

import "strings"

// AccountID is an opaque account handle shared by the ledger, the lottery and
// the memo store. Validation of the identity itself belongs to the host.
type AccountID string

// String returns the raw account handle
func (a AccountID) String() string {
	return string(a)
}

// IsZero reports whether the handle is empty
func (a AccountID) IsZero() bool {
	return strings.TrimSpace(string(a)) == ""
}

// orderedPair returns a and b sorted so that row locks are always taken in the
// same order.
func orderedPair(a, b AccountID) (AccountID, AccountID) {
	if b < a {
		return b, a
	}
	return a, b
}

// LockOrder returns the accounts in the order their rows must be locked
func LockOrder(a, b AccountID) []AccountID {
	first, second := orderedPair(a, b)
	if first == second {
		return []AccountID{first}
	}
	return []AccountID{first, second}
}
