package entities

import "time"

// EntryKind represents the kind of ledger mutation recorded
type EntryKind string

const (
	EntryKindMint         EntryKind = "mint"
	EntryKindTransfer     EntryKind = "transfer"
	EntryKindTransferFrom EntryKind = "transfer_from"
	EntryKindApproval     EntryKind = "approval"
)

// LedgerEntry is an append-only record of a successful ledger mutation.
// For approvals From is the owner, To is the spender and Amount is the new
// allowance.
type LedgerEntry struct {
	ID        int64      `db:"id"`
	Kind      EntryKind  `db:"kind"`
	From      *AccountID `db:"from_account"` // nil for mint
	To        AccountID  `db:"to_account"`
	Spender   *AccountID `db:"spender"` // set for transfer_from
	Amount    int64      `db:"amount"`
	CreatedAt time.Time  `db:"created_at"`
}

// Involves returns true if the account appears on either side of the entry
func (e *LedgerEntry) Involves(account AccountID) bool {
	if e.To == account {
		return true
	}
	if e.From != nil && *e.From == account {
		return true
	}
	return e.Spender != nil && *e.Spender == account
}

func accountPtr(a AccountID) *AccountID {
	return &a
}

// NewTransferEntry records a transfer signed by the owner
func NewTransferEntry(from, to AccountID, amount int64) *LedgerEntry {
	return &LedgerEntry{
		Kind:   EntryKindTransfer,
		From:   accountPtr(from),
		To:     to,
		Amount: amount,
	}
}

// NewTransferFromEntry records a transfer made by a spender
func NewTransferFromEntry(spender, owner, to AccountID, amount int64) *LedgerEntry {
	return &LedgerEntry{
		Kind:    EntryKindTransferFrom,
		From:    accountPtr(owner),
		To:      to,
		Spender: accountPtr(spender),
		Amount:  amount,
	}
}

// NewApprovalEntry records an allowance being set
func NewApprovalEntry(owner, spender AccountID, amount int64) *LedgerEntry {
	return &LedgerEntry{
		Kind:   EntryKindApproval,
		From:   accountPtr(owner),
		To:     spender,
		Amount: amount,
	}
}

// NewMintEntry records the one-time supply credit to the treasury
func NewMintEntry(treasury AccountID, amount int64) *LedgerEntry {
	return &LedgerEntry{
		Kind:   EntryKindMint,
		To:     treasury,
		Amount: amount,
	}
}
