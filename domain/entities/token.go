package entities

import "time"

// Token is the single ledger instance of a deployment
type Token struct {
	TotalSupply int64      `db:"total_supply"`
	Treasury    *AccountID `db:"treasury"` // receives the supply at construction, if set
	CreatedAt   time.Time  `db:"created_at"`
}

// NewToken validates the construction parameters
func NewToken(totalSupply int64, treasury AccountID) (*Token, error) {
	if totalSupply <= 0 {
		return nil, ErrInvalidConfig
	}

	token := &Token{TotalSupply: totalSupply}
	if !treasury.IsZero() {
		token.Treasury = &treasury
	}
	return token, nil
}

// HasTreasury returns true if the supply was credited to an account
func (t *Token) HasTreasury() bool {
	return t.Treasury != nil && !t.Treasury.IsZero()
}

// Allowance is the amount a spender may move on an owner's behalf
type Allowance struct {
	Owner     AccountID `db:"owner"`
	Spender   AccountID `db:"spender"`
	Amount    int64     `db:"amount"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ValidateAmount rejects zero and negative amounts
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
