package entities

import (
	"fmt"
	"time"
)

// MaxMemoLength bounds the data stored per account
const MaxMemoLength = 1024

// Memo is a small piece of data kept per account
type Memo struct {
	Account   AccountID `db:"account"`
	Data      string    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ValidateMemo checks the data that is about to be stored
func ValidateMemo(data string) error {
	if data == "" {
		return fmt.Errorf("%w: data is empty", ErrInvalidMemo)
	}
	if len(data) > MaxMemoLength {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidMemo, len(data), MaxMemoLength)
	}
	return nil
}
