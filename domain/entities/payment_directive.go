package entities

import (
	"github.com/google/uuid"
)

// PaymentReason describes which operation produced a payment directive
type PaymentReason string

const (
	PaymentReasonTransfer      PaymentReason = "transfer"
	PaymentReasonTransferFrom  PaymentReason = "transfer_from"
	PaymentReasonLotteryPayout PaymentReason = "lottery_payout"
)

// PaymentDirective is a request for the host to move value to an external
// account. Operations return it instead of performing the payment, and the
// host executes it only after the state change that produced it has been
// committed.
type PaymentDirective struct {
	ID        uuid.UUID     `json:"id"`
	Recipient AccountID     `json:"recipient"`
	Amount    int64         `json:"amount"`
	Reason    PaymentReason `json:"reason"`
}

// NewPaymentDirective creates a directive with a fresh idempotency ID
func NewPaymentDirective(recipient AccountID, amount int64, reason PaymentReason) *PaymentDirective {
	return &PaymentDirective{
		ID:        uuid.New(),
		Recipient: recipient,
		Amount:    amount,
		Reason:    reason,
	}
}

// IsZero reports whether executing the directive would move nothing
func (d *PaymentDirective) IsZero() bool {
	return d == nil || d.Amount == 0
}
