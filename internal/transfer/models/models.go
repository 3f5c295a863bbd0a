package models

import (
	"fmt"
	"strings"
	"time"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
)

// Status is the state of a purchase request. REJECTED and COMPLETED are terminal.
//
//	PENDING -> ACCEPTED | REJECTED
//	ACCEPTED -> PAYMENT_DONE -> COMPLETED
type Status uint8

const (
	StatusPending Status = iota
	StatusAccepted
	StatusRejected
	StatusPaymentDone
	StatusCompleted
)

var statusNames = [...]string{"PENDING", "ACCEPTED", "REJECTED", "PAYMENT_DONE", "COMPLETED"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseStatus(raw string) (Status, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for i, name := range statusNames {
		if name == raw {
			return Status(i), nil
		}
	}
	return 0, dErrors.New(dErrors.CodeValidation, "unknown request status: "+raw)
}

// PurchaseRequest tracks one buyer's attempt to acquire one land. Seller is
// the land owner when the request was created.
type PurchaseRequest struct {
	ID          id.RequestID `json:"id"`
	LandID      id.LandID    `json:"land_id"`
	Buyer       id.AccountID `json:"buyer"`
	Seller      id.AccountID `json:"seller"`
	Status      Status       `json:"status"`
	PaymentDone bool         `json:"payment_done"`
	Amount      int64        `json:"amount"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewPurchaseRequest(requestID id.RequestID, landID id.LandID, buyer, seller id.AccountID, now time.Time) *PurchaseRequest {
	return &PurchaseRequest{
		ID:        requestID,
		LandID:    landID,
		Buyer:     buyer,
		Seller:    seller,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *PurchaseRequest) CanProcess() error {
	if r.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvalidState, "request not pending")
	}
	return nil
}

func (r *PurchaseRequest) ApplyDecision(approve bool, now time.Time) {
	r.Status = StatusRejected
	if approve {
		r.Status = StatusAccepted
	}
	r.UpdatedAt = now
}

// CanPay checks a payment of amount against a land priced at price.
// Checks run in a fixed order so a repeated payment always reports
// "payment already done".
func (r *PurchaseRequest) CanPay(amount, price int64, forSale bool) error {
	if r.PaymentDone {
		return dErrors.New(dErrors.CodeInvalidState, "payment already done")
	}
	if r.Status != StatusAccepted {
		return dErrors.New(dErrors.CodeInvalidState, "request not accepted")
	}
	if amount != price {
		return dErrors.New(dErrors.CodeValidation, "incorrect payment amount")
	}
	if !forSale {
		return dErrors.New(dErrors.CodeInvalidState, "land not for sale")
	}
	return nil
}

func (r *PurchaseRequest) ApplyPayment(amount int64, now time.Time) {
	r.PaymentDone = true
	r.Amount = amount
	r.Status = StatusPaymentDone
	r.UpdatedAt = now
}

func (r *PurchaseRequest) Complete(now time.Time) {
	r.Status = StatusCompleted
	r.UpdatedAt = now
}

// Transaction is a completed purchase as it appears in both parties' history.
type Transaction struct {
	RequestID   id.RequestID `json:"request_id"`
	LandID      id.LandID    `json:"land_id"`
	Buyer       id.AccountID `json:"buyer"`
	Seller      id.AccountID `json:"seller"`
	Amount      int64        `json:"amount"`
	CompletedAt time.Time    `json:"completed_at"`
}

func (r *PurchaseRequest) Transaction() Transaction {
	return Transaction{
		RequestID:   r.ID,
		LandID:      r.LandID,
		Buyer:       r.Buyer,
		Seller:      r.Seller,
		Amount:      r.Amount,
		CompletedAt: r.UpdatedAt,
	}
}
