package handler

import (
	"strings"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
)

type CreateRequest struct {
	LandID id.LandID `json:"land_id"`
}

func (r *CreateRequest) Validate() error {
	if r.LandID == 0 {
		return dErrors.New(dErrors.CodeValidation, "land_id is required")
	}
	return nil
}

type DecisionRequest struct {
	Approve *bool `json:"approve"`
}

func (r *DecisionRequest) Validate() error {
	if r.Approve == nil {
		return dErrors.New(dErrors.CodeValidation, "approve is required")
	}
	return nil
}

// BatchDecisionRequest pairs request_ids[i] with decisions[i]. The length
// check is left to the service so both transports report it the same way.
type BatchDecisionRequest struct {
	RequestIDs []id.RequestID `json:"request_ids"`
	Decisions  []bool         `json:"decisions"`
}

func (r *BatchDecisionRequest) Validate() error {
	for _, requestID := range r.RequestIDs {
		if requestID == 0 {
			return dErrors.New(dErrors.CodeValidation, "invalid request id")
		}
	}
	return nil
}

type PaymentRequest struct {
	Amount int64 `json:"amount"`
}

func (r *PaymentRequest) Validate() error {
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	return nil
}

type FinalizeRequest struct {
	DocumentHash string `json:"document_hash"`
}

func (r *FinalizeRequest) Normalize() {
	r.DocumentHash = strings.TrimSpace(r.DocumentHash)
}

func (r *FinalizeRequest) Validate() error {
	if r.DocumentHash == "" {
		return dErrors.New(dErrors.CodeValidation, "document_hash is required")
	}
	return nil
}
