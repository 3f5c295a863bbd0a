package handler

import (
	"strings"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	strutil "landregistry/pkg/platform/strings"
)

// RegisterUserRequest is the body of POST /identity/users. Field rules are
// enforced by the service; only presence is checked here.
type RegisterUserRequest struct {
	Name         string `json:"name"`
	Age          uint32 `json:"age"`
	City         string `json:"city"`
	NationalID   string `json:"national_id"`
	TaxID        string `json:"tax_id"`
	DocumentHash string `json:"document_hash"`
	Email        string `json:"email"`
}

func (r *RegisterUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

func (r *RegisterUserRequest) toModel() models.RegisterUserRequest {
	return models.RegisterUserRequest{
		Name:         r.Name,
		Age:          r.Age,
		City:         r.City,
		NationalID:   r.NationalID,
		TaxID:        r.TaxID,
		DocumentHash: r.DocumentHash,
		Email:        r.Email,
	}
}

type BatchVerifyRequest struct {
	Accounts []string `json:"accounts"`

	parsed []id.AccountID
}

// Normalize drops blank and repeated accounts.
func (r *BatchVerifyRequest) Normalize() {
	r.Accounts = strutil.DedupeAndTrimLower(r.Accounts)
}

func (r *BatchVerifyRequest) Validate() error {
	if len(r.Accounts) == 0 {
		return dErrors.New(dErrors.CodeValidation, "accounts are required")
	}
	r.parsed = make([]id.AccountID, 0, len(r.Accounts))
	for _, raw := range r.Accounts {
		account, err := id.ParseAccountID(raw)
		if err != nil {
			return err
		}
		r.parsed = append(r.parsed, account)
	}
	return nil
}

type AddInspectorRequest struct {
	Account     string `json:"account"`
	Name        string `json:"name"`
	Age         uint32 `json:"age"`
	Designation string `json:"designation"`

	parsed id.AccountID
}

func (r *AddInspectorRequest) Normalize() {
	r.Account = strings.TrimSpace(r.Account)
}

func (r *AddInspectorRequest) Validate() error {
	account, err := id.ParseAccountID(r.Account)
	if err != nil {
		return err
	}
	r.parsed = account
	return nil
}

func (r *AddInspectorRequest) toModel() models.AddInspectorRequest {
	return models.AddInspectorRequest{
		Account:     r.parsed,
		Name:        r.Name,
		Age:         r.Age,
		Designation: r.Designation,
	}
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`

	parsed id.AccountID
}

func (r *TransferOwnershipRequest) Validate() error {
	account, err := id.ParseAccountID(strings.TrimSpace(r.NewOwner))
	if err != nil {
		return err
	}
	r.parsed = account
	return nil
}
