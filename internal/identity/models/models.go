package models

import (
	"strings"
	"time"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/validation"
)

// User is the identity record of a registered account.
//
// Invariants:
//   - An account holds at most one User
//   - Age is at least 18
//   - NationalID is 12 digits, TaxID matches AAAAA9999A
//   - NationalID and TaxID are unique across accounts
//   - Verified only moves false -> true
type User struct {
	Account      id.AccountID `json:"account"`
	Name         string       `json:"name"`
	Age          uint32       `json:"age"`
	City         string       `json:"city"`
	NationalID   string       `json:"national_id"`
	TaxID        string       `json:"tax_id"`
	DocumentHash string       `json:"document_hash"`
	Email        string       `json:"email"`
	Verified     bool         `json:"verified"`
	RegisteredAt time.Time    `json:"registered_at"`
	VerifiedAt   *time.Time   `json:"verified_at,omitempty"`
	VerifiedBy   id.AccountID `json:"verified_by,omitzero"`
}

// CanVerify reports whether the user may transition to verified.
func (u *User) CanVerify() error {
	if u.Verified {
		return dErrors.New(dErrors.CodeInvalidState, "user already verified")
	}
	return nil
}

// ApplyVerification marks the user verified. Call CanVerify first.
func (u *User) ApplyVerification(inspector id.AccountID, now time.Time) {
	u.Verified = true
	u.VerifiedAt = &now
	u.VerifiedBy = inspector
}

// Inspector is a directory entry for an account holding the INSPECTOR role.
type Inspector struct {
	ID          id.InspectorID `json:"id"`
	Account     id.AccountID   `json:"account"`
	Name        string         `json:"name"`
	Age         uint32         `json:"age"`
	Designation string         `json:"designation"`
	AddedAt     time.Time      `json:"added_at"`
}

// VerificationStatus is the read-only shape external clients consume.
type VerificationStatus struct {
	IsRegistered bool `json:"is_registered"`
	IsVerified   bool `json:"is_verified"`
}

// RegisterUserRequest carries the fields a caller supplies about themselves.
type RegisterUserRequest struct {
	Name         string `json:"name"`
	Age          uint32 `json:"age"`
	City         string `json:"city"`
	NationalID   string `json:"national_id"`
	TaxID        string `json:"tax_id"`
	DocumentHash string `json:"document_hash"`
	Email        string `json:"email"`
}

func (r *RegisterUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.TaxID = strings.ToUpper(strings.TrimSpace(r.TaxID))
	r.DocumentHash = strings.TrimSpace(r.DocumentHash)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *RegisterUserRequest) Validate() error {
	if err := validation.Text("name", r.Name); err != nil {
		return err
	}
	if err := validation.Text("city", r.City); err != nil {
		return err
	}
	if err := validation.Adult(r.Age); err != nil {
		return err
	}
	if err := validation.NationalID(r.NationalID); err != nil {
		return err
	}
	if err := validation.TaxID(r.TaxID); err != nil {
		return err
	}
	if err := validation.Text("document hash", r.DocumentHash); err != nil {
		return err
	}
	return validation.Email(r.Email)
}

// NewUser builds an unverified user from a validated request.
func NewUser(account id.AccountID, req RegisterUserRequest, now time.Time) (*User, error) {
	if account.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "account is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &User{
		Account:      account,
		Name:         req.Name,
		Age:          req.Age,
		City:         req.City,
		NationalID:   req.NationalID,
		TaxID:        req.TaxID,
		DocumentHash: req.DocumentHash,
		Email:        req.Email,
		RegisteredAt: now,
	}, nil
}

// AddInspectorRequest describes a new inspector directory entry.
type AddInspectorRequest struct {
	Account     id.AccountID `json:"account"`
	Name        string       `json:"name"`
	Age         uint32       `json:"age"`
	Designation string       `json:"designation"`
}

func (r *AddInspectorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Designation = strings.TrimSpace(r.Designation)
}

// Validate enforces the inspector rules. An underage inspector is an
// authorization failure, not a formatting one.
func (r *AddInspectorRequest) Validate() error {
	if r.Account.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "inspector account is required")
	}
	if err := validation.Text("name", r.Name); err != nil {
		return err
	}
	if err := validation.OptionalText(r.Designation); err != nil {
		return err
	}
	if r.Age < validation.MinAge {
		return dErrors.New(dErrors.CodeForbidden, "inspector must be an adult")
	}
	return nil
}
