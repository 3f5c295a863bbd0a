package models

import (
	"strings"
	"time"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/validation"
)

type Category string

const (
	CategoryOwnership     Category = "OWNERSHIP"
	CategoryBoundary      Category = "BOUNDARY"
	CategoryDocumentation Category = "DOCUMENTATION"
	CategoryInheritance   Category = "INHERITANCE"
	CategoryFraud         Category = "FRAUD"
	CategoryOther         Category = "OTHER"
)

var Categories = []Category{
	CategoryOwnership,
	CategoryBoundary,
	CategoryDocumentation,
	CategoryInheritance,
	CategoryFraud,
	CategoryOther,
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown dispute category: "+raw)
}

// Dispute is a claim against a land. IDs are scoped to the land.
type Dispute struct {
	ID         id.DisputeID `json:"id"`
	LandID     id.LandID    `json:"land_id"`
	Raiser     id.AccountID `json:"raiser"`
	Category   Category     `json:"category"`
	Reason     string       `json:"reason"`
	Resolved   bool         `json:"resolved"`
	Resolution string       `json:"resolution,omitempty"`
	RaisedAt   time.Time    `json:"raised_at"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy id.AccountID `json:"-"`
}

// Claim is what a raiser supplies.
type Claim struct {
	Category Category `json:"category"`
	Reason   string   `json:"reason"`
}

func (c *Claim) Normalize() {
	c.Reason = strings.TrimSpace(c.Reason)
	c.Category = Category(strings.ToUpper(strings.TrimSpace(string(c.Category))))
}

func (c *Claim) Validate() error {
	if err := validation.Text("reason", c.Reason); err != nil {
		return err
	}
	_, err := ParseCategory(string(c.Category))
	return err
}

func NewDispute(disputeID id.DisputeID, landID id.LandID, raiser id.AccountID, claim Claim, now time.Time) (*Dispute, error) {
	claim.Normalize()
	if err := claim.Validate(); err != nil {
		return nil, err
	}
	return &Dispute{
		ID:       disputeID,
		LandID:   landID,
		Raiser:   raiser,
		Category: claim.Category,
		Reason:   claim.Reason,
		RaisedAt: now,
	}, nil
}

func (d *Dispute) CanResolve() error {
	if d.Resolved {
		return dErrors.New(dErrors.CodeInvalidState, "dispute already resolved")
	}
	return nil
}

func (d *Dispute) Resolve(inspector id.AccountID, resolution string, now time.Time) {
	d.Resolved = true
	d.Resolution = resolution
	d.ResolvedAt = &now
	d.ResolvedBy = inspector
}
