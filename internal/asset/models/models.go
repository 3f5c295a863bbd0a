package models

import (
	"strings"
	"time"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/validation"
)

// DefaultMaxDocuments caps the document list of a land record.
const DefaultMaxDocuments = 10

// Land is a registered property.
//
// Invariants:
//   - ID is assigned once and never reused
//   - Price is positive
//   - Inspected flips once; Verified can only be set by that inspection
//   - ForSale implies Verified
type Land struct {
	ID           id.LandID    `json:"id"`
	Owner        id.AccountID `json:"owner"`
	Area         uint64       `json:"area"`
	Location     string       `json:"location"`
	Price        int64        `json:"price"`
	Coordinates  string       `json:"coordinates"`
	PropertyID   string       `json:"property_id"`
	SurveyNumber string       `json:"survey_number"`
	DocumentHash string       `json:"document_hash"`
	Verified     bool         `json:"verified"`
	Inspected    bool         `json:"inspected"`
	Remark       string       `json:"remark"`
	ForSale      bool         `json:"for_sale"`
	RegisteredAt time.Time    `json:"registered_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Document is an attachment: a content commitment plus a description.
type Document struct {
	Hash        string    `json:"hash"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// HistoryEntry is immutable once appended.
type HistoryEntry struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func (l *Land) CanVerify() error {
	if l.Inspected {
		return dErrors.New(dErrors.CodeInvalidState, "already verified")
	}
	return nil
}

func (l *Land) ApplyVerification(approve bool, remark string, now time.Time) {
	l.Inspected = true
	l.Verified = approve
	l.Remark = remark
	l.UpdatedAt = now
}

func (l *Land) CanList() error {
	if !l.Verified {
		return dErrors.New(dErrors.CodeInvalidState, "land not verified")
	}
	if l.ForSale {
		return dErrors.New(dErrors.CodeInvalidState, "land already for sale")
	}
	return nil
}

func (l *Land) CanDelist() error {
	if !l.ForSale {
		return dErrors.New(dErrors.CodeInvalidState, "land not for sale")
	}
	return nil
}

// ApplyTransfer hands the land to newOwner and takes it off the market. An
// empty docHash keeps the current document.
func (l *Land) ApplyTransfer(newOwner id.AccountID, docHash string, now time.Time) {
	l.Owner = newOwner
	l.ForSale = false
	if docHash != "" {
		l.DocumentHash = docHash
	}
	l.UpdatedAt = now
}

// AddLandRequest describes a new land record.
type AddLandRequest struct {
	Area         uint64 `json:"area"`
	Location     string `json:"location"`
	Price        int64  `json:"price"`
	Coordinates  string `json:"coordinates"`
	PropertyID   string `json:"property_id"`
	SurveyNumber string `json:"survey_number"`
	DocumentHash string `json:"document_hash"`
}

func (r *AddLandRequest) Normalize() {
	r.Location = strings.TrimSpace(r.Location)
	r.Coordinates = strings.TrimSpace(r.Coordinates)
	r.PropertyID = strings.TrimSpace(r.PropertyID)
	r.SurveyNumber = strings.TrimSpace(r.SurveyNumber)
	r.DocumentHash = strings.TrimSpace(r.DocumentHash)
}

func (r *AddLandRequest) Validate() error {
	details := LandDetails{
		Area:         r.Area,
		Location:     r.Location,
		Coordinates:  r.Coordinates,
		PropertyID:   r.PropertyID,
		SurveyNumber: r.SurveyNumber,
	}
	if err := details.Validate(); err != nil {
		return err
	}
	if err := validation.Price(r.Price); err != nil {
		return err
	}
	return validation.Text("document hash", r.DocumentHash)
}

// NewLand builds an unverified, unlisted record owned by owner.
func NewLand(landID id.LandID, owner id.AccountID, req AddLandRequest, now time.Time) (*Land, error) {
	if landID == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "land id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &Land{
		ID:           landID,
		Owner:        owner,
		Area:         req.Area,
		Location:     req.Location,
		Price:        req.Price,
		Coordinates:  req.Coordinates,
		PropertyID:   req.PropertyID,
		SurveyNumber: req.SurveyNumber,
		DocumentHash: req.DocumentHash,
		RegisteredAt: now,
		UpdatedAt:    now,
	}, nil
}

// LandDetails are the descriptive fields an owner may update.
type LandDetails struct {
	Area         uint64 `json:"area"`
	Location     string `json:"location"`
	Coordinates  string `json:"coordinates"`
	PropertyID   string `json:"property_id"`
	SurveyNumber string `json:"survey_number"`
}

func (d *LandDetails) Normalize() {
	d.Location = strings.TrimSpace(d.Location)
	d.Coordinates = strings.TrimSpace(d.Coordinates)
	d.PropertyID = strings.TrimSpace(d.PropertyID)
	d.SurveyNumber = strings.TrimSpace(d.SurveyNumber)
}

func (d *LandDetails) Validate() error {
	if d.Area == 0 {
		return dErrors.New(dErrors.CodeValidation, "area must be greater than zero")
	}
	for _, f := range []struct{ name, value string }{
		{"location", d.Location},
		{"coordinates", d.Coordinates},
		{"property id", d.PropertyID},
		{"survey number", d.SurveyNumber},
	} {
		if err := validation.Text(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (l *Land) ApplyDetails(d LandDetails, now time.Time) {
	l.Area = d.Area
	l.Location = d.Location
	l.Coordinates = d.Coordinates
	l.PropertyID = d.PropertyID
	l.SurveyNumber = d.SurveyNumber
	l.UpdatedAt = now
}

// NewDocument validates an attachment.
func NewDocument(hash, description string, now time.Time) (Document, error) {
	hash = strings.TrimSpace(hash)
	description = strings.TrimSpace(description)
	if err := validation.Text("document hash", hash); err != nil {
		return Document{}, err
	}
	if err := validation.Text("description", description); err != nil {
		return Document{}, err
	}
	return Document{Hash: hash, Description: description, AddedAt: now}, nil
}
