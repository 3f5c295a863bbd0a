package handler

import (
	"strings"

	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
)

// AddLandRequest is the body of POST /lands.
type AddLandRequest struct {
	Area         uint64 `json:"area"`
	Location     string `json:"location"`
	Price        int64  `json:"price"`
	Coordinates  string `json:"coordinates"`
	PropertyID   string `json:"property_id"`
	SurveyNumber string `json:"survey_number"`
	DocumentHash string `json:"document_hash"`
}

func (r *AddLandRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

func (r *AddLandRequest) toModel() models.AddLandRequest {
	return models.AddLandRequest{
		Area:         r.Area,
		Location:     r.Location,
		Price:        r.Price,
		Coordinates:  r.Coordinates,
		PropertyID:   r.PropertyID,
		SurveyNumber: r.SurveyNumber,
		DocumentHash: r.DocumentHash,
	}
}

type VerifyLandRequest struct {
	Approve *bool  `json:"approve"`
	Remark  string `json:"remark"`
}

func (r *VerifyLandRequest) Normalize() {
	r.Remark = strings.TrimSpace(r.Remark)
}

func (r *VerifyLandRequest) Validate() error {
	if r.Approve == nil {
		return dErrors.New(dErrors.CodeValidation, "approve is required")
	}
	return nil
}

type UpdateDetailsRequest struct {
	Area         uint64 `json:"area"`
	Location     string `json:"location"`
	Coordinates  string `json:"coordinates"`
	PropertyID   string `json:"property_id"`
	SurveyNumber string `json:"survey_number"`
}

func (r *UpdateDetailsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

func (r *UpdateDetailsRequest) toModel() models.LandDetails {
	return models.LandDetails{
		Area:         r.Area,
		Location:     r.Location,
		Coordinates:  r.Coordinates,
		PropertyID:   r.PropertyID,
		SurveyNumber: r.SurveyNumber,
	}
}

type UpdatePriceRequest struct {
	Price int64 `json:"price"`
}

func (r *UpdatePriceRequest) Validate() error {
	if r.Price <= 0 {
		return dErrors.New(dErrors.CodeValidation, "price must be greater than zero")
	}
	return nil
}

type AddDocumentRequest struct {
	Hash        string `json:"hash"`
	Description string `json:"description"`
}

func (r *AddDocumentRequest) Normalize() {
	r.Hash = strings.TrimSpace(r.Hash)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *AddDocumentRequest) Validate() error {
	if r.Hash == "" {
		return dErrors.New(dErrors.CodeValidation, "document hash is required")
	}
	return nil
}

// TransferLandRequest is the body of POST /lands/{landID}/transfer.
type TransferLandRequest struct {
	NewOwner     string `json:"new_owner"`
	DocumentHash string `json:"document_hash"`

	parsed id.AccountID
}

func (r *TransferLandRequest) Normalize() {
	r.DocumentHash = strings.TrimSpace(r.DocumentHash)
}

func (r *TransferLandRequest) Validate() error {
	account, err := id.ParseAccountID(r.NewOwner)
	if err != nil {
		return err
	}
	r.parsed = account
	return nil
}
