package handler

import (
	"strings"

	"landregistry/internal/dispute/models"
	dErrors "landregistry/pkg/domain-errors"
)

// RaiseDisputeRequest is the body of POST /disputes/{landID}.
type RaiseDisputeRequest struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

func (r *RaiseDisputeRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
}

func (r *RaiseDisputeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	_, err := models.ParseCategory(r.Category)
	return err
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

func (r *ResolveDisputeRequest) Normalize() {
	r.Resolution = strings.TrimSpace(r.Resolution)
}

func (r *ResolveDisputeRequest) Validate() error {
	if r.Resolution == "" {
		return dErrors.New(dErrors.CodeValidation, "resolution is required")
	}
	return nil
}
