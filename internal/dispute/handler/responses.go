package handler

import (
	"landregistry/internal/dispute/models"
	id "landregistry/pkg/domain"
)

type DisputesResponse struct {
	LandID   id.LandID         `json:"land_id"`
	Offset   int               `json:"offset"`
	Disputes []*models.Dispute `json:"disputes"`
}

type OpenCountResponse struct {
	LandID id.LandID `json:"land_id"`
	Open   int       `json:"open"`
}
