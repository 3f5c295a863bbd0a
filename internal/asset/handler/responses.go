package handler

import (
	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
)

type LandIDsResponse struct {
	Owner string      `json:"owner"`
	Lands []id.LandID `json:"lands"`
}

type TotalResponse struct {
	Total int `json:"total"`
}

type LandsResponse struct {
	Lands []*models.Land `json:"lands"`
}

type HistoryResponse struct {
	LandID  id.LandID             `json:"land_id"`
	Offset  int                   `json:"offset"`
	Entries []models.HistoryEntry `json:"entries"`
}

type DocumentsResponse struct {
	LandID    id.LandID         `json:"land_id"`
	Documents []models.Document `json:"documents"`
}

type ContractsResponse struct {
	Contracts []string `json:"contracts"`
}

func toContractsResponse(accounts []id.AccountID) ContractsResponse {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.String())
	}
	return ContractsResponse{Contracts: out}
}
