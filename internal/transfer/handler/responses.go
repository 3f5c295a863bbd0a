package handler

import (
	"landregistry/internal/transfer/models"
)

type RequestsResponse struct {
	Offset   int                       `json:"offset"`
	Requests []*models.PurchaseRequest `json:"requests"`
}

type TransactionsResponse struct {
	Offset       int                  `json:"offset"`
	Transactions []models.Transaction `json:"transactions"`
}
