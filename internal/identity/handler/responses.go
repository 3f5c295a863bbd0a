package handler

import (
	"time"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
)

// UserResponse omits the raw identity document numbers.
type UserResponse struct {
	Account      string     `json:"account"`
	Name         string     `json:"name"`
	Age          uint32     `json:"age"`
	City         string     `json:"city"`
	DocumentHash string     `json:"document_hash"`
	Email        string     `json:"email"`
	Verified     bool       `json:"verified"`
	RegisteredAt time.Time  `json:"registered_at"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Account:      u.Account.String(),
		Name:         u.Name,
		Age:          u.Age,
		City:         u.City,
		DocumentHash: u.DocumentHash,
		Email:        u.Email,
		Verified:     u.Verified,
		RegisteredAt: u.RegisteredAt,
		VerifiedAt:   u.VerifiedAt,
	}
}

type InspectorResponse struct {
	ID          uint64    `json:"id"`
	Account     string    `json:"account"`
	Name        string    `json:"name"`
	Age         uint32    `json:"age"`
	Designation string    `json:"designation"`
	AddedAt     time.Time `json:"added_at"`
}

func toInspectorResponse(i *models.Inspector) InspectorResponse {
	return InspectorResponse{
		ID:          uint64(i.ID),
		Account:     i.Account.String(),
		Name:        i.Name,
		Age:         i.Age,
		Designation: i.Designation,
		AddedAt:     i.AddedAt,
	}
}

type RolesResponse struct {
	Account string    `json:"account"`
	Roles   []id.Role `json:"roles"`
}

type SettingsResponse struct {
	Owner  string `json:"owner,omitempty"`
	Paused bool   `json:"paused"`
}

type BatchVerifyResponse struct {
	Verified int `json:"verified"`
}
