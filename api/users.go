package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type UserRole string

const (
	UserRolePatient   = UserRole("patient")
	UserRoleIssuer    = UserRole("issuer")
	UserRoleInsurance = UserRole("insurance")
	UserRoleValidator = UserRole("validator")
)

// swagger:model
type User struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Role          UserRole  `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

// swagger:model
type UserCreateInput struct {
	WalletAddress string   `json:"wallet_address"`
	Role          UserRole `json:"role"`
	Password      string   `json:"password"`
}

// swagger:model
type LoginInput struct {
	WalletAddress string `json:"wallet_address"`
	Password      string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent requests.
// swagger:model
type LoginResponse struct {
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// swagger:model
type FileUploadResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Size        int       `json:"size"`
	ContentType string    `json:"content_type"`
}
