package models

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/verixa-platform/verixa-api/api"
)

var ValidUserRoles = map[api.UserRole]struct{}{
	api.UserRolePatient:   {},
	api.UserRoleIssuer:    {},
	api.UserRoleInsurance: {},
	api.UserRoleValidator: {},
}

// Users is a slice of User objects
type Users []User

// User model
type User struct {
	ID            uuid.UUID    `db:"id"`
	WalletAddress string       `db:"wallet_address" validate:"required"`
	Role          api.UserRole `db:"role" validate:"userRole"`
	PasswordHash  string       `db:"password_hash" validate:"required"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// String can be helpful for serializing the model
func (u User) String() string {
	ju, _ := json.Marshal(u)
	return string(ju)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// Create stores the User data as a new record in the database, hashing the given
// cleartext password first.
func (u *User) Create(tx *pop.Connection, password string) error {
	if password == "" {
		return api.NewAppError(
			fmt.Errorf("no password given for user %s", u.WalletAddress),
			api.ErrorValidation, api.CategoryUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return api.NewAppError(err, api.ErrorCreateFailure, api.CategoryInternal)
	}
	u.PasswordHash = string(hash)

	return create(tx, u)
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

// FindByWalletAddress loads the user with the given wallet address
func (u *User) FindByWalletAddress(tx *pop.Connection, wallet string) error {
	err := tx.Where("wallet_address = ?", wallet).First(u)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// IsValidPassword compares the given cleartext password against the stored hash
func (u *User) IsValidPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CreateAccessToken makes a new bearer token for the user and stores its hash
func (u *User) CreateAccessToken(tx *pop.Connection) (UserAccessToken, error) {
	uat := InitAccessToken()
	uat.UserID = u.ID
	if err := uat.Create(tx); err != nil {
		return uat, api.NewAppError(err, api.ErrorCreatingAccessToken, api.CategoryInternal)
	}
	return uat, nil
}

// HashAccessToken just returns a sha256.Sum256 of the input value
func HashAccessToken(accessToken string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(accessToken)))
}

// ConvertToAPI converts a models.User to an api.User
func (u *User) ConvertToAPI() api.User {
	return api.User{
		ID:            u.ID,
		WalletAddress: u.WalletAddress,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
	}
}
