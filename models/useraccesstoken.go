package models

import (
	"fmt"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
)

// UserAccessToken is used by pop to map your user_access_tokens database table to your go code.
type UserAccessToken struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id" validate:"required"`
	AccessToken string    `db:"-"`
	TokenHash   string    `db:"access_token" validate:"required"`
	ExpiresAt   time.Time `db:"expires_at" validate:"required"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	User *User `belongs_to:"users"`
}

// UserAccessTokens is a slice of UserAccessToken objects
type UserAccessTokens []UserAccessToken

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (u *UserAccessToken) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

// Create stores the UserAccessToken data as a new record in the database.
func (u *UserAccessToken) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *UserAccessToken) Destroy(tx *pop.Connection) error {
	return destroy(tx, u)
}

// FindByAccessToken uses a sha256.Sum256 of the accessToken to find the corresponding UserAccessToken
// returns an api.AppError
func (u *UserAccessToken) FindByAccessToken(tx *pop.Connection, token string) error {
	if err := tx.Eager().Where("access_token = ?", HashAccessToken(token)).First(u); err != nil {
		l := len(token)
		if l > 5 {
			l = 5
		}

		if domain.IsOtherThanNoRows(err) {
			panic("database error trying to find user access token: " + err.Error())
		}

		appErr := api.AppError{
			Err:      err,
			Key:      api.ErrorInvalidCredentials,
			Category: api.CategoryUnauthorized,
			Message:  fmt.Sprintf("failed to find access token '%s...'", token[0:l]),
		}
		return &appErr
	}

	return nil
}

// DeleteIfExpired checks the token expiration and returns `true` if expired. Also deletes
// the token from the database if it is expired.
func (u *UserAccessToken) DeleteIfExpired(tx *pop.Connection) (bool, error) {
	if u.ExpiresAt.Before(time.Now()) {
		err := u.Destroy(tx)
		if err != nil {
			return true, fmt.Errorf("unable to delete expired userAccessToken, id: %v", u.ID)
		}
		return true, nil
	}
	return false, nil
}

// GetUser returns the User associated with this access token
func (u *UserAccessToken) GetUser(tx *pop.Connection) (User, error) {
	if err := tx.Load(u, "User"); err != nil {
		return User{}, err
	}
	if u.User == nil {
		return User{}, fmt.Errorf("no user associated with access token %s", u.ID)
	}
	return *u.User, nil
}

func createAccessTokenExpiry() time.Time {
	dtNow := time.Now()
	return dtNow.Add(time.Second * time.Duration(domain.Env.AccessTokenLifetimeSeconds))
}

// InitAccessToken prepares a new value for the AccessToken field and the ExpiresAt field.
func InitAccessToken() UserAccessToken {
	token, _ := getRandomToken() // The init() function would have made sure there was no error

	return UserAccessToken{
		AccessToken: token,
		TokenHash:   HashAccessToken(token),
		ExpiresAt:   createAccessTokenExpiry(),
	}
}
