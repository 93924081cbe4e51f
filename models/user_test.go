package models

import (
	"time"

	"github.com/verixa-platform/verixa-api/api"
)

func (ms *ModelSuite) TestUser_CreateAndPassword() {
	user := User{
		WalletAddress: "0xwallet1",
		Role:          api.UserRolePatient,
	}
	ms.NoError(user.Create(ms.DB, "hunter22"))
	ms.NotEqual("hunter22", user.PasswordHash, "password must never be stored in the clear")

	ms.True(user.IsValidPassword("hunter22"))
	ms.False(user.IsValidPassword("wrong"))

	missing := User{WalletAddress: "0xwallet2", Role: api.UserRoleIssuer}
	err := missing.Create(ms.DB, "")
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

	bogus := User{WalletAddress: "0xwallet3", Role: api.UserRole("janitor")}
	err = bogus.Create(ms.DB, "hunter22")
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestUser_FindByWalletAddress() {
	user := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	var found User
	ms.NoError(found.FindByWalletAddress(ms.DB, user.WalletAddress))
	ms.Equal(user.ID, found.ID)

	err := found.FindByWalletAddress(ms.DB, "0xnobody")
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestUser_AccessToken() {
	user := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	uat, err := user.CreateAccessToken(ms.DB)
	ms.NoError(err)
	ms.NotEmpty(uat.AccessToken)
	ms.Equal(HashAccessToken(uat.AccessToken), uat.TokenHash)

	var found UserAccessToken
	ms.NoError(found.FindByAccessToken(ms.DB, uat.AccessToken))
	tokenUser, err := found.GetUser(ms.DB)
	ms.NoError(err)
	ms.Equal(user.ID, tokenUser.ID)

	err = found.FindByAccessToken(ms.DB, "not-a-token")
	ms.EqualAppError(api.AppError{
		Key:      api.ErrorInvalidCredentials,
		Category: api.CategoryUnauthorized,
	}, err)
}

func (ms *ModelSuite) TestUserAccessToken_DeleteIfExpired() {
	user := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	uat, err := user.CreateAccessToken(ms.DB)
	ms.NoError(err)

	expired, err := uat.DeleteIfExpired(ms.DB)
	ms.NoError(err)
	ms.False(expired, "a fresh token must not be deleted")

	uat.ExpiresAt = time.Now().Add(-time.Minute)
	_, err = ms.DB.ValidateAndUpdate(&uat)
	ms.NoError(err)

	expired, err = uat.DeleteIfExpired(ms.DB)
	ms.NoError(err)
	ms.True(expired)

	var gone UserAccessToken
	err = gone.FindByAccessToken(ms.DB, uat.AccessToken)
	ms.EqualAppError(api.AppError{
		Key:      api.ErrorInvalidCredentials,
		Category: api.CategoryUnauthorized,
	}, err)
}
