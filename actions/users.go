package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /users Users UsersCreate
//
// # UsersCreate
//
// register a new user with a wallet address, role and password
//
// ---
//
//	parameters:
//	- name: user input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/UserCreateInput"
//	responses:
//	  '200':
//	    description: the new User
//	    schema:
//	      "$ref": "#/definitions/User"
func usersCreate(c buffalo.Context) error {
	var input api.UserCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	user := models.User{
		WalletAddress: input.WalletAddress,
		Role:          input.Role,
	}
	if err := user.Create(tx, input.Password); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, user.ConvertToAPI())
}

// swagger:operation POST /users/login Users UsersLogin
//
// # UsersLogin
//
// authenticate by wallet address and password, issuing a bearer token
//
// ---
//
//	parameters:
//	- name: login input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/LoginInput"
//	responses:
//	  '200':
//	    description: the authenticated user and an access token
//	    schema:
//	      "$ref": "#/definitions/LoginResponse"
func usersLogin(c buffalo.Context) error {
	var input api.LoginInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	tx := models.Tx(c)
	var user models.User
	if err := user.FindByWalletAddress(tx, input.WalletAddress); err != nil {
		err = errors.New("invalid wallet address or password")
		return reportError(c, api.NewAppError(err, api.ErrorInvalidCredentials, api.CategoryUnauthorized))
	}

	if !user.IsValidPassword(input.Password) {
		err := errors.New("invalid wallet address or password")
		return reportError(c, api.NewAppError(err, api.ErrorInvalidCredentials, api.CategoryUnauthorized))
	}

	uat, err := user.CreateAccessToken(tx)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.LoginResponse{
		User:        user.ConvertToAPI(),
		AccessToken: uat.AccessToken,
		ExpiresAt:   uat.ExpiresAt,
	})
}

// swagger:operation GET /users/me Users UsersMe
//
// # UsersMe
//
// return the authenticated user
//
// ---
//
//	responses:
//	  '200':
//	    description: the current User
//	    schema:
//	      "$ref": "#/definitions/User"
func usersMe(c buffalo.Context) error {
	user := models.CurrentUser(c)
	return renderOk(c, user.ConvertToAPI())
}
