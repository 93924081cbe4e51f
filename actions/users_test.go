package actions

import (
	"net/http"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

func (as *ActionSuite) Test_UsersCreateAndLogin() {
	input := api.UserCreateInput{
		WalletAddress: "0xabc123create",
		Role:          api.UserRolePatient,
		Password:      "correct horse battery staple",
	}
	res := as.JSON("/users").Post(input)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var user api.User
	as.decodeBody(res.Body.Bytes(), &user)
	as.Equal(input.WalletAddress, user.WalletAddress)
	as.Equal(api.UserRolePatient, user.Role)

	res = as.JSON("/users/login").Post(api.LoginInput{
		WalletAddress: input.WalletAddress,
		Password:      input.Password,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var login api.LoginResponse
	as.decodeBody(res.Body.Bytes(), &login)
	as.NotEmpty(login.AccessToken)
	as.Equal(user.ID, login.User.ID)

	// the issued token authenticates /users/me
	req := as.JSON("/users/me")
	req.Headers["Authorization"] = "Bearer " + login.AccessToken
	res = req.Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), input.WalletAddress)
}

func (as *ActionSuite) Test_UsersLoginBadPassword() {
	f := models.CreateUserFixtures(as.DB, 1, api.UserRolePatient)

	res := as.JSON("/users/login").Post(api.LoginInput{
		WalletAddress: f.Users[0].WalletAddress,
		Password:      "not the password",
	})
	as.Equal(http.StatusUnauthorized, res.Code)

	appErr := as.decodeError(res.Body.Bytes())
	as.Equal(api.ErrorInvalidCredentials, appErr.Key)
}

func (as *ActionSuite) Test_AuthnRequired() {
	res := as.JSON("/users/me").Get()
	as.Equal(http.StatusUnauthorized, res.Code)

	req := as.JSON("/users/me")
	req.Headers["Authorization"] = "Bearer bogus-token"
	res = req.Get()
	as.Equal(http.StatusUnauthorized, res.Code)
}
