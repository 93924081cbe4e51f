package actions

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
	"github.com/verixa-platform/verixa-api/models"
)

// AuthN authenticates the request by the bearer token in the Authorization header and
// places the owning user on the context.
func AuthN(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		bearerToken := domain.GetBearerTokenFromRequest(c.Request())
		if bearerToken == "" {
			err := errors.New("no bearer token provided")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		var userAccessToken models.UserAccessToken
		tx := models.Tx(c)
		if err := userAccessToken.FindByAccessToken(tx, bearerToken); err != nil {
			err = errors.New("invalid bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		isExpired, err := userAccessToken.DeleteIfExpired(tx)
		if err != nil {
			return reportError(c, err)
		}

		if isExpired {
			err = errors.New("expired bearer token")
			return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
		}

		user, err := userAccessToken.GetUser(tx)
		if err != nil {
			err = fmt.Errorf("error finding user by access token, %s", err.Error())
			return reportError(c, err)
		}
		c.Set(domain.ContextKeyCurrentUser, user)

		domain.RollbarSetPerson(c, user.ID.String(), user.WalletAddress)
		domain.NewExtra(c, "user_id", user.ID)
		domain.NewExtra(c, "wallet_address", user.WalletAddress)
		domain.NewExtra(c, "ip", c.Request().RemoteAddr)

		return next(c)
	}
}
