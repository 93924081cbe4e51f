package actions

import (
	"fmt"
	"net/http"

	"github.com/verixa-platform/verixa-api/domain"
)

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()

	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), fmt.Sprintf("Welcome to the %s API", domain.Env.AppName))
}
