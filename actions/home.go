package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/domain"
)

func homeHandler(c buffalo.Context) error {
	return renderOk(c, map[string]string{
		"message": fmt.Sprintf("Welcome to the %s API", domain.Env.AppName),
	})
}
