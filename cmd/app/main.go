package main

import (
	"os"

	"github.com/rollbar/rollbar-go"

	"github.com/verixa-platform/verixa-api/actions"
	"github.com/verixa-platform/verixa-api/domain"
)

var GitCommitHash string

// main is the starting point for the Buffalo application.
func main() {
	// init rollbar
	rollbar.SetToken(domain.Env.RollbarToken)
	rollbar.SetEnvironment(domain.Env.GoEnv)
	rollbar.SetCodeVersion(GitCommitHash)
	rollbar.SetServerRoot(domain.Env.RollbarServerRoot)

	app := actions.App()
	rollbar.WrapAndWait(func() {
		if err := app.Serve(); err != nil {
			if err.Error() != "context canceled" {
				panic(err)
			}
			os.Exit(0)
		}
	})
}
