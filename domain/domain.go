package domain

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/envy"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/rollbar/rollbar-go"
)

var (
	// Logger is a plain instance of log.Logger, normally set to stdout
	Logger log.Logger

	// ErrLogger is an instance of ErrLogProxy, and is the only error logging
	// mechanism that can be used without access to the Buffalo context.
	ErrLogger ErrLogProxy
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Context keys
const (
	ContextKeyCurrentUser = "current_user"
	ContextKeyExtras      = "extras"
	ContextKeyRollbar     = "rollbar"
	ContextKeyTx          = "tx"
)

const (
	// AccessTokenBytes is the length of the random portion of a bearer token
	AccessTokenBytes = 32

	MaxFileSize = 1024 * 1024 * 10 // 10 Megabytes
)

var AllowedFileUploadTypes = []string{
	"image/bmp",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
}

// Event Kinds
const (
	EventApiClaimAutoApproved = "api:claim:autoapproved"
	EventApiTaskCompleted     = "api:task:completed"

	EventPayloadID = "id"
)

// Env Holds the values of environment variables
var Env struct {
	GoEnv      string `ignored:"true"`
	ApiBaseURL string `required:"true" split_words:"true"`
	AppName    string `default:"Verixa" split_words:"true"`
	ServerPort int    `default:"3000" split_words:"true"`

	SessionSecret              string `required:"true" split_words:"true"`
	AccessTokenLifetimeSeconds int    `default:"1166400" split_words:"true"` // 13.5 days
	RollbarServerRoot          string `default:"" split_words:"true"`
	RollbarToken               string `default:"" split_words:"true"`
	UIURL                      string `default:"http://missing.ui.url"`

	AwsRegion           string `split_words:"true"`
	AwsS3Endpoint       string `split_words:"true"`
	AwsS3DisableSSL     bool   `split_words:"true"`
	AwsS3Bucket         string `split_words:"true"`
	AwsS3ACL            string `default:"public-read" split_words:"true"`
	AwsS3URLLifeMinutes int    `default:"10" split_words:"true"`
	AwsAccessKeyID      string `split_words:"true"`
	AwsSecretAccessKey  string `split_words:"true"`
}

func init() {
	readEnv()
	Logger.SetOutput(log.Writer())
	ErrLogger.SetOutput(log.Writer())
	ErrLogger.InitRollbar()
}

// readEnv loads environment data into `Env`
func readEnv() {
	if err := envconfig.Process("", &Env); err != nil {
		log.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

// ErrLogProxy is a "tee" that sends to Rollbar and to the local logger, normally set
// to stderr. Rollbar is disabled if `GoEnv` is "test", and is a client instantiation
// separate from the one used in the Rollbar middleware.
type ErrLogProxy struct {
	LocalLog  log.Logger
	RemoteLog *rollbar.Client
}

func (e *ErrLogProxy) SetOutput(w io.Writer) {
	e.LocalLog.SetOutput(w)
}

func (e *ErrLogProxy) Printf(format string, a ...interface{}) {
	// Send to local logger
	e.LocalLog.Printf(format, a...)

	// Only send to remote log if not in test env
	if Env.GoEnv == EnvTest {
		return
	}
	e.RemoteLog.Errorf(rollbar.ERR, format, a...)
}

func (e *ErrLogProxy) InitRollbar() {
	e.RemoteLog = rollbar.New(
		Env.RollbarToken,
		Env.GoEnv,
		"",
		"",
		Env.RollbarServerRoot)
}

// RollbarMiddleware attaches a per-request rollbar client to the context
func RollbarMiddleware(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		if Env.RollbarToken == "" || Env.GoEnv == EnvTest {
			return next(c)
		}

		client := rollbar.New(
			Env.RollbarToken,
			Env.GoEnv,
			"",
			"",
			Env.RollbarServerRoot)
		defer client.Close()

		c.Set(ContextKeyRollbar, client)

		return next(c)
	}
}

// RollbarSetPerson sets person on the rollbar context for further logging
func RollbarSetPerson(c buffalo.Context, id, username string) {
	rc, ok := c.Value(ContextKeyRollbar).(*rollbar.Client)
	if ok {
		rc.SetPerson(id, username, "")
	}
}

// GetBearerTokenFromRequest obtains the token from an Authorization header beginning
// with "Bearer". If not found, an empty string is returned.
func GetBearerTokenFromRequest(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return ""
	}

	re := regexp.MustCompile(`^(?i)Bearer (.*)$`)
	matches := re.FindSubmatch([]byte(authorizationHeader))
	if len(matches) < 2 {
		return ""
	}

	return string(matches[1])
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it. Errors are
// logged and ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		ErrLogger.Printf("error creating new uuid ... %v", err)
	}
	return id
}

// IsOtherThanNoRows returns false if the error is nil or is just reporting that there
// were no rows in the result set for a sql query.
func IsOtherThanNoRows(err error) bool {
	if err == nil {
		return false
	}

	if strings.Contains(err.Error(), sql.ErrNoRows.Error()) {
		return false
	}

	return true
}

// IsStringInSlice iterates over a slice of strings, looking for the given string. If
// found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

func MergeExtras(extras []map[string]interface{}) map[string]interface{} {
	allExtras := map[string]interface{}{}

	if len(extras) == 1 {
		return extras[0]
	}

	for _, e := range extras {
		for k, v := range e {
			allExtras[k] = v
		}
	}

	return allExtras
}
