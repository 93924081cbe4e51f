package domain

import (
	"github.com/gobuffalo/buffalo"
	"github.com/rollbar/rollbar-go"
)

// Error logs an error message and sends it to Rollbar when a client is on the context
func Error(c buffalo.Context, msg string, extras ...map[string]interface{}) {
	es := MergeExtras(extras)
	c.Logger().Error(msg, es)
	rollbarMessage(c, rollbar.ERR, msg, es)
}

// Info logs an informational message and sends it to Rollbar when a client is on the context
func Info(c buffalo.Context, msg string, extras ...map[string]interface{}) {
	es := MergeExtras(extras)
	c.Logger().Info(msg, es)
	rollbarMessage(c, rollbar.INFO, msg, es)
}

func rollbarMessage(c buffalo.Context, level, msg string, extras map[string]interface{}) {
	rc, ok := c.Value(ContextKeyRollbar).(*rollbar.Client)
	if !ok {
		return
	}
	rc.MessageWithExtras(level, msg, extras)
}

// NewExtra adds a key/value pair to the error context saved on the Buffalo context
func NewExtra(c buffalo.Context, key string, e interface{}) {
	extras, _ := c.Value(ContextKeyExtras).(map[string]interface{})
	if extras == nil {
		extras = map[string]interface{}{}
	}
	extras[key] = e
	c.Set(ContextKeyExtras, extras)
}
