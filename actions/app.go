// Verixa API
//
// Claim verification and validator consensus API.
//
//	Schemes: https
//	Host: localhost
//	BasePath: /
//	Version: 0.0.1
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"
	paramlogger "github.com/gobuffalo/mw-paramlogger"

	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/verixa-platform/verixa-api/domain"
	"github.com/verixa-platform/verixa-api/listeners"
	"github.com/verixa-platform/verixa-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo should be defined.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env:  domain.Env.GoEnv,
			Addr: fmt.Sprintf("0.0.0.0:%d", domain.Env.ServerPort),
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_verixa_api_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		registerCustomErrorHandler(app)

		// Initialize and attach "rollbar" to context
		app.Use(domain.RollbarMiddleware)

		// Log request parameters (filters apply).
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction.
		app.Use(popmw.Transaction(models.DB))

		app.GET("/", homeHandler)

		usersGroup := app.Group("/users")
		usersGroup.Use(AuthN)
		usersGroup.Middleware.Skip(AuthN, usersCreate, usersLogin)
		usersGroup.POST("/", usersCreate)
		usersGroup.POST("/login", usersLogin)
		usersGroup.GET("/me", usersMe)

		uploadGroup := app.Group("/upload")
		uploadGroup.Use(AuthN)
		uploadGroup.POST("/", uploadHandler)

		claimsGroup := app.Group("/claims")
		claimsGroup.Use(AuthN)
		claimsGroup.POST("/", claimsCreate)
		claimsGroup.GET("/", claimsList)
		claimsGroup.POST("/status", claimsBulkStatus)
		claimsGroup.POST("/verified", claimsBulkVerified)
		claimsGroup.PUT("/{id}/status", claimsSetStatus)
		claimsGroup.GET("/{id}/evaluations", evaluationsListByClaim)
		claimsGroup.GET("/{id}/payments", paymentsListByClaim)

		evaluationsGroup := app.Group("/evaluations")
		evaluationsGroup.Use(AuthN)
		evaluationsGroup.POST("/", evaluationsCreate)
		evaluationsGroup.GET("/latest", evaluationsLatest)

		queuesGroup := app.Group("/queues")
		queuesGroup.Use(AuthN)
		queuesGroup.GET("/unverified-external", queuesUnverifiedExternal)
		queuesGroup.GET("/auto", queuesAuto)
		queuesGroup.GET("/manual-review", queuesManualReview)
		queuesGroup.GET("/manual-review-without-task", queuesManualReviewWithoutTask)
		queuesGroup.GET("/validate-documents", queuesValidateDocuments)
		queuesGroup.GET("/verification", queuesVerification)

		tasksGroup := app.Group("/tasks")
		tasksGroup.Use(AuthN)
		tasksGroup.POST("/", tasksCreate)
		tasksGroup.GET("/completed", tasksCompleted)
		tasksGroup.GET("/active", tasksActive)
		tasksGroup.PUT("/{task_id}/status", tasksSetStatus)
		tasksGroup.POST("/{task_id}/submissions", submissionsCreate)
		tasksGroup.GET("/{task_id}/submissions", submissionsList)

		paymentsGroup := app.Group("/payments")
		paymentsGroup.Use(AuthN)
		paymentsGroup.POST("/", paymentsCreate)
		paymentsGroup.POST("/existence-check", paymentsExistenceCheck)

		docsGroup := app.Group("/issued-documents")
		docsGroup.Use(AuthN)
		docsGroup.POST("/", issuedDocumentsCreate)
		docsGroup.GET("/", issuedDocumentsList)

		listeners.RegisterListeners()
	}

	return app
}
