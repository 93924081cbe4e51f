package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation GET /queues/unverified-external Queues QueuesUnverifiedExternal
//
// # QueuesUnverifiedExternal
//
// list pending unverified claims no evaluator has scored yet
//
// ---
//
//	responses:
//	  '200':
//	    description: a page of queue rows
//	    schema:
//	      "$ref": "#/definitions/QueueListResponse"
func queuesUnverifiedExternal(c buffalo.Context) error {
	return renderQueue(c, models.QueueTagUnassessed)
}

// swagger:operation GET /queues/auto Queues QueuesAuto
//
// # QueuesAuto
//
// list claims whose latest evaluation routed them away from manual review
//
// ---
//
//	responses:
//	  '200':
//	    description: a page of queue rows
//	    schema:
//	      "$ref": "#/definitions/QueueListResponse"
func queuesAuto(c buffalo.Context) error {
	return renderQueue(c, models.QueueTagAuto)
}

// swagger:operation GET /queues/manual-review Queues QueuesManualReview
//
// # QueuesManualReview
//
// list claims awaiting a human reviewer, with no validation task opened yet
//
// ---
//
//	responses:
//	  '200':
//	    description: a page of queue rows
//	    schema:
//	      "$ref": "#/definitions/QueueListResponse"
func queuesManualReview(c buffalo.Context) error {
	return renderQueue(c, models.QueueTagManual)
}

// A claim in the manual bucket by definition has no open task, so these two listings
// are aliases of the manual-review queue kept for older clients.

func queuesManualReviewWithoutTask(c buffalo.Context) error {
	return renderQueue(c, models.QueueTagManual)
}

func queuesValidateDocuments(c buffalo.Context) error {
	return renderQueue(c, models.QueueTagManual)
}

// swagger:operation GET /queues/verification Queues QueuesVerification
//
// # QueuesVerification
//
// list open validation tasks for the requesting validator, excluding tasks they have
// already submitted to; completed tasks are included only with include_completed=true
//
// ---
//
//	parameters:
//	- name: include_completed
//	  in: query
//	  required: false
//	responses:
//	  '200':
//	    description: a page of verification tasks
//	    schema:
//	      "$ref": "#/definitions/VerificationQueueResponse"
func queuesVerification(c buffalo.Context) error {
	params, err := api.NewQueryParams(c.Params())
	if err != nil {
		return reportError(c, err)
	}

	includeCompleted := c.Param("include_completed") == "true"
	resp, err := models.ListVerificationQueue(models.Tx(c), models.CurrentUser(c).ID, params, includeCompleted)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, resp)
}

func renderQueue(c buffalo.Context, tag models.QueueTag) error {
	params, err := api.NewQueryParams(c.Params())
	if err != nil {
		return reportError(c, err)
	}

	resp, err := models.ListQueue(models.Tx(c), tag, params)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, resp)
}
