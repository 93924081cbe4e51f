package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /tasks/{task_id}/submissions Submissions SubmissionsCreate
//
// # SubmissionsCreate
//
// submit (or idempotently resubmit) a validation result for a task, addressed by its
// on-chain task id; reaching quorum completes the task exactly once
//
// ---
//
//	parameters:
//	- name: task_id
//	  in: path
//	  required: true
//	  description: on-chain task id
//	- name: submission input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/SubmissionCreateInput"
//	responses:
//	  '200':
//	    description: the submission outcome
//	    schema:
//	      "$ref": "#/definitions/SubmissionResult"
func submissionsCreate(c buffalo.Context) error {
	externalID, err := parseExternalTaskID(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.SubmissionCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	result, err := models.SubmitValidation(models.Tx(c), externalID, models.CurrentUser(c).ID, input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, result)
}

// swagger:operation GET /tasks/{task_id}/submissions Submissions SubmissionsList
//
// # SubmissionsList
//
// list the validator submissions recorded for a task, most recently updated first
//
// ---
//
//	parameters:
//	- name: task_id
//	  in: path
//	  required: true
//	  description: on-chain task id
//	responses:
//	  '200':
//	    description: a list of ValidatorSubmissions
//	    schema:
//	      "$ref": "#/definitions/SubmissionListResponse"
func submissionsList(c buffalo.Context) error {
	tx := models.Tx(c)

	externalID, err := parseExternalTaskID(c)
	if err != nil {
		return reportError(c, err)
	}

	var task models.Task
	if err := task.FindByExternalID(tx, externalID); err != nil {
		return reportError(c, err)
	}

	var submissions models.ValidatorSubmissions
	if err := submissions.ListByTask(tx, task.ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.SubmissionListResponse{
		Items: submissions.ConvertToAPI(),
		Total: len(submissions),
	})
}
