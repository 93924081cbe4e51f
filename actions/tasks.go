package actions

import (
	"fmt"
	"strconv"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /tasks Tasks TasksCreate
//
// # TasksCreate
//
// mirror a newly created on-chain validation task
//
// ---
//
//	parameters:
//	- name: task input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/TaskCreateInput"
//	responses:
//	  '200':
//	    description: the new Task
//	    schema:
//	      "$ref": "#/definitions/Task"
func tasksCreate(c buffalo.Context) error {
	var input api.TaskCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	task, err := models.CreateTaskFromInput(models.Tx(c), models.CurrentUser(c).ID, input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, task.ConvertToAPI())
}

// swagger:operation PUT /tasks/{task_id}/status Tasks TasksSetStatus
//
// # TasksSetStatus
//
// overwrite the status of a task, addressed by its on-chain task id, optionally
// recording a new transaction hash
//
// ---
//
//	parameters:
//	- name: task_id
//	  in: path
//	  required: true
//	  description: on-chain task id
//	- name: status input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/TaskStatusUpdateInput"
//	responses:
//	  '200':
//	    description: the updated Task
//	    schema:
//	      "$ref": "#/definitions/Task"
func tasksSetStatus(c buffalo.Context) error {
	tx := models.Tx(c)

	externalID, err := parseExternalTaskID(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.TaskStatusUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	var task models.Task
	if err := task.FindByExternalID(tx, externalID); err != nil {
		return reportError(c, err)
	}

	if err := task.SetStatus(tx, input.Status, input.TxHash); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, task.ConvertToAPI())
}

// swagger:operation GET /tasks/completed Tasks TasksCompleted
//
// # TasksCompleted
//
// list completed tasks with claim display fields and the most recent submission;
// mine=true limits the listing to tasks the requesting validator submitted to
//
// ---
//
//	parameters:
//	- name: mine
//	  in: query
//	  required: false
//	responses:
//	  '200':
//	    description: a page of completed tasks
//	    schema:
//	      "$ref": "#/definitions/CompletedTaskListResponse"
func tasksCompleted(c buffalo.Context) error {
	params, err := api.NewQueryParams(c.Params())
	if err != nil {
		return reportError(c, err)
	}

	var validatorID *uuid.UUID
	if c.Param("mine") == "true" {
		id := models.CurrentUser(c).ID
		validatorID = &id
	}

	items, total, err := models.ListCompleted(models.Tx(c), params, validatorID)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.CompletedTaskListResponse{
		Items: items,
		Total: total,
		Page:  params.Page(),
	})
}

// swagger:operation GET /tasks/active Tasks TasksActive
//
// # TasksActive
//
// list pending tasks the requesting validator has not yet submitted to
//
// ---
//
//	responses:
//	  '200':
//	    description: a page of Tasks
//	    schema:
//	      "$ref": "#/definitions/TaskListResponse"
func tasksActive(c buffalo.Context) error {
	params, err := api.NewQueryParams(c.Params())
	if err != nil {
		return reportError(c, err)
	}

	tasks, total, err := models.ListActiveForValidator(models.Tx(c), models.CurrentUser(c).ID, params)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.TaskListResponse{
		Items: tasks.ConvertToAPI(),
		Total: total,
		Page:  params.Page(),
	})
}

func parseExternalTaskID(c buffalo.Context) (int64, error) {
	param := c.Param("task_id")
	externalID, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		err = fmt.Errorf("invalid task id %q, %w", param, err)
		return 0, api.NewAppError(err, api.ErrorTaskNotFound, api.CategoryNotFound)
	}
	return externalID, nil
}
