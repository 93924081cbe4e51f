package actions

import (
	"net/http"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

func (as *ActionSuite) Test_TasksCreateAndQuorum() {
	f := models.CreateClaimFixtures(as.DB, 1)
	insurance := f.Users[1]
	validators := models.CreateUserFixtures(as.DB, 2, api.UserRoleValidator).Users

	res := as.authedJSON(insurance, "/tasks").Post(api.TaskCreateInput{
		ContractAddress:    "0xcontract0000000000000000000000000000beef",
		TaskID:             9001,
		DocCID:             "bafybeigdoccid",
		RequiredValidators: 2,
		Reward:             "1.5",
		ClaimID:            f.Claims[0].ID,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var task api.Task
	as.decodeBody(res.Body.Bytes(), &task)
	as.Equal(api.TaskStatusPending, task.Status)
	as.Equal(api.RewardAmount(1500), task.Reward)

	// first validator submits, quorum not yet reached
	res = as.authedJSON(validators[0], "/tasks/9001/submissions").
		Post(api.SubmissionCreateInput{ResultCID: "bafyresult0"})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var result api.SubmissionResult
	as.decodeBody(res.Body.Bytes(), &result)
	as.False(result.TaskCompleted)
	as.Equal(1, result.SubmissionCount)

	// a resubmission does not raise the count
	res = as.authedJSON(validators[0], "/tasks/9001/submissions").
		Post(api.SubmissionCreateInput{ResultCID: "bafyresult0-retry"})
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &result)
	as.False(result.TaskCompleted)
	as.Equal(1, result.SubmissionCount)

	// second validator reaches quorum and completes the task
	res = as.authedJSON(validators[1], "/tasks/9001/submissions").
		Post(api.SubmissionCreateInput{ResultCID: "bafyresult1"})
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &result)
	as.True(result.TaskCompleted)
	as.Equal(2, result.SubmissionCount)

	res = as.authedJSON(validators[0], "/tasks/9001/submissions").Get()
	as.Equal(http.StatusOK, res.Code)

	var list api.SubmissionListResponse
	as.decodeBody(res.Body.Bytes(), &list)
	as.Equal(2, list.Total)

	// the completed listing carries the claim display fields
	res = as.authedJSON(validators[0], "/tasks/completed?mine=true").Get()
	as.Equal(http.StatusOK, res.Code)

	var completed api.CompletedTaskListResponse
	as.decodeBody(res.Body.Bytes(), &completed)
	as.Equal(1, completed.Total)
	as.Equal(f.Claims[0].ID, completed.Items[0].Task.ClaimID)
}

func (as *ActionSuite) Test_TasksSetStatus() {
	f := models.CreateClaimFixtures(as.DB, 1)
	insurance := f.Users[1]

	res := as.authedJSON(insurance, "/tasks").Post(api.TaskCreateInput{
		ContractAddress:    "0xcontract0000000000000000000000000000cafe",
		TaskID:             42,
		DocCID:             "bafybeigdoccid",
		RequiredValidators: 1,
		Reward:             "0.25",
		ClaimID:            f.Claims[0].ID,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	txHash := "0xdeadbeef"
	res = as.authedJSON(insurance, "/tasks/42/status").Put(api.TaskStatusUpdateInput{
		Status: api.TaskStatusCancelled,
		TxHash: &txHash,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var task api.Task
	as.decodeBody(res.Body.Bytes(), &task)
	as.Equal(api.TaskStatusCancelled, task.Status)
	as.NotNil(task.TxHash)
	as.Equal(txHash, *task.TxHash)

	// unknown external id
	res = as.authedJSON(insurance, "/tasks/777/status").Put(api.TaskStatusUpdateInput{
		Status: api.TaskStatusCancelled,
	})
	as.Equal(http.StatusNotFound, res.Code)

	// a cancelled task refuses submissions
	validator := models.CreateUserFixtures(as.DB, 1, api.UserRoleValidator).Users[0]
	res = as.authedJSON(validator, "/tasks/42/submissions").
		Post(api.SubmissionCreateInput{ResultCID: "bafylate"})
	as.Equal(http.StatusConflict, res.Code)
}
