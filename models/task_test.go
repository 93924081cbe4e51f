package models

import (
	"testing"

	"github.com/verixa-platform/verixa-api/api"
)

func (ms *ModelSuite) TestCreateTaskFromInput() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	claim := fixtures.Claims[0]
	insurance := fixtures.Users[1]

	tests := []struct {
		name         string
		input        api.TaskCreateInput
		wantKey      api.ErrorKey
		wantCategory api.ErrorCategory
	}{
		{
			name: "zero validators",
			input: api.TaskCreateInput{
				ContractAddress:    "0xabc",
				TaskID:             7,
				DocCID:             "bafy123",
				RequiredValidators: 0,
				Reward:             "1.5",
				ClaimID:            claim.ID,
			},
			wantKey:      api.ErrorTaskRequiredValidators,
			wantCategory: api.CategoryUser,
		},
		{
			name: "bad reward string",
			input: api.TaskCreateInput{
				ContractAddress:    "0xabc",
				TaskID:             7,
				DocCID:             "bafy123",
				RequiredValidators: 3,
				Reward:             "one and a half",
				ClaimID:            claim.ID,
			},
			wantKey:      api.ErrorTaskRewardAmount,
			wantCategory: api.CategoryUser,
		},
	}

	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			_, err := CreateTaskFromInput(ms.DB, insurance.ID, tt.input)
			ms.EqualAppError(api.AppError{Key: tt.wantKey, Category: tt.wantCategory}, err)
		})
	}

	// reward digits beyond three decimals are truncated, not rounded
	task, err := CreateTaskFromInput(ms.DB, insurance.ID, api.TaskCreateInput{
		ContractAddress:    "0xabc",
		TaskID:             7,
		DocCID:             "bafy123",
		RequiredValidators: 3,
		Reward:             "1.9999",
		ClaimID:            claim.ID,
	})
	ms.NoError(err)
	ms.Equal(api.RewardAmount(1999), task.Reward)
	ms.Equal(api.TaskStatusPending, task.Status, "missing status must default to pending")

	var found Task
	ms.NoError(found.FindByExternalID(ms.DB, 7))
	ms.Equal(task.ID, found.ID)

	err = found.FindByExternalID(ms.DB, 999)
	ms.EqualAppError(api.AppError{Key: api.ErrorTaskNotFound, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestTask_SetStatus() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	task := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 11, 2)

	err := task.SetStatus(ms.DB, api.TaskStatus("bogus"), nil)
	ms.EqualAppError(api.AppError{Key: api.ErrorTaskStatus, Category: api.CategoryUser}, err)

	hash := "0xdeadbeef"
	ms.NoError(task.SetStatus(ms.DB, api.TaskStatusCancelled, &hash))

	var reloaded Task
	ms.NoError(reloaded.FindByID(ms.DB, task.ID))
	ms.Equal(api.TaskStatusCancelled, reloaded.Status)
	ms.Equal(hash, reloaded.TxHash.String)
}

func (ms *ModelSuite) TestListActiveForValidator() {
	fixtures := CreateClaimFixtures(ms.DB, 3)
	insurance := fixtures.Users[1]
	validator := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	open := createTaskFixture(ms.DB, fixtures.Claims[0], insurance.ID, 1, 2)
	submitted := createTaskFixture(ms.DB, fixtures.Claims[1], insurance.ID, 2, 2)
	done := createTaskFixture(ms.DB, fixtures.Claims[2], insurance.ID, 3, 1)
	ms.NoError(done.SetStatus(ms.DB, api.TaskStatusCompleted, nil))

	_, err := SubmitValidation(ms.DB, submitted.TaskID, validator.ID, api.SubmissionCreateInput{
		ResultCID: "bafyresult",
	})
	ms.NoError(err)

	params, err := api.NewQueryParams(emptyParams{})
	ms.NoError(err)

	tasks, total, err := ListActiveForValidator(ms.DB, validator.ID, params)
	ms.NoError(err)
	ms.Equal(1, total)
	ms.Len(tasks, 1)
	ms.Equal(open.ID, tasks[0].ID)
}

func (ms *ModelSuite) TestListCompleted() {
	fixtures := CreateClaimFixtures(ms.DB, 2)
	claim := fixtures.Claims[0]
	insurance := fixtures.Users[1]
	validator := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	task := createTaskFixture(ms.DB, claim, insurance.ID, 21, 1)
	createTaskFixture(ms.DB, fixtures.Claims[1], insurance.ID, 22, 2)

	result, err := SubmitValidation(ms.DB, task.TaskID, validator.ID, api.SubmissionCreateInput{
		ResultCID: "bafyresult",
	})
	ms.NoError(err)
	ms.True(result.TaskCompleted)

	params, err := api.NewQueryParams(emptyParams{})
	ms.NoError(err)

	completed, total, err := ListCompleted(ms.DB, params, nil)
	ms.NoError(err)
	ms.Equal(1, total)
	ms.Len(completed, 1)
	ms.Equal(task.ID, completed[0].Task.ID)
	ms.Equal(claim.ReportURL, completed[0].ClaimReportURL)
	ms.Equal(claim.InsuranceID, completed[0].InsuranceID)
	ms.NotNil(completed[0].LatestSubmission)
	ms.Equal("bafyresult", completed[0].LatestSubmission.ResultCID)

	// filtered to a validator who submitted nothing
	other := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]
	completed, total, err = ListCompleted(ms.DB, params, &other.ID)
	ms.NoError(err)
	ms.Equal(0, total)
	ms.Len(completed, 0)
}

// emptyParams satisfies buffalo.ParamValues for query parameter defaults in tests
type emptyParams struct{}

func (emptyParams) Get(string) string { return "" }
