package models

import (
	"time"

	"github.com/verixa-platform/verixa-api/api"
)

func (ms *ModelSuite) TestSubmitValidation_Quorum() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	task := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 31, 2)
	validators := CreateUserFixtures(ms.DB, 3, api.UserRoleValidator).Users

	// first verdict, below quorum
	result, err := SubmitValidation(ms.DB, task.TaskID, validators[0].ID, api.SubmissionCreateInput{
		ResultCID: "bafyfirst",
	})
	ms.NoError(err)
	ms.False(result.TaskCompleted)
	ms.Equal(1, result.SubmissionCount)
	ms.Equal(2, result.RequiredValidators)

	// the same validator retries; the count must not move
	result, err = SubmitValidation(ms.DB, task.TaskID, validators[0].ID, api.SubmissionCreateInput{
		ResultCID: "bafyfirst-retry",
	})
	ms.NoError(err)
	ms.False(result.TaskCompleted)
	ms.Equal(1, result.SubmissionCount, "a resubmission must never raise the distinct count")

	var submissions ValidatorSubmissions
	ms.NoError(submissions.ListByTask(ms.DB, task.ID))
	ms.Len(submissions, 1)
	ms.Equal("bafyfirst-retry", submissions[0].ResultCID, "a resubmission overwrites in place")

	// second validator reaches quorum and wins the completion
	result, err = SubmitValidation(ms.DB, task.TaskID, validators[1].ID, api.SubmissionCreateInput{
		ResultCID: "bafysecond",
	})
	ms.NoError(err)
	ms.True(result.TaskCompleted)
	ms.Equal(2, result.SubmissionCount)

	var reloaded Task
	ms.NoError(reloaded.FindByID(ms.DB, task.ID))
	ms.Equal(api.TaskStatusCompleted, reloaded.Status)

	// a third verdict past quorum is accepted but does not complete again
	result, err = SubmitValidation(ms.DB, task.TaskID, validators[2].ID, api.SubmissionCreateInput{
		ResultCID: "bafythird",
	})
	ms.NoError(err)
	ms.False(result.TaskCompleted, "only the winning writer sees the completion")
	ms.Equal(3, result.SubmissionCount)
}

func (ms *ModelSuite) TestSubmitValidation_ConcurrentQuorum() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	task := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 61, 2)
	validators := CreateUserFixtures(ms.DB, 2, api.UserRoleValidator).Users

	txA, err := ms.DB.NewTransaction()
	ms.NoError(err)

	resultA, err := SubmitValidation(txA, task.TaskID, validators[0].ID, api.SubmissionCreateInput{
		ResultCID: "bafyracer-a",
	})
	ms.NoError(err)
	ms.False(resultA.TaskCompleted)
	ms.Equal(1, resultA.SubmissionCount)

	// The second verdict runs in its own transaction. It must block on the task row
	// lock until the first commits, then count both rows and complete the task.
	results := make(chan api.SubmissionResult, 1)
	errs := make(chan error, 1)
	go func() {
		txB, err := ms.DB.NewTransaction()
		if err != nil {
			errs <- err
			return
		}
		result, err := SubmitValidation(txB, task.TaskID, validators[1].ID, api.SubmissionCreateInput{
			ResultCID: "bafyracer-b",
		})
		if err != nil {
			_ = txB.TX.Rollback()
			errs <- err
			return
		}
		if err := txB.TX.Commit(); err != nil {
			errs <- err
			return
		}
		results <- result
	}()

	// let the second writer reach the lock before releasing it
	time.Sleep(100 * time.Millisecond)
	ms.NoError(txA.TX.Commit())

	select {
	case err := <-errs:
		ms.FailNow("concurrent submission failed: " + err.Error())
	case result := <-results:
		ms.True(result.TaskCompleted, "the writer that reaches quorum must see the completion")
		ms.Equal(2, result.SubmissionCount)
	case <-time.After(10 * time.Second):
		ms.FailNow("concurrent submission never finished")
	}

	var reloaded Task
	ms.NoError(reloaded.FindByID(ms.DB, task.ID))
	ms.Equal(api.TaskStatusCompleted, reloaded.Status)
}

func (ms *ModelSuite) TestSubmitValidation_Errors() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	validator := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	_, err := SubmitValidation(ms.DB, 404, validator.ID, api.SubmissionCreateInput{ResultCID: "bafy"})
	ms.EqualAppError(api.AppError{Key: api.ErrorTaskNotFound, Category: api.CategoryNotFound}, err)

	cancelled := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 41, 2)
	ms.NoError(cancelled.SetStatus(ms.DB, api.TaskStatusCancelled, nil))
	_, err = SubmitValidation(ms.DB, cancelled.TaskID, validator.ID, api.SubmissionCreateInput{ResultCID: "bafy"})
	ms.EqualAppError(api.AppError{Key: api.ErrorTaskStatus, Category: api.CategoryConflict}, err)

	open := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 42, 2)
	_, err = SubmitValidation(ms.DB, open.TaskID, validator.ID, api.SubmissionCreateInput{})
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestTask_CompleteOnce() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	task := createTaskFixture(ms.DB, fixtures.Claims[0], fixtures.Users[1].ID, 51, 1)

	won, err := task.completeOnce(ms.DB)
	ms.NoError(err)
	ms.True(won)

	// the transition happens exactly once regardless of how often it is attempted
	won, err = task.completeOnce(ms.DB)
	ms.NoError(err)
	ms.False(won)
}
