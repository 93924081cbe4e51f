package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
)

type ValidatorSubmissions []ValidatorSubmission

// ValidatorSubmission is one validator's verdict on a task. A validator has at most
// one row per task; resubmitting overwrites the verdict in place.
type ValidatorSubmission struct {
	ID          uuid.UUID    `db:"id"`
	TaskID      uuid.UUID    `db:"task_id" validate:"required"`
	ValidatorID uuid.UUID    `db:"validator_id" validate:"required"`
	ResultCID   string       `db:"result_cid" validate:"required"`
	TxHash      nulls.String `db:"tx_hash"`
	Status      string       `db:"status" validate:"required"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// String can be helpful for serializing the model
func (v ValidatorSubmission) String() string {
	jv, _ := json.Marshal(v)
	return string(jv)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (v *ValidatorSubmission) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(v), nil
}

// SubmitValidation records a validator's verdict on the task the contract knows by
// taskID and completes the task when quorum is reached. The submission is an upsert
// keyed on (task_id, validator_id), so a retried request never raises the distinct
// validator count. The task row is locked for the rest of the transaction, which
// serializes concurrent submissions to the same task; each quorum count therefore
// includes every earlier writer's committed row. Completion is a conditional update;
// exactly one submission observes TaskCompleted true no matter how many reach quorum.
func SubmitValidation(tx *pop.Connection, taskID int64, validatorID uuid.UUID, input api.SubmissionCreateInput) (api.SubmissionResult, error) {
	var result api.SubmissionResult

	var task Task
	if err := task.findByExternalIDForUpdate(tx, taskID); err != nil {
		return result, err
	}

	if task.Status == api.TaskStatusCancelled {
		err := fmt.Errorf("task %d is cancelled and no longer accepts submissions", taskID)
		return result, api.NewAppError(err, api.ErrorTaskStatus, api.CategoryConflict)
	}

	submission := ValidatorSubmission{
		ID:          domain.GetUUID(),
		TaskID:      task.ID,
		ValidatorID: validatorID,
		ResultCID:   input.ResultCID,
		Status:      api.SubmissionStatusSubmitted,
	}
	if input.TxHash != nil {
		submission.TxHash = nulls.NewString(*input.TxHash)
	}

	if vErrs := validateModel(&submission); vErrs.HasAny() {
		return result, api.NewAppError(
			errors.New(flattenPopErrors(vErrs)), api.ErrorValidation, api.CategoryUser)
	}

	q := `INSERT INTO validator_submissions
		(id, task_id, validator_id, result_cid, tx_hash, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (task_id, validator_id) DO UPDATE
		SET result_cid = EXCLUDED.result_cid, tx_hash = EXCLUDED.tx_hash, updated_at = now()
		RETURNING id, created_at, updated_at`
	var row struct {
		ID        uuid.UUID `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := tx.RawQuery(q, submission.ID, submission.TaskID, submission.ValidatorID,
		submission.ResultCID, submission.TxHash, submission.Status).First(&row); err != nil {
		return result, appErrorFromDB(err, api.ErrorCreateFailure)
	}
	submission.ID = row.ID
	submission.CreatedAt = row.CreatedAt
	submission.UpdatedAt = row.UpdatedAt

	count, err := countDistinctValidators(tx, task.ID)
	if err != nil {
		return result, err
	}

	result.Submission = submission.ConvertToAPI()
	result.SubmissionCount = count
	result.RequiredValidators = task.RequiredValidators

	if count >= task.RequiredValidators {
		won, err := task.completeOnce(tx)
		if err != nil {
			return result, err
		}
		result.TaskCompleted = won

		if won {
			emitEvent(events.Event{
				Kind:    domain.EventApiTaskCompleted,
				Message: "task reached validator quorum",
				Payload: events.Payload{domain.EventPayloadID: task.ID.String()},
			})
		}
	}

	return result, nil
}

// completeOnce transitions the task to completed and reports whether this caller made
// the transition. Zero rows means another writer already completed it.
func (t *Task) completeOnce(tx *pop.Connection) (bool, error) {
	count, err := tx.RawQuery(
		"UPDATE tasks SET status = ?, updated_at = now() WHERE id = ? AND status <> ?",
		api.TaskStatusCompleted, t.ID, api.TaskStatusCompleted).ExecWithCount()
	if err != nil {
		return false, appErrorFromDB(err, api.ErrorUpdateFailure)
	}
	t.Status = api.TaskStatusCompleted
	return count == 1, nil
}

func countDistinctValidators(tx *pop.Connection, taskID uuid.UUID) (int, error) {
	var row struct {
		Count int `db:"count"`
	}
	err := tx.RawQuery(
		"SELECT COUNT(DISTINCT validator_id) AS count FROM validator_submissions WHERE task_id = ?",
		taskID).First(&row)
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return row.Count, nil
}

// ListByTask returns all submissions for a task, newest activity first.
func (v *ValidatorSubmissions) ListByTask(tx *pop.Connection, taskID uuid.UUID) error {
	err := tx.Where("task_id = ?", taskID).Order("updated_at desc, id desc").All(v)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// HasSubmitted reports whether the validator already has a submission for the task.
func HasSubmitted(tx *pop.Connection, taskID, validatorID uuid.UUID) (bool, error) {
	n, err := tx.Where("task_id = ?", taskID).Where("validator_id = ?", validatorID).
		Count(&ValidatorSubmission{})
	if err != nil {
		return false, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return n > 0, nil
}

// latestSubmissions returns the most recently updated submission for each task.
func latestSubmissions(tx *pop.Connection, tasks Tasks) (map[uuid.UUID]ValidatorSubmission, error) {
	latest := map[uuid.UUID]ValidatorSubmission{}
	if len(tasks) == 0 {
		return latest, nil
	}

	marks := make([]string, len(tasks))
	params := make([]any, len(tasks))
	for i, t := range tasks {
		marks[i] = "?"
		params[i] = t.ID
	}

	var submissions ValidatorSubmissions
	q := fmt.Sprintf(`SELECT DISTINCT ON (task_id) * FROM validator_submissions
		WHERE task_id IN (%s) ORDER BY task_id, updated_at DESC, id DESC`,
		strings.Join(marks, ","))
	if err := tx.RawQuery(q, params...).All(&submissions); err != nil {
		return latest, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	for _, s := range submissions {
		latest[s.TaskID] = s
	}
	return latest, nil
}

// ConvertToAPI converts a models.ValidatorSubmission to an api.ValidatorSubmission
func (v *ValidatorSubmission) ConvertToAPI() api.ValidatorSubmission {
	return api.ValidatorSubmission{
		ID:          v.ID,
		TaskID:      v.TaskID,
		ValidatorID: v.ValidatorID,
		ResultCID:   v.ResultCID,
		TxHash:      convertStringToAPI(v.TxHash),
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ConvertToAPI converts a models.ValidatorSubmissions to an api.ValidatorSubmissions
func (v *ValidatorSubmissions) ConvertToAPI() api.ValidatorSubmissions {
	submissions := make(api.ValidatorSubmissions, len(*v))
	for i, vv := range *v {
		submissions[i] = vv.ConvertToAPI()
	}
	return submissions
}
