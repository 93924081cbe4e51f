package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
)

var ValidTaskStatus = map[api.TaskStatus]struct{}{
	api.TaskStatusPending:   {},
	api.TaskStatusCompleted: {},
	api.TaskStatusCancelled: {},
}

type Tasks []Task

// Task mirrors a validation job on the chain. TaskID is the id the contract assigned;
// rows are resolved by it, not by the primary key.
type Task struct {
	ID                 uuid.UUID        `db:"id"`
	UserID             uuid.UUID        `db:"user_id" validate:"required"`
	ContractAddress    string           `db:"contract_address" validate:"required"`
	TaskID             int64            `db:"task_id"`
	DocCID             string           `db:"doc_cid" validate:"required"`
	RequiredValidators int              `db:"required_validators"`
	Reward             api.RewardAmount `db:"reward"`
	TxHash             nulls.String     `db:"tx_hash"`
	ClaimID            uuid.UUID        `db:"claim_id" validate:"required"`
	Status             api.TaskStatus   `db:"status" validate:"taskStatus"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

// String can be helpful for serializing the model
func (t Task) String() string {
	jt, _ := json.Marshal(t)
	return string(jt)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (t *Task) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(t), nil
}

// Create stores the Task data as a new record in the database.
func (t *Task) Create(tx *pop.Connection) error {
	if _, ok := ValidTaskStatus[t.Status]; !ok {
		t.Status = api.TaskStatusPending
	}
	return create(tx, t)
}

// Update writes the Task data to an existing database record.
func (t *Task) Update(tx *pop.Connection) error {
	return update(tx, t)
}

func (t *Task) GetID() uuid.UUID {
	return t.ID
}

func (t *Task) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, t, id)
}

// FindByExternalID loads the task the contract knows by the given id.
func (t *Task) FindByExternalID(tx *pop.Connection, taskID int64) error {
	if err := tx.Where("task_id = ?", taskID).First(t); err != nil {
		appErr := api.NewAppError(err, api.ErrorTaskNotFound, api.CategoryNotFound)
		appErr.Message = fmt.Sprintf("no task with external id %d", taskID)
		return appErr
	}
	return nil
}

// findByExternalIDForUpdate loads the task and takes a row lock held until the
// transaction ends, so writers racing on the same task serialize on it.
func (t *Task) findByExternalIDForUpdate(tx *pop.Connection, taskID int64) error {
	if err := tx.RawQuery("SELECT * FROM tasks WHERE task_id = ? FOR UPDATE", taskID).First(t); err != nil {
		appErr := api.NewAppError(err, api.ErrorTaskNotFound, api.CategoryNotFound)
		appErr.Message = fmt.Sprintf("no task with external id %d", taskID)
		return appErr
	}
	return nil
}

// CreateTaskFromInput validates and stores a new task mirror row.
func CreateTaskFromInput(tx *pop.Connection, userID uuid.UUID, input api.TaskCreateInput) (Task, error) {
	task := Task{
		UserID:             userID,
		ContractAddress:    input.ContractAddress,
		TaskID:             input.TaskID,
		DocCID:             input.DocCID,
		RequiredValidators: input.RequiredValidators,
		ClaimID:            input.ClaimID,
		Status:             input.Status,
	}

	if input.RequiredValidators < 1 {
		err := fmt.Errorf("required_validators must be positive, got %d", input.RequiredValidators)
		return task, api.NewAppError(err, api.ErrorTaskRequiredValidators, api.CategoryUser)
	}

	reward, err := api.ParseRewardAmount(input.Reward)
	if err != nil {
		return task, api.NewAppError(err, api.ErrorTaskRewardAmount, api.CategoryUser)
	}
	task.Reward = reward

	if input.TxHash != nil {
		task.TxHash = nulls.NewString(*input.TxHash)
	}

	if err := task.Create(tx); err != nil {
		return task, err
	}
	return task, nil
}

// SetStatus overwrites the task status and, when given, the transaction hash.
func (t *Task) SetStatus(tx *pop.Connection, status api.TaskStatus, txHash *string) error {
	if _, ok := ValidTaskStatus[status]; !ok {
		err := fmt.Errorf("invalid task status %q", status)
		return api.NewAppError(err, api.ErrorTaskStatus, api.CategoryUser)
	}

	t.Status = status
	if txHash != nil {
		t.TxHash = nulls.NewString(*txHash)
	}
	return update(tx, t)
}

// ListCompleted returns completed tasks, newest first, with their claim display
// fields and the most recent submission for each. When validatorID is given, only
// tasks that validator submitted to are returned.
func ListCompleted(tx *pop.Connection, params api.QueryParams, validatorID *uuid.UUID) ([]api.CompletedTask, int, error) {
	q := tx.Where("status = ?", api.TaskStatusCompleted)
	if validatorID != nil {
		q = q.Where("id IN (SELECT task_id FROM validator_submissions WHERE validator_id = ?)", *validatorID)
	}

	var tasks Tasks
	q = q.Order("created_at desc").Paginate(params.Page(), params.PerPage())
	if err := q.All(&tasks); err != nil {
		return nil, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	total := q.Paginator.TotalEntriesSize

	claims, err := claimsByID(tx, tasks)
	if err != nil {
		return nil, 0, err
	}

	latest, err := latestSubmissions(tx, tasks)
	if err != nil {
		return nil, 0, err
	}

	completed := make([]api.CompletedTask, len(tasks))
	for i, t := range tasks {
		item := api.CompletedTask{Task: t.ConvertToAPI()}
		if claim, ok := claims[t.ClaimID]; ok {
			item.ClaimStatus = claim.Status
			item.ClaimReportURL = claim.ReportURL
			item.InsuranceID = claim.InsuranceID
		}
		if sub, ok := latest[t.ID]; ok {
			s := sub.ConvertToAPI()
			item.LatestSubmission = &s
		}
		completed[i] = item
	}
	return completed, total, nil
}

// ListActiveForValidator returns pending tasks the validator has not yet submitted
// to, newest first.
func ListActiveForValidator(tx *pop.Connection, validatorID uuid.UUID, params api.QueryParams) (Tasks, int, error) {
	var tasks Tasks
	q := tx.Where("status = ?", api.TaskStatusPending).
		Where("id NOT IN (SELECT task_id FROM validator_submissions WHERE validator_id = ?)", validatorID).
		Order("created_at desc").
		Paginate(params.Page(), params.PerPage())
	if err := q.All(&tasks); err != nil {
		return tasks, 0, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return tasks, q.Paginator.TotalEntriesSize, nil
}

func claimsByID(tx *pop.Connection, tasks Tasks) (map[uuid.UUID]Claim, error) {
	byID := map[uuid.UUID]Claim{}
	if len(tasks) == 0 {
		return byID, nil
	}

	ids := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ClaimID
	}

	var claims Claims
	if err := tx.Where("id in (?)", ids).All(&claims); err != nil {
		return byID, appErrorFromDB(err, api.ErrorQueryFailure)
	}
	for _, c := range claims {
		byID[c.ID] = c
	}
	return byID, nil
}

// ConvertToAPI converts a models.Task to an api.Task
func (t *Task) ConvertToAPI() api.Task {
	return api.Task{
		ID:                 t.ID,
		UserID:             t.UserID,
		ContractAddress:    t.ContractAddress,
		TaskID:             t.TaskID,
		DocCID:             t.DocCID,
		RequiredValidators: t.RequiredValidators,
		Reward:             t.Reward,
		TxHash:             convertStringToAPI(t.TxHash),
		ClaimID:            t.ClaimID,
		Status:             t.Status,
		CreatedAt:          t.CreatedAt,
	}
}

// ConvertToAPI converts a models.Tasks to an api.Tasks
func (t *Tasks) ConvertToAPI() api.Tasks {
	tasks := make(api.Tasks, len(*t))
	for i, tt := range *t {
		tasks[i] = tt.ConvertToAPI()
	}
	return tasks
}
