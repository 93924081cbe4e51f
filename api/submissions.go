package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// SubmissionStatusSubmitted is the only submission status; a resubmission overwrites
// the previous row rather than adding a new one.
const SubmissionStatusSubmitted = "submitted"

// swagger:model
type ValidatorSubmissions []ValidatorSubmission

// swagger:model
type ValidatorSubmission struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	ValidatorID uuid.UUID `json:"validator_id"`
	ResultCID   string    `json:"result_cid"`
	TxHash      *string   `json:"tx_hash,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// swagger:model
type SubmissionCreateInput struct {
	ResultCID string  `json:"result_cid"`
	TxHash    *string `json:"tx_hash,omitempty"`
}

// SubmissionResult reports the outcome of a validator submission. TaskCompleted is true
// only for the submission that caused the task to reach quorum; a later duplicate
// trigger sees the task already completed.
// swagger:model
type SubmissionResult struct {
	Submission         ValidatorSubmission `json:"submission"`
	TaskCompleted      bool                `json:"task_completed"`
	SubmissionCount    int                 `json:"submission_count"`
	RequiredValidators int                 `json:"required_validators"`
}

// swagger:model
type SubmissionListResponse struct {
	Items ValidatorSubmissions `json:"items"`
	Total int                  `json:"total"`
}
