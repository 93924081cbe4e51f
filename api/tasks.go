package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type TaskStatus string

const (
	TaskStatusPending   = TaskStatus("pending")
	TaskStatusCompleted = TaskStatus("completed")
	TaskStatusCancelled = TaskStatus("cancelled")
)

// swagger:model
type Tasks []Task

// Task mirrors an on-chain validation job. TaskID is the externally-assigned id on the
// validation contract, not the row id.
// swagger:model
type Task struct {
	ID                 uuid.UUID    `json:"id"`
	UserID             uuid.UUID    `json:"user_id"`
	ContractAddress    string       `json:"contract_address"`
	TaskID             int64        `json:"task_id"`
	DocCID             string       `json:"doc_cid"`
	RequiredValidators int          `json:"required_validators"`
	Reward             RewardAmount `json:"reward"`
	TxHash             *string      `json:"tx_hash,omitempty"`
	ClaimID            uuid.UUID    `json:"claim_id"`
	Status             TaskStatus   `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
}

// TaskCreateInput has the payload for mirroring a newly created on-chain task. Reward
// is a decimal string; digits beyond three decimal places are truncated.
// swagger:model
type TaskCreateInput struct {
	ContractAddress    string     `json:"contract_address"`
	TaskID             int64      `json:"task_id"`
	DocCID             string     `json:"doc_cid"`
	RequiredValidators int        `json:"required_validators"`
	Reward             string     `json:"reward"`
	TxHash             *string    `json:"tx_hash,omitempty"`
	ClaimID            uuid.UUID  `json:"claim_id"`
	Status             TaskStatus `json:"status,omitempty"`
}

// swagger:model
type TaskStatusUpdateInput struct {
	Status TaskStatus `json:"status"`
	TxHash *string    `json:"tx_hash,omitempty"`
}

// CompletedTask is a completed task joined with claim display fields and its most
// recent validator submission.
// swagger:model
type CompletedTask struct {
	Task             Task                 `json:"task"`
	ClaimStatus      ClaimStatus          `json:"claim_status"`
	ClaimReportURL   string               `json:"claim_report_url"`
	InsuranceID      uuid.UUID            `json:"insurance_id"`
	LatestSubmission *ValidatorSubmission `json:"latest_submission,omitempty"`
}

// swagger:model
type CompletedTaskListResponse struct {
	Items []CompletedTask `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
}

// swagger:model
type TaskListResponse struct {
	Items Tasks `json:"items"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
}
