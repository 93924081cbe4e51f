package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// QueueClaim is one row in an operator-facing triage queue listing.
// swagger:model
type QueueClaim struct {
	Claim Claim `json:"claim"`

	// LatestEvaluation is the authoritative (most recent) triage result, if any
	LatestEvaluation *Evaluation `json:"latest_evaluation,omitempty"`

	// Task is present only in the verification queue
	Task *Task `json:"task,omitempty"`
}

// swagger:model
type QueueListResponse struct {
	Items   []QueueClaim `json:"items"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

// VerificationTask is one row in a validator's verification queue: an open task and
// the claim it verifies.
// swagger:model
type VerificationTask struct {
	Task          Task      `json:"task"`
	ClaimID       uuid.UUID `json:"claim_id"`
	ReportURL     string    `json:"report_url"`
	TaskCreatedAt time.Time `json:"task_created_at"`
}

// swagger:model
type VerificationQueueResponse struct {
	Items   []VerificationTask `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}
