package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type EvaluationBucket string

const (
	EvaluationBucketAuto   = EvaluationBucket("auto")
	EvaluationBucketManual = EvaluationBucket("manual")
	EvaluationBucketReject = EvaluationBucket("reject")
)

// swagger:model
type Evaluations []Evaluation

// swagger:model
type Evaluation struct {
	ID          uuid.UUID `json:"id"`
	ClaimID     uuid.UUID `json:"claim_id"`
	ReportType  string    `json:"report_type"`
	DocumentURL string    `json:"document_url"`
	AIScore     int       `json:"ai_score"`
	Bucket      *string   `json:"bucket,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// EvaluationCreateInput is one scored claim in a triage batch.
// swagger:model
type EvaluationCreateInput struct {
	ClaimID     uuid.UUID `json:"claim_id"`
	ReportType  string    `json:"report_type"`
	DocumentURL string    `json:"document_url"`
	AIScore     int       `json:"ai_score"`
	Bucket      *string   `json:"bucket,omitempty"`
}

// swagger:model
type EvaluationBatchInput struct {
	Evaluations []EvaluationCreateInput `json:"evaluations"`
}

// swagger:model
type EvaluationBatchResponse struct {
	Recorded int `json:"recorded"`

	// AutoApproved lists the claims flipped to approved by an "auto" bucket in this batch
	AutoApproved []uuid.UUID `json:"auto_approved"`
}
