package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type ClaimStatus string

const (
	ClaimStatusPending  = ClaimStatus("pending")
	ClaimStatusApproved = ClaimStatus("approved")
	ClaimStatusRejected = ClaimStatus("rejected")
)

// swagger:model
type Claims []Claim

// swagger:model
type Claim struct {
	ID          uuid.UUID   `json:"id"`
	PatientID   uuid.UUID   `json:"patient_id"`
	InsuranceID uuid.UUID   `json:"insurance_id"`
	ReportURL   string      `json:"report_url"`
	IsVerified  bool        `json:"is_verified"`
	IssuedBy    *uuid.UUID  `json:"issued_by,omitempty"`
	Status      ClaimStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ClaimCreateInput has the payload for creating a new Claim. Exactly one report source
// is used: a platform-issued document (issued_doc_id), a previously uploaded file
// (file_id), or a direct report_url.
// swagger:model
type ClaimCreateInput struct {
	PatientID   uuid.UUID  `json:"patient_id"`
	InsuranceID uuid.UUID  `json:"insurance_id"`
	IsVerified  bool       `json:"is_verified"`
	IssuedBy    *uuid.UUID `json:"issued_by,omitempty"`
	IssuedDocID *uuid.UUID `json:"issued_doc_id,omitempty"`
	FileID      *uuid.UUID `json:"file_id,omitempty"`
	ReportURL   string     `json:"report_url,omitempty"`
}

// swagger:model
type ClaimStatusInput struct {
	Status ClaimStatus `json:"status"`
}

// ClaimBulkStatusInput requests a best-effort status change for a set of claims.
// swagger:model
type ClaimBulkStatusInput struct {
	ClaimIDs []uuid.UUID `json:"claim_ids"`
	Status   ClaimStatus `json:"status"`
}

// ClaimBulkVerifiedInput requests setting is_verified on a set of claims without
// touching their status.
// swagger:model
type ClaimBulkVerifiedInput struct {
	ClaimIDs []uuid.UUID `json:"claim_ids"`
}

// ClaimBulkUpdateResponse lists the claims actually updated by a bulk operation.
// swagger:model
type ClaimBulkUpdateResponse struct {
	UpdatedIDs []uuid.UUID `json:"updated_ids"`
}

// swagger:model
type ClaimListResponse struct {
	Items Claims `json:"items"`
	Total int    `json:"total"`
}
