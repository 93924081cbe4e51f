package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// swagger:model
type IssuedDocuments []IssuedDocument

// IssuedDocument is a platform-attested medical report produced by an issuer. Once a
// claim consumes it, IsActive is false and it cannot back another claim.
// swagger:model
type IssuedDocument struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	ReportType  string    `json:"report_type"`
	DocumentURL string    `json:"document_url"`
	IssuerID    uuid.UUID `json:"issuer_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// swagger:model
type IssuedDocumentCreateInput struct {
	PatientID  uuid.UUID `json:"patient_id"`
	ReportType string    `json:"report_type"`
	FileID     uuid.UUID `json:"file_id"`
}

// swagger:model
type IssuedDocumentListResponse struct {
	Items IssuedDocuments `json:"items"`
	Total int             `json:"total"`
}
