package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
)

type IssuedDocuments []IssuedDocument

// IssuedDocument is a platform-attested report an issuer produced for a patient. It
// backs at most one claim; consumption flips is_active exactly once.
type IssuedDocument struct {
	ID          uuid.UUID `db:"id"`
	PatientID   uuid.UUID `db:"patient_id" validate:"required"`
	ReportType  string    `db:"report_type" validate:"required"`
	DocumentURL string    `db:"document_url" validate:"required"`
	IssuerID    uuid.UUID `db:"issuer_id" validate:"required"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// String can be helpful for serializing the model
func (d IssuedDocument) String() string {
	jd, _ := json.Marshal(d)
	return string(jd)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (d *IssuedDocument) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(d), nil
}

// Create stores the IssuedDocument data as a new record in the database.
func (d *IssuedDocument) Create(tx *pop.Connection) error {
	d.IsActive = true
	return create(tx, d)
}

func (d *IssuedDocument) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, d, id)
}

// Consume deactivates the document with a conditional update. Zero rows affected
// means another claim already consumed it, which is a conflict, never a double spend.
func (d *IssuedDocument) Consume(tx *pop.Connection) error {
	count, err := tx.RawQuery(
		"UPDATE issued_documents SET is_active = false, updated_at = now() WHERE id = ? AND is_active",
		d.ID).ExecWithCount()
	if err != nil {
		return appErrorFromDB(err, api.ErrorUpdateFailure)
	}

	if count == 0 {
		err := fmt.Errorf("issued document %s has already been consumed", d.ID)
		return api.NewAppError(err, api.ErrorIssuedDocumentConsumed, api.CategoryConflict)
	}

	d.IsActive = false
	return nil
}

// ListByIssuer returns the issuer's documents, newest first.
func (d *IssuedDocuments) ListByIssuer(tx *pop.Connection, issuerID uuid.UUID) error {
	err := tx.Where("issuer_id = ?", issuerID).Order("created_at desc").All(d)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// ListByPatient returns the patient's documents, newest first.
func (d *IssuedDocuments) ListByPatient(tx *pop.Connection, patientID uuid.UUID) error {
	err := tx.Where("patient_id = ?", patientID).Order("created_at desc").All(d)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// ConvertToAPI converts a models.IssuedDocument to an api.IssuedDocument
func (d *IssuedDocument) ConvertToAPI() api.IssuedDocument {
	return api.IssuedDocument{
		ID:          d.ID,
		PatientID:   d.PatientID,
		ReportType:  d.ReportType,
		DocumentURL: d.DocumentURL,
		IssuerID:    d.IssuerID,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

// ConvertToAPI converts a models.IssuedDocuments to an api.IssuedDocuments
func (d *IssuedDocuments) ConvertToAPI() api.IssuedDocuments {
	docs := make(api.IssuedDocuments, len(*d))
	for i, dd := range *d {
		docs[i] = dd.ConvertToAPI()
	}
	return docs
}
