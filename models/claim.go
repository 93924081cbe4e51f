package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
)

var ValidClaimStatus = map[api.ClaimStatus]struct{}{
	api.ClaimStatusPending:  {},
	api.ClaimStatusApproved: {},
	api.ClaimStatusRejected: {},
}

type Claims []Claim

type Claim struct {
	ID          uuid.UUID       `db:"id"`
	PatientID   uuid.UUID       `db:"patient_id" validate:"required"`
	InsuranceID uuid.UUID       `db:"insurance_id" validate:"required"`
	ReportURL   string          `db:"report_url" validate:"required"`
	IsVerified  bool            `db:"is_verified"`
	IssuedBy    nulls.UUID      `db:"issued_by"`
	Status      api.ClaimStatus `db:"status" validate:"claimStatus"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// String can be helpful for serializing the model
func (c Claim) String() string {
	jc, _ := json.Marshal(c)
	return string(jc)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *Claim) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

// Create stores the Claim data as a new record in the database.
// If its status is not valid, it is created in pending status.
func (c *Claim) Create(tx *pop.Connection) error {
	if _, ok := ValidClaimStatus[c.Status]; !ok {
		c.Status = api.ClaimStatusPending
	}
	return create(tx, c)
}

// Update writes the Claim data to an existing database record.
func (c *Claim) Update(tx *pop.Connection) error {
	return update(tx, c)
}

func (c *Claim) GetID() uuid.UUID {
	return c.ID
}

func (c *Claim) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

// CreateClaimFromInput resolves the report source for a new claim and stores it. A
// verified claim backed by an issued document consumes that document in the same
// transaction; single-use is enforced by the document's conditional update, so a
// concurrent duplicate gets a conflict and the whole request rolls back.
func CreateClaimFromInput(tx *pop.Connection, input api.ClaimCreateInput) (Claim, error) {
	claim := Claim{
		PatientID:   input.PatientID,
		InsuranceID: input.InsuranceID,
		IsVerified:  input.IsVerified,
		Status:      api.ClaimStatusPending,
	}

	if input.IsVerified {
		if err := claim.resolveVerifiedReport(tx, input); err != nil {
			return claim, err
		}
	} else {
		if err := claim.resolveUnverifiedReport(tx, input); err != nil {
			return claim, err
		}
	}

	if err := claim.Create(tx); err != nil {
		return claim, err
	}
	return claim, nil
}

// resolveVerifiedReport fills ReportURL and IssuedBy for a verified claim. An issued
// document takes precedence over a caller-supplied report URL.
func (c *Claim) resolveVerifiedReport(tx *pop.Connection, input api.ClaimCreateInput) error {
	if input.IssuedDocID != nil {
		var doc IssuedDocument
		if err := doc.FindByID(tx, *input.IssuedDocID); err != nil {
			appErr := api.NewAppError(err, api.ErrorIssuedDocumentNotFound, api.CategoryNotFound)
			return appErr
		}

		if doc.PatientID != input.PatientID {
			err := fmt.Errorf("issued document %s does not belong to patient %s", doc.ID, input.PatientID)
			return api.NewAppError(err, api.ErrorIssuedDocumentWrongPatient, api.CategoryUser)
		}

		if err := doc.Consume(tx); err != nil {
			return err
		}

		c.ReportURL = doc.DocumentURL
		c.IssuedBy = nulls.NewUUID(doc.IssuerID)
		return nil
	}

	if input.ReportURL == "" {
		err := errors.New("verified claim needs an issued document or a report url")
		return api.NewAppError(err, api.ErrorClaimMissingReport, api.CategoryUser)
	}

	if input.IssuedBy == nil {
		err := errors.New("verified claim with a direct report url needs an issuer")
		return api.NewAppError(err, api.ErrorClaimIssuerRequired, api.CategoryUser)
	}

	c.ReportURL = input.ReportURL
	c.IssuedBy = nulls.NewUUID(*input.IssuedBy)
	return nil
}

// resolveUnverifiedReport fills ReportURL for an unverified claim from an uploaded
// file or a direct url. Unverified claims never carry an issuer.
func (c *Claim) resolveUnverifiedReport(tx *pop.Connection, input api.ClaimCreateInput) error {
	if input.IssuedBy != nil {
		err := errors.New("unverified claim must not name an issuer")
		return api.NewAppError(err, api.ErrorClaimIssuerNotAllowed, api.CategoryUser)
	}

	if input.FileID != nil {
		var file File
		if err := file.FindByID(tx, *input.FileID); err != nil {
			return appErrorFromDB(err, api.ErrorResourceNotFound)
		}
		c.ReportURL = file.URL
		return nil
	}

	if input.ReportURL == "" {
		err := errors.New("unverified claim needs a report url or an uploaded file")
		return api.NewAppError(err, api.ErrorClaimMissingReport, api.CategoryUser)
	}

	c.ReportURL = input.ReportURL
	return nil
}

// SetStatus overwrites the claim status. Earlier decisions are not protected; the
// newest decision wins.
func (c *Claim) SetStatus(tx *pop.Connection, status api.ClaimStatus) error {
	if _, ok := ValidClaimStatus[status]; !ok {
		err := fmt.Errorf("invalid claim status %q", status)
		return api.NewAppError(err, api.ErrorClaimStatus, api.CategoryUser)
	}

	c.Status = status
	return update(tx, c)
}

type claimIDRow struct {
	ID uuid.UUID `db:"id"`
}

// BulkSetStatus sets the status of every claim in ids with one UPDATE and returns the
// ids actually updated. Unknown ids are skipped; an entirely unknown set is NotFound.
func BulkSetStatus(tx *pop.Connection, ids []uuid.UUID, status api.ClaimStatus) ([]uuid.UUID, error) {
	if _, ok := ValidClaimStatus[status]; !ok {
		err := fmt.Errorf("invalid claim status %q", status)
		return nil, api.NewAppError(err, api.ErrorClaimStatus, api.CategoryUser)
	}
	return bulkUpdateClaims(tx, ids, "status", string(status))
}

// BulkSetVerified marks every claim in ids as verified without touching status.
func BulkSetVerified(tx *pop.Connection, ids []uuid.UUID) ([]uuid.UUID, error) {
	return bulkUpdateClaims(tx, ids, "is_verified", true)
}

func bulkUpdateClaims(tx *pop.Connection, ids []uuid.UUID, column string, value any) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		err := errors.New("no claim ids given for bulk update")
		return nil, api.NewAppError(err, api.ErrorClaimEmptyBulkRequest, api.CategoryUser)
	}

	marks := make([]string, len(ids))
	params := make([]any, 0, len(ids)+1)
	params = append(params, value)
	for i, id := range ids {
		marks[i] = "?"
		params = append(params, id)
	}

	q := fmt.Sprintf("UPDATE claims SET %s = ?, updated_at = now() WHERE id IN (%s) RETURNING id",
		column, strings.Join(marks, ","))

	var rows []claimIDRow
	if err := tx.RawQuery(q, params...).All(&rows); err != nil {
		return nil, appErrorFromDB(err, api.ErrorUpdateFailure)
	}

	if len(rows) == 0 {
		err := errors.New("none of the given claim ids exist")
		return nil, api.NewAppError(err, api.ErrorClaimsNotFound, api.CategoryNotFound)
	}

	updated := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		updated[i] = r.ID
	}
	return updated, nil
}

// ListByPatient returns the patient's claims, newest first.
func (c *Claims) ListByPatient(tx *pop.Connection, patientID uuid.UUID, status *api.ClaimStatus) error {
	q := tx.Where("patient_id = ?", patientID).Order("created_at desc")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	return appErrorFromDB(q.All(c), api.ErrorQueryFailure)
}

// ListByInsurance returns the insurer's claims, newest first.
func (c *Claims) ListByInsurance(tx *pop.Connection, insuranceID uuid.UUID, status *api.ClaimStatus) error {
	q := tx.Where("insurance_id = ?", insuranceID).Order("created_at desc")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	return appErrorFromDB(q.All(c), api.ErrorQueryFailure)
}

// ConvertToAPI converts a models.Claim to an api.Claim
func (c *Claim) ConvertToAPI() api.Claim {
	return api.Claim{
		ID:          c.ID,
		PatientID:   c.PatientID,
		InsuranceID: c.InsuranceID,
		ReportURL:   c.ReportURL,
		IsVerified:  c.IsVerified,
		IssuedBy:    convertUUIDToAPI(c.IssuedBy),
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

// ConvertToAPI converts a models.Claims to an api.Claims
func (c *Claims) ConvertToAPI() api.Claims {
	claims := make(api.Claims, len(*c))
	for i, cc := range *c {
		claims[i] = cc.ConvertToAPI()
	}
	return claims
}
