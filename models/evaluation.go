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

var ValidEvaluationBuckets = map[api.EvaluationBucket]struct{}{
	api.EvaluationBucketAuto:   {},
	api.EvaluationBucketManual: {},
	api.EvaluationBucketReject: {},
}

type Evaluations []Evaluation

// Evaluation is one triage result for a claim. Claims accumulate evaluations over
// time; the most recent one is authoritative.
type Evaluation struct {
	ID          uuid.UUID    `db:"id"`
	ClaimID     uuid.UUID    `db:"claim_id" validate:"required"`
	ReportType  string       `db:"report_type"`
	DocumentURL string       `db:"document_url"`
	AIScore     int          `db:"ai_score"`
	Bucket      nulls.String `db:"bucket" validate:"evaluationBucket"`
	EvaluatedAt time.Time    `db:"evaluated_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// String can be helpful for serializing the model
func (e Evaluation) String() string {
	je, _ := json.Marshal(e)
	return string(je)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (e *Evaluation) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(e), nil
}

// Create stores the Evaluation data as a new record in the database.
func (e *Evaluation) Create(tx *pop.Connection) error {
	if e.EvaluatedAt.IsZero() {
		e.EvaluatedAt = time.Now().UTC()
	}
	return create(tx, e)
}

// RecordEvaluations inserts a triage batch. An "auto" bucket approves the owning claim
// in the same transaction as its evaluation row, so readers never see one without the
// other. Any failure rolls back the whole batch.
func RecordEvaluations(tx *pop.Connection, input api.EvaluationBatchInput) (api.EvaluationBatchResponse, error) {
	var response api.EvaluationBatchResponse

	if len(input.Evaluations) == 0 {
		err := errors.New("empty evaluation batch")
		return response, api.NewAppError(err, api.ErrorEvaluationEmptyBatch, api.CategoryUser)
	}

	for _, item := range input.Evaluations {
		var claim Claim
		if err := claim.FindByID(tx, item.ClaimID); err != nil {
			return response, api.NewAppError(err, api.ErrorEvaluationClaimMissing, api.CategoryNotFound)
		}

		evaluation := Evaluation{
			ClaimID:     item.ClaimID,
			ReportType:  item.ReportType,
			DocumentURL: item.DocumentURL,
			AIScore:     item.AIScore,
		}
		if item.Bucket != nil {
			evaluation.Bucket = nulls.NewString(*item.Bucket)
		}

		if err := evaluation.Create(tx); err != nil {
			return response, err
		}
		response.Recorded++

		if evaluation.Bucket.Valid && evaluation.Bucket.String == string(api.EvaluationBucketAuto) {
			if err := claim.autoApprove(tx); err != nil {
				return response, err
			}
			response.AutoApproved = append(response.AutoApproved, claim.ID)

			emitEvent(events.Event{
				Kind:    domain.EventApiClaimAutoApproved,
				Message: "claim auto approved by triage",
				Payload: events.Payload{domain.EventPayloadID: claim.ID.String()},
			})
		}
	}

	return response, nil
}

// autoApprove marks the claim verified and approved. The update is raw because a
// platform-verified claim carries no issuer and must skip the creation-time policy.
func (c *Claim) autoApprove(tx *pop.Connection) error {
	err := tx.RawQuery(
		"UPDATE claims SET is_verified = true, status = ?, updated_at = now() WHERE id = ?",
		api.ClaimStatusApproved, c.ID).Exec()
	if err != nil {
		return appErrorFromDB(err, api.ErrorUpdateFailure)
	}
	c.IsVerified = true
	c.Status = api.ClaimStatusApproved
	return nil
}

// LatestEvaluations returns the authoritative evaluation for each of the given
// claims. Ties on evaluated_at break by id so the answer does not depend on plan or
// insertion order. Claims with no evaluation are simply absent from the result.
func LatestEvaluations(tx *pop.Connection, claimIDs []uuid.UUID) (map[uuid.UUID]Evaluation, error) {
	latest := map[uuid.UUID]Evaluation{}
	if len(claimIDs) == 0 {
		return latest, nil
	}

	marks := make([]string, len(claimIDs))
	params := make([]any, len(claimIDs))
	for i, id := range claimIDs {
		marks[i] = "?"
		params[i] = id
	}

	var evaluations Evaluations
	q := fmt.Sprintf(`SELECT DISTINCT ON (claim_id) * FROM evaluations WHERE claim_id IN (%s)
		ORDER BY claim_id, evaluated_at DESC, id DESC`, strings.Join(marks, ","))
	if err := tx.RawQuery(q, params...).All(&evaluations); err != nil {
		return latest, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	for _, e := range evaluations {
		latest[e.ClaimID] = e
	}
	return latest, nil
}

// ListByClaim returns a claim's evaluations, newest first.
func (e *Evaluations) ListByClaim(tx *pop.Connection, claimID uuid.UUID) error {
	err := tx.Where("claim_id = ?", claimID).Order("evaluated_at desc, id desc").All(e)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// ConvertToAPI converts a models.Evaluation to an api.Evaluation
func (e *Evaluation) ConvertToAPI() api.Evaluation {
	return api.Evaluation{
		ID:          e.ID,
		ClaimID:     e.ClaimID,
		ReportType:  e.ReportType,
		DocumentURL: e.DocumentURL,
		AIScore:     e.AIScore,
		Bucket:      convertStringToAPI(e.Bucket),
		EvaluatedAt: e.EvaluatedAt,
	}
}
