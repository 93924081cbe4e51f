package actions

import (
	"fmt"
	"strings"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /evaluations Evaluations EvaluationsCreate
//
// # EvaluationsCreate
//
// record a batch of AI triage results; an "auto" bucket also approves and verifies
// the owning claim
//
// ---
//
//	parameters:
//	- name: evaluation batch
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/EvaluationBatchInput"
//	responses:
//	  '200':
//	    description: batch outcome
//	    schema:
//	      "$ref": "#/definitions/EvaluationBatchResponse"
func evaluationsCreate(c buffalo.Context) error {
	var input api.EvaluationBatchInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	resp, err := models.RecordEvaluations(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, resp)
}

// swagger:operation GET /evaluations/latest Evaluations EvaluationsLatest
//
// # EvaluationsLatest
//
// return the most recent evaluation per claim for a comma-separated list of claim ids;
// claims never evaluated are absent from the result
//
// ---
//
//	parameters:
//	- name: claim_ids
//	  in: query
//	  required: true
//	  description: comma-separated claim ids
//	responses:
//	  '200':
//	    description: latest Evaluation keyed by claim id
func evaluationsLatest(c buffalo.Context) error {
	ids, err := parseClaimIDs(c.Param("claim_ids"))
	if err != nil {
		return reportError(c, err)
	}

	latest, err := models.LatestEvaluations(models.Tx(c), ids)
	if err != nil {
		return reportError(c, err)
	}

	resp := make(map[string]api.Evaluation, len(latest))
	for claimID, eval := range latest {
		resp[claimID.String()] = eval.ConvertToAPI()
	}
	return renderOk(c, resp)
}

// swagger:operation GET /claims/{id}/evaluations Evaluations EvaluationsListByClaim
//
// # EvaluationsListByClaim
//
// list all evaluations recorded for one claim, newest first
//
// ---
//
//	parameters:
//	- name: id
//	  in: path
//	  required: true
//	  description: claim ID
//	responses:
//	  '200':
//	    description: a list of Evaluations
//	    schema:
//	      "$ref": "#/definitions/Evaluations"
func evaluationsListByClaim(c buffalo.Context) error {
	tx := models.Tx(c)

	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		err = fmt.Errorf("invalid claim id, %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryNotFound))
	}

	var claim models.Claim
	if err := claim.FindByID(tx, id); err != nil {
		return reportError(c, err)
	}

	var evaluations models.Evaluations
	if err := evaluations.ListByClaim(tx, claim.ID); err != nil {
		return reportError(c, err)
	}

	resp := make(api.Evaluations, len(evaluations))
	for i, e := range evaluations {
		resp[i] = e.ConvertToAPI()
	}
	return renderOk(c, resp)
}

func parseClaimIDs(param string) ([]uuid.UUID, error) {
	if strings.TrimSpace(param) == "" {
		err := fmt.Errorf("claim_ids parameter is required")
		return nil, api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
	}

	parts := strings.Split(param, ",")
	ids := make([]uuid.UUID, len(parts))
	for i, p := range parts {
		id, err := uuid.FromString(strings.TrimSpace(p))
		if err != nil {
			err = fmt.Errorf("invalid claim id %q, %w", p, err)
			return nil, api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
		}
		ids[i] = id
	}
	return ids, nil
}
