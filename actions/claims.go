package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /claims Claims ClaimsCreate
//
// # ClaimsCreate
//
// file a new claim against a report source, which is exactly one of a platform-issued
// document, a previously uploaded file, or a direct report URL
//
// ---
//
//	parameters:
//	- name: claim input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/ClaimCreateInput"
//	responses:
//	  '200':
//	    description: the new Claim
//	    schema:
//	      "$ref": "#/definitions/Claim"
func claimsCreate(c buffalo.Context) error {
	var input api.ClaimCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	claim, err := models.CreateClaimFromInput(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// swagger:operation GET /claims Claims ClaimsList
//
// # ClaimsList
//
// list the current user's claims newest first, as the patient or the insurance party,
// optionally filtered by status
//
// ---
//
//	parameters:
//	- name: status
//	  in: query
//	  required: false
//	  description: claim status filter
//	responses:
//	  '200':
//	    description: a list of Claims
//	    schema:
//	      "$ref": "#/definitions/ClaimListResponse"
func claimsList(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	status, err := claimStatusFilter(c)
	if err != nil {
		return reportError(c, err)
	}

	var claims models.Claims
	switch user.Role {
	case api.UserRolePatient:
		err = claims.ListByPatient(tx, user.ID, status)
	case api.UserRoleInsurance:
		err = claims.ListByInsurance(tx, user.ID, status)
	default:
		err = fmt.Errorf("role %q may not list claims", user.Role)
		return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
	}
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.ClaimListResponse{
		Items: claims.ConvertToAPI(),
		Total: len(claims),
	})
}

// swagger:operation PUT /claims/{id}/status Claims ClaimsSetStatus
//
// # ClaimsSetStatus
//
// overwrite the status of a single claim
//
// ---
//
//	parameters:
//	- name: id
//	  in: path
//	  required: true
//	  description: claim ID
//	- name: status input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/ClaimStatusInput"
//	responses:
//	  '200':
//	    description: the updated Claim
//	    schema:
//	      "$ref": "#/definitions/Claim"
func claimsSetStatus(c buffalo.Context) error {
	tx := models.Tx(c)

	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		err = fmt.Errorf("invalid claim id, %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorResourceNotFound, api.CategoryNotFound))
	}

	var input api.ClaimStatusInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	var claim models.Claim
	if err := claim.FindByID(tx, id); err != nil {
		return reportError(c, err)
	}

	if err := claim.SetStatus(tx, input.Status); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// swagger:operation POST /claims/status Claims ClaimsBulkStatus
//
// # ClaimsBulkStatus
//
// set the status of a set of claims, returning the ids actually updated
//
// ---
//
//	parameters:
//	- name: bulk status input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/ClaimBulkStatusInput"
//	responses:
//	  '200':
//	    description: the updated claim ids
//	    schema:
//	      "$ref": "#/definitions/ClaimBulkUpdateResponse"
func claimsBulkStatus(c buffalo.Context) error {
	var input api.ClaimBulkStatusInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	updated, err := models.BulkSetStatus(models.Tx(c), input.ClaimIDs, input.Status)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.ClaimBulkUpdateResponse{UpdatedIDs: updated})
}

// swagger:operation POST /claims/verified Claims ClaimsBulkVerified
//
// # ClaimsBulkVerified
//
// mark a set of claims verified, returning the ids actually updated
//
// ---
//
//	parameters:
//	- name: bulk verified input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/ClaimBulkVerifiedInput"
//	responses:
//	  '200':
//	    description: the updated claim ids
//	    schema:
//	      "$ref": "#/definitions/ClaimBulkUpdateResponse"
func claimsBulkVerified(c buffalo.Context) error {
	var input api.ClaimBulkVerifiedInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	updated, err := models.BulkSetVerified(models.Tx(c), input.ClaimIDs)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.ClaimBulkUpdateResponse{UpdatedIDs: updated})
}

func claimStatusFilter(c buffalo.Context) (*api.ClaimStatus, error) {
	param := c.Param("status")
	if param == "" {
		return nil, nil
	}

	status := api.ClaimStatus(param)
	switch status {
	case api.ClaimStatusPending, api.ClaimStatusApproved, api.ClaimStatusRejected:
		return &status, nil
	}

	err := fmt.Errorf("invalid claim status filter %q", param)
	return nil, api.NewAppError(err, api.ErrorClaimStatus, api.CategoryUser)
}
