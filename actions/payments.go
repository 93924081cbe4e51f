package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /payments Payments PaymentsCreate
//
// # PaymentsCreate
//
// append a batch of settled on-chain payments to the payment ledger; the batch is
// all-or-nothing
//
// ---
//
//	parameters:
//	- name: payment batch
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/PaymentBatchInput"
//	responses:
//	  '200':
//	    description: batch outcome
//	    schema:
//	      "$ref": "#/definitions/PaymentBatchResponse"
func paymentsCreate(c buffalo.Context) error {
	var input api.PaymentBatchInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	resp, err := models.RecordPayments(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, resp)
}

// swagger:operation POST /payments/existence-check Payments PaymentsExistenceCheck
//
// # PaymentsExistenceCheck
//
// report, for each (sender, receiver, claim, payment_type) tuple, whether a matching
// payment is already on the ledger
//
// ---
//
//	parameters:
//	- name: existence queries
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/PaymentExistenceInput"
//	responses:
//	  '200':
//	    description: each tuple with an exists flag
//	    schema:
//	      "$ref": "#/definitions/PaymentExistenceResponse"
func paymentsExistenceCheck(c buffalo.Context) error {
	var input api.PaymentExistenceInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	resp, err := models.CheckPaymentExistence(models.Tx(c), input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, resp)
}

// swagger:operation GET /claims/{id}/payments Payments PaymentsListByClaim
//
// # PaymentsListByClaim
//
// list the payments recorded against one claim, newest first
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
//	    description: a list of Payments
//	    schema:
//	      "$ref": "#/definitions/Payments"
func paymentsListByClaim(c buffalo.Context) error {
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

	var payments models.Payments
	if err := payments.ListByClaim(tx, claim.ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, payments.ConvertToAPI())
}
