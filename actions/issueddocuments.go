package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

// swagger:operation POST /issued-documents IssuedDocuments IssuedDocumentsCreate
//
// # IssuedDocumentsCreate
//
// attest a previously uploaded file as a platform-issued medical document for a
// patient; only issuers may do this
//
// ---
//
//	parameters:
//	- name: issued document input
//	  in: body
//	  required: true
//	  schema:
//	    "$ref": "#/definitions/IssuedDocumentCreateInput"
//	responses:
//	  '200':
//	    description: the new IssuedDocument
//	    schema:
//	      "$ref": "#/definitions/IssuedDocument"
func issuedDocumentsCreate(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	if user.Role != api.UserRoleIssuer {
		err := fmt.Errorf("role %q may not issue documents", user.Role)
		return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
	}

	var input api.IssuedDocumentCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	var file models.File
	if err := file.FindByID(tx, input.FileID); err != nil {
		return reportError(c, err)
	}

	doc := models.IssuedDocument{
		PatientID:   input.PatientID,
		ReportType:  input.ReportType,
		DocumentURL: file.URL,
		IssuerID:    user.ID,
	}
	if err := doc.Create(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, doc.ConvertToAPI())
}

// swagger:operation GET /issued-documents IssuedDocuments IssuedDocumentsList
//
// # IssuedDocumentsList
//
// list issued documents newest first: an issuer sees the documents they issued, a
// patient the documents issued for them
//
// ---
//
//	responses:
//	  '200':
//	    description: a list of IssuedDocuments
//	    schema:
//	      "$ref": "#/definitions/IssuedDocumentListResponse"
func issuedDocumentsList(c buffalo.Context) error {
	tx := models.Tx(c)
	user := models.CurrentUser(c)

	var docs models.IssuedDocuments
	var err error
	switch user.Role {
	case api.UserRoleIssuer:
		err = docs.ListByIssuer(tx, user.ID)
	case api.UserRolePatient:
		err = docs.ListByPatient(tx, user.ID)
	default:
		err = fmt.Errorf("role %q may not list issued documents", user.Role)
		return reportError(c, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized))
	}
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.IssuedDocumentListResponse{
		Items: docs.ConvertToAPI(),
		Total: len(docs),
	})
}
