package actions

import (
	"net/http"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

func (as *ActionSuite) Test_IssuedDocumentsCreateAndList() {
	issuer := models.CreateUserFixtures(as.DB, 1, api.UserRoleIssuer).Users[0]
	patient := models.CreateUserFixtures(as.DB, 1, api.UserRolePatient).Users[0]
	file := models.CreateFileFixtures(as.DB, 1, issuer.ID).Files[0]

	res := as.authedJSON(issuer, "/issued-documents").Post(api.IssuedDocumentCreateInput{
		PatientID:  patient.ID,
		ReportType: "lab_report",
		FileID:     file.ID,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var doc api.IssuedDocument
	as.decodeBody(res.Body.Bytes(), &doc)
	as.True(doc.IsActive)
	as.Equal(issuer.ID, doc.IssuerID)

	// the issuer and the patient both see the document, nobody else may list
	for _, user := range []models.User{issuer, patient} {
		res = as.authedJSON(user, "/issued-documents").Get()
		as.Equal(http.StatusOK, res.Code)

		var list api.IssuedDocumentListResponse
		as.decodeBody(res.Body.Bytes(), &list)
		as.Equal(1, list.Total)
		as.Equal(doc.ID, list.Items[0].ID)
	}

	res = as.authedJSON(patient, "/issued-documents").Post(api.IssuedDocumentCreateInput{
		PatientID:  patient.ID,
		ReportType: "lab_report",
		FileID:     file.ID,
	})
	as.Equal(http.StatusUnauthorized, res.Code)
}
