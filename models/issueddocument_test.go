package models

import (
	"github.com/verixa-platform/verixa-api/api"
)

func (ms *ModelSuite) TestIssuedDocument_Consume() {
	patient := CreateUserFixtures(ms.DB, 1, api.UserRolePatient).Users[0]
	doc := CreateIssuedDocumentFixtures(ms.DB, 1, patient.ID).IssuedDocuments[0]

	ms.NoError(doc.Consume(ms.DB))
	ms.False(doc.IsActive)

	var reloaded IssuedDocument
	ms.NoError(reloaded.FindByID(ms.DB, doc.ID))
	ms.False(reloaded.IsActive)

	// a second consumption is a conflict, not a double spend
	err := doc.Consume(ms.DB)
	ms.EqualAppError(api.AppError{
		Key:      api.ErrorIssuedDocumentConsumed,
		Category: api.CategoryConflict,
	}, err)
}

func (ms *ModelSuite) TestIssuedDocuments_ListByIssuer() {
	patient := CreateUserFixtures(ms.DB, 1, api.UserRolePatient).Users[0]
	fixtures := CreateIssuedDocumentFixtures(ms.DB, 3, patient.ID)
	issuer := fixtures.Users[0]

	var docs IssuedDocuments
	ms.NoError(docs.ListByIssuer(ms.DB, issuer.ID))
	ms.Len(docs, 3)

	var byPatient IssuedDocuments
	ms.NoError(byPatient.ListByPatient(ms.DB, patient.ID))
	ms.Len(byPatient, 3)
}
