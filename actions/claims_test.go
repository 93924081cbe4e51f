package actions

import (
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

func (as *ActionSuite) Test_ClaimsCreateAndList() {
	patient := models.CreateUserFixtures(as.DB, 1, api.UserRolePatient).Users[0]
	insurance := models.CreateUserFixtures(as.DB, 1, api.UserRoleInsurance).Users[0]

	input := api.ClaimCreateInput{
		PatientID:   patient.ID,
		InsuranceID: insurance.ID,
		ReportURL:   "https://reports.example.com/scan.pdf",
	}
	res := as.authedJSON(patient, "/claims").Post(input)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var claim api.Claim
	as.decodeBody(res.Body.Bytes(), &claim)
	as.Equal(api.ClaimStatusPending, claim.Status)
	as.False(claim.IsVerified)

	res = as.authedJSON(patient, "/claims").Get()
	as.Equal(http.StatusOK, res.Code)

	var list api.ClaimListResponse
	as.decodeBody(res.Body.Bytes(), &list)
	as.Equal(1, list.Total)
	as.Equal(claim.ID, list.Items[0].ID)

	// the insurance party sees the same claim
	res = as.authedJSON(insurance, "/claims").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &list)
	as.Equal(1, list.Total)

	// a validator has no claim listing
	validator := models.CreateUserFixtures(as.DB, 1, api.UserRoleValidator).Users[0]
	res = as.authedJSON(validator, "/claims").Get()
	as.Equal(http.StatusUnauthorized, res.Code)
}

func (as *ActionSuite) Test_ClaimsCreateMissingReport() {
	patient := models.CreateUserFixtures(as.DB, 1, api.UserRolePatient).Users[0]
	insurance := models.CreateUserFixtures(as.DB, 1, api.UserRoleInsurance).Users[0]

	res := as.authedJSON(patient, "/claims").Post(api.ClaimCreateInput{
		PatientID:   patient.ID,
		InsuranceID: insurance.ID,
	})
	as.Equal(http.StatusBadRequest, res.Code)

	appErr := as.decodeError(res.Body.Bytes())
	as.Equal(api.ErrorClaimMissingReport, appErr.Key)
}

func (as *ActionSuite) Test_ClaimsSetStatus() {
	f := models.CreateClaimFixtures(as.DB, 1)
	insurance := f.Users[1]

	res := as.authedJSON(insurance, "/claims/%s/status", f.Claims[0].ID).
		Put(api.ClaimStatusInput{Status: api.ClaimStatusApproved})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var claim api.Claim
	as.decodeBody(res.Body.Bytes(), &claim)
	as.Equal(api.ClaimStatusApproved, claim.Status)

	// unknown claim id
	res = as.authedJSON(insurance, "/claims/%s/status", "00000000-0000-0000-0000-000000000042").
		Put(api.ClaimStatusInput{Status: api.ClaimStatusApproved})
	as.Equal(http.StatusNotFound, res.Code)
}

func (as *ActionSuite) Test_ClaimsBulkStatus() {
	f := models.CreateClaimFixtures(as.DB, 3)
	insurance := f.Users[1]

	res := as.authedJSON(insurance, "/claims/status").Post(api.ClaimBulkStatusInput{
		ClaimIDs: []uuid.UUID{f.Claims[0].ID, f.Claims[2].ID},
		Status:   api.ClaimStatusRejected,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var resp api.ClaimBulkUpdateResponse
	as.decodeBody(res.Body.Bytes(), &resp)
	as.Len(resp.UpdatedIDs, 2)

	// empty id list is a validation error
	res = as.authedJSON(insurance, "/claims/status").Post(api.ClaimBulkStatusInput{
		Status: api.ClaimStatusRejected,
	})
	as.Equal(http.StatusBadRequest, res.Code)
}
