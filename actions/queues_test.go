package actions

import (
	"net/http"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

func (as *ActionSuite) Test_QueuesRouting() {
	f := models.CreateClaimFixtures(as.DB, 2)
	insurance := f.Users[1]
	validator := models.CreateUserFixtures(as.DB, 1, api.UserRoleValidator).Users[0]

	// both claims start in the unassessed queue
	res := as.authedJSON(insurance, "/queues/unverified-external").Get()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var queue api.QueueListResponse
	as.decodeBody(res.Body.Bytes(), &queue)
	as.Equal(2, queue.Total)

	// a manual evaluation moves the first claim to the manual review queue
	bucket := string(api.EvaluationBucketManual)
	res = as.authedJSON(insurance, "/evaluations").Post(api.EvaluationBatchInput{
		Evaluations: []api.EvaluationCreateInput{{
			ClaimID:     f.Claims[0].ID,
			ReportType:  "lab_report",
			DocumentURL: f.Claims[0].ReportURL,
			AIScore:     55,
			Bucket:      &bucket,
		}},
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	res = as.authedJSON(insurance, "/queues/manual-review").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &queue)
	as.Equal(1, queue.Total)
	as.Equal(f.Claims[0].ID, queue.Items[0].Claim.ID)

	// the alias listings agree with the manual review queue
	res = as.authedJSON(insurance, "/queues/validate-documents").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &queue)
	as.Equal(1, queue.Total)

	res = as.authedJSON(insurance, "/queues/unverified-external").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &queue)
	as.Equal(1, queue.Total)
	as.Equal(f.Claims[1].ID, queue.Items[0].Claim.ID)

	// opening a task moves the claim to the validator's verification queue
	res = as.authedJSON(insurance, "/tasks").Post(api.TaskCreateInput{
		ContractAddress:    "0xcontract000000000000000000000000000feed",
		TaskID:             314,
		DocCID:             "bafybeigdoccid",
		RequiredValidators: 1,
		Reward:             "2",
		ClaimID:            f.Claims[0].ID,
	})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	res = as.authedJSON(validator, "/queues/verification").Get()
	as.Equal(http.StatusOK, res.Code)

	var verification api.VerificationQueueResponse
	as.decodeBody(res.Body.Bytes(), &verification)
	as.Equal(1, verification.Total)
	as.Equal(f.Claims[0].ID, verification.Items[0].ClaimID)

	res = as.authedJSON(insurance, "/queues/manual-review").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &queue)
	as.Equal(0, queue.Total)

	// submitting hides the task from that validator's queue
	res = as.authedJSON(validator, "/tasks/314/submissions").
		Post(api.SubmissionCreateInput{ResultCID: "bafyresult"})
	as.Equal(http.StatusOK, res.Code)

	res = as.authedJSON(validator, "/queues/verification").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &verification)
	as.Equal(0, verification.Total)
}

func (as *ActionSuite) Test_QueuesBadPagination() {
	insurance := models.CreateUserFixtures(as.DB, 1, api.UserRoleInsurance).Users[0]

	res := as.authedJSON(insurance, "/queues/auto?page=0").Get()
	as.Equal(http.StatusBadRequest, res.Code)

	appErr := as.decodeError(res.Body.Bytes())
	as.Equal(api.ErrorInvalidPagination, appErr.Key)
}
