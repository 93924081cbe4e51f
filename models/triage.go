package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
)

// QueueTag names the single triage queue a claim belongs to. Every pending claim
// carries exactly one tag, so the operator listings partition the backlog.
type QueueTag string

const (
	QueueTagUnassessed   = QueueTag("unassessed")
	QueueTagAuto         = QueueTag("auto")
	QueueTagManual       = QueueTag("manual")
	QueueTagVerification = QueueTag("verification")
	QueueTagNone         = QueueTag("none")
)

// ClaimQueue routes a claim to its queue. The checks run in precedence order:
// settled or verified claims route nowhere, an open task pins the claim to the
// verification queue, then the latest evaluation decides between manual and auto,
// and a claim nobody scored yet is unassessed. A cancelled task counts as no task;
// a completed one pins the claim only when includeCompleted is set.
func ClaimQueue(claim Claim, latestEval *Evaluation, task *Task, includeCompleted bool) QueueTag {
	if claim.Status != api.ClaimStatusPending || claim.IsVerified {
		return QueueTagNone
	}

	if task != nil && task.Status != api.TaskStatusCancelled {
		if task.Status == api.TaskStatusPending || includeCompleted {
			return QueueTagVerification
		}
		return QueueTagNone
	}

	if latestEval == nil {
		return QueueTagUnassessed
	}

	if latestEval.Bucket.Valid && latestEval.Bucket.String == string(api.EvaluationBucketManual) {
		return QueueTagManual
	}

	return QueueTagAuto
}

// triageRow is one pending claim with the context ClaimQueue needs.
type triageRow struct {
	Claim            Claim
	LatestEvaluation *Evaluation
	Task             *Task
}

// loadTriageRows loads the unsettled backlog, newest claims first, with each claim's
// authoritative evaluation and most recent non-cancelled task.
func loadTriageRows(tx *pop.Connection, searchText string) ([]triageRow, error) {
	var claims Claims
	q := tx.Where("status = ?", api.ClaimStatusPending).
		Where("is_verified = false").
		Order("created_at desc, id desc")
	if searchText != "" {
		q = q.Where("report_url ILIKE ?", "%"+searchText+"%")
	}
	if err := q.All(&claims); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	if len(claims) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(claims))
	for i, c := range claims {
		ids[i] = c.ID
	}

	latest, err := LatestEvaluations(tx, ids)
	if err != nil {
		return nil, err
	}

	tasks, err := latestTasksByClaim(tx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]triageRow, len(claims))
	for i, c := range claims {
		rows[i] = triageRow{Claim: c}
		if e, ok := latest[c.ID]; ok {
			eval := e
			rows[i].LatestEvaluation = &eval
		}
		if t, ok := tasks[c.ID]; ok {
			task := t
			rows[i].Task = &task
		}
	}
	return rows, nil
}

// latestTasksByClaim returns each claim's most recent non-cancelled task.
func latestTasksByClaim(tx *pop.Connection, claimIDs []uuid.UUID) (map[uuid.UUID]Task, error) {
	byClaim := map[uuid.UUID]Task{}
	if len(claimIDs) == 0 {
		return byClaim, nil
	}

	marks := make([]string, len(claimIDs))
	params := make([]any, 0, len(claimIDs)+1)
	for i, id := range claimIDs {
		marks[i] = "?"
		params = append(params, id)
	}
	params = append(params, api.TaskStatusCancelled)

	var tasks Tasks
	q := fmt.Sprintf(`SELECT DISTINCT ON (claim_id) * FROM tasks
		WHERE claim_id IN (%s) AND status <> ? ORDER BY claim_id, created_at DESC, id DESC`,
		strings.Join(marks, ","))
	if err := tx.RawQuery(q, params...).All(&tasks); err != nil {
		return byClaim, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	for _, t := range tasks {
		byClaim[t.ClaimID] = t
	}
	return byClaim, nil
}

// ListQueue returns the page of the backlog routed to the given queue tag.
func ListQueue(tx *pop.Connection, tag QueueTag, params api.QueryParams) (api.QueueListResponse, error) {
	response := api.QueueListResponse{
		Items:   []api.QueueClaim{},
		Page:    params.Page(),
		PerPage: params.PerPage(),
	}

	rows, err := loadTriageRows(tx, params.Search())
	if err != nil {
		return response, err
	}

	var matched []triageRow
	for _, row := range rows {
		if ClaimQueue(row.Claim, row.LatestEvaluation, row.Task, false) == tag {
			matched = append(matched, row)
		}
	}
	response.Total = len(matched)

	for _, row := range paginateRows(matched, params) {
		item := api.QueueClaim{Claim: row.Claim.ConvertToAPI()}
		if row.LatestEvaluation != nil {
			e := row.LatestEvaluation.ConvertToAPI()
			item.LatestEvaluation = &e
		}
		if tag == QueueTagVerification && row.Task != nil {
			t := row.Task.ConvertToAPI()
			item.Task = &t
		}
		response.Items = append(response.Items, item)
	}
	return response, nil
}

// ListVerificationQueue returns open validation tasks for a validator, newest task
// first, skipping tasks the validator already submitted to. Completed tasks are
// included only when the caller opts in.
func ListVerificationQueue(tx *pop.Connection, validatorID uuid.UUID, params api.QueryParams,
	includeCompleted bool) (api.VerificationQueueResponse, error) {

	response := api.VerificationQueueResponse{
		Items:   []api.VerificationTask{},
		Page:    params.Page(),
		PerPage: params.PerPage(),
	}

	rows, err := loadTriageRows(tx, params.Search())
	if err != nil {
		return response, err
	}

	submitted, err := submittedTaskIDs(tx, validatorID)
	if err != nil {
		return response, err
	}

	var matched []triageRow
	for _, row := range rows {
		if ClaimQueue(row.Claim, row.LatestEvaluation, row.Task, includeCompleted) != QueueTagVerification {
			continue
		}
		if _, ok := submitted[row.Task.ID]; ok {
			continue
		}
		matched = append(matched, row)
	}

	// the verification queue orders by task age, not claim age
	sortRowsByTaskCreatedAt(matched)
	response.Total = len(matched)

	for _, row := range paginateRows(matched, params) {
		response.Items = append(response.Items, api.VerificationTask{
			Task:          row.Task.ConvertToAPI(),
			ClaimID:       row.Claim.ID,
			ReportURL:     row.Claim.ReportURL,
			TaskCreatedAt: row.Task.CreatedAt,
		})
	}
	return response, nil
}

func submittedTaskIDs(tx *pop.Connection, validatorID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var submissions ValidatorSubmissions
	err := tx.Where("validator_id = ?", validatorID).All(&submissions)
	if err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	ids := make(map[uuid.UUID]struct{}, len(submissions))
	for _, s := range submissions {
		ids[s.TaskID] = struct{}{}
	}
	return ids, nil
}

func sortRowsByTaskCreatedAt(rows []triageRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Task.CreatedAt.After(rows[j].Task.CreatedAt)
	})
}

func paginateRows(rows []triageRow, params api.QueryParams) []triageRow {
	start := (params.Page() - 1) * params.PerPage()
	if start >= len(rows) {
		return nil
	}
	end := start + params.PerPage()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
