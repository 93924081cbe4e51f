package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
)

type Payments []Payment

// Payment is one row in the append-only money trail. Rows are never updated or
// deleted; corrections are new rows.
type Payment struct {
	ID             uuid.UUID        `db:"id"`
	SenderID       nulls.UUID       `db:"sender_id"`
	ReceiverID     nulls.UUID       `db:"receiver_id"`
	SenderWallet   string           `db:"sender_wallet" validate:"required"`
	ReceiverWallet string           `db:"receiver_wallet" validate:"required"`
	Amount         api.RewardAmount `db:"amount"`
	TxHash         string           `db:"tx_hash" validate:"required"`
	PaymentType    string           `db:"payment_type" validate:"required"`
	ClaimID        nulls.UUID       `db:"claim_id"`
	TaskID         nulls.UUID       `db:"task_id"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// String can be helpful for serializing the model
func (p Payment) String() string {
	jp, _ := json.Marshal(p)
	return string(jp)
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (p *Payment) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

// Create stores the Payment data as a new record in the database.
func (p *Payment) Create(tx *pop.Connection) error {
	return create(tx, p)
}

// RecordPayments inserts a batch of payment rows. The batch shares the request
// transaction, so a failure on any item rolls back all of them and the caller sees
// the error rather than a partial write.
func RecordPayments(tx *pop.Connection, input api.PaymentBatchInput) (api.PaymentBatchResponse, error) {
	var response api.PaymentBatchResponse

	if len(input.Payments) == 0 {
		err := errors.New("empty payment batch")
		return response, api.NewAppError(err, api.ErrorPaymentEmptyBatch, api.CategoryUser)
	}

	for i, item := range input.Payments {
		amount, err := api.ParseRewardAmount(item.Amount)
		if err != nil {
			err = fmt.Errorf("payment %d: %w", i, err)
			return response, api.NewAppError(err, api.ErrorValidation, api.CategoryUser)
		}

		payment := Payment{
			SenderWallet:   item.SenderWallet,
			ReceiverWallet: item.ReceiverWallet,
			Amount:         amount,
			TxHash:         item.TxHash,
			PaymentType:    item.PaymentType,
		}
		if item.SenderID != nil {
			payment.SenderID = nulls.NewUUID(*item.SenderID)
		}
		if item.ReceiverID != nil {
			payment.ReceiverID = nulls.NewUUID(*item.ReceiverID)
		}
		if item.ClaimID != nil {
			payment.ClaimID = nulls.NewUUID(*item.ClaimID)
		}
		if item.TaskID != nil {
			payment.TaskID = nulls.NewUUID(*item.TaskID)
		}

		if err := payment.Create(tx); err != nil {
			return response, err
		}
		response.Recorded++
	}

	return response, nil
}

// CheckPaymentExistence answers, for each (sender, receiver, claim, type) tuple,
// whether a matching payment row exists. The tuples are checked with one query so
// callers can screen a whole payout run before sending anything.
func CheckPaymentExistence(tx *pop.Connection, input api.PaymentExistenceInput) (api.PaymentExistenceResponse, error) {
	response := api.PaymentExistenceResponse{Items: make([]api.PaymentExistenceItem, len(input.Queries))}
	for i, q := range input.Queries {
		response.Items[i].PaymentExistenceQuery = q
	}
	if len(input.Queries) == 0 {
		return response, nil
	}

	conditions := make([]string, len(input.Queries))
	params := make([]any, 0, len(input.Queries)*4)
	for i, q := range input.Queries {
		conditions[i] = "(sender_id = ? AND receiver_id = ? AND claim_id = ? AND payment_type = ?)"
		params = append(params, q.SenderID, q.ReceiverID, q.ClaimID, q.PaymentType)
	}

	var found Payments
	query := fmt.Sprintf(
		"SELECT DISTINCT sender_id, receiver_id, claim_id, payment_type FROM payments WHERE %s",
		strings.Join(conditions, " OR "))
	if err := tx.RawQuery(query, params...).All(&found); err != nil {
		return response, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	type key struct {
		sender, receiver, claim uuid.UUID
		paymentType             string
	}
	existing := make(map[key]struct{}, len(found))
	for _, p := range found {
		existing[key{p.SenderID.UUID, p.ReceiverID.UUID, p.ClaimID.UUID, p.PaymentType}] = struct{}{}
	}

	for i, q := range input.Queries {
		_, ok := existing[key{q.SenderID, q.ReceiverID, q.ClaimID, q.PaymentType}]
		response.Items[i].Exists = ok
	}
	return response, nil
}

// ListByClaim returns a claim's payments, newest first.
func (p *Payments) ListByClaim(tx *pop.Connection, claimID uuid.UUID) error {
	err := tx.Where("claim_id = ?", claimID).Order("created_at desc").All(p)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// ConvertToAPI converts a models.Payment to an api.Payment
func (p *Payment) ConvertToAPI() api.Payment {
	return api.Payment{
		ID:             p.ID,
		SenderID:       convertUUIDToAPI(p.SenderID),
		ReceiverID:     convertUUIDToAPI(p.ReceiverID),
		SenderWallet:   p.SenderWallet,
		ReceiverWallet: p.ReceiverWallet,
		Amount:         p.Amount,
		TxHash:         p.TxHash,
		PaymentType:    p.PaymentType,
		ClaimID:        convertUUIDToAPI(p.ClaimID),
		TaskID:         convertUUIDToAPI(p.TaskID),
		CreatedAt:      p.CreatedAt,
	}
}

// ConvertToAPI converts a models.Payments to an api.Payments
func (p *Payments) ConvertToAPI() api.Payments {
	payments := make(api.Payments, len(*p))
	for i, pp := range *p {
		payments[i] = pp.ConvertToAPI()
	}
	return payments
}
