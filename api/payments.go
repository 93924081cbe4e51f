package api

import (
	"time"

	"github.com/gofrs/uuid"
)

// PaymentTypeValidation is the reward type recorded when validators are paid for a
// completed task. Other types (e.g. "ai_score") are caller-defined.
const PaymentTypeValidation = "validation"

// swagger:model
type Payments []Payment

// swagger:model
type Payment struct {
	ID             uuid.UUID    `json:"id"`
	SenderID       *uuid.UUID   `json:"sender_user_id,omitempty"`
	ReceiverID     *uuid.UUID   `json:"receiver_user_id,omitempty"`
	SenderWallet   string       `json:"sender_wallet"`
	ReceiverWallet string       `json:"receiver_wallet"`
	Amount         RewardAmount `json:"amount"`
	TxHash         string       `json:"tx_hash"`
	PaymentType    string       `json:"payment_type"`
	ClaimID        *uuid.UUID   `json:"claim_id,omitempty"`
	TaskID         *uuid.UUID   `json:"task_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// swagger:model
type PaymentCreateInput struct {
	SenderID       *uuid.UUID `json:"sender_user_id,omitempty"`
	ReceiverID     *uuid.UUID `json:"receiver_user_id,omitempty"`
	SenderWallet   string     `json:"sender_wallet"`
	ReceiverWallet string     `json:"receiver_wallet"`
	Amount         string     `json:"amount"`
	TxHash         string     `json:"tx_hash"`
	PaymentType    string     `json:"payment_type"`
	ClaimID        *uuid.UUID `json:"claim_id,omitempty"`
	TaskID         *uuid.UUID `json:"task_id,omitempty"`
}

// swagger:model
type PaymentBatchInput struct {
	Payments []PaymentCreateInput `json:"payments"`
}

// swagger:model
type PaymentBatchResponse struct {
	Recorded int `json:"recorded"`
}

// PaymentExistenceQuery identifies a payment by the tuple callers use for idempotency
// checks before paying a validator for a claim.
// swagger:model
type PaymentExistenceQuery struct {
	SenderID    uuid.UUID `json:"sender_user_id"`
	ReceiverID  uuid.UUID `json:"receiver_user_id"`
	ClaimID     uuid.UUID `json:"claim_id"`
	PaymentType string    `json:"payment_type"`
}

// swagger:model
type PaymentExistenceInput struct {
	Queries []PaymentExistenceQuery `json:"queries"`
}

// swagger:model
type PaymentExistenceItem struct {
	PaymentExistenceQuery
	Exists bool `json:"exists"`
}

// swagger:model
type PaymentExistenceResponse struct {
	Items []PaymentExistenceItem `json:"items"`
}
