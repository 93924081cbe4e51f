package models

import (
	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
)

func (ms *ModelSuite) TestRecordPayments() {
	_, err := RecordPayments(ms.DB, api.PaymentBatchInput{})
	ms.EqualAppError(api.AppError{
		Key:      api.ErrorPaymentEmptyBatch,
		Category: api.CategoryUser,
	}, err)

	fixtures := CreateClaimFixtures(ms.DB, 1)
	claim := fixtures.Claims[0]
	insurance := fixtures.Users[1]
	validator := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	response, err := RecordPayments(ms.DB, api.PaymentBatchInput{
		Payments: []api.PaymentCreateInput{
			{
				SenderID:       &insurance.ID,
				ReceiverID:     &validator.ID,
				SenderWallet:   insurance.WalletAddress,
				ReceiverWallet: validator.WalletAddress,
				Amount:         "0.7509",
				TxHash:         "0xabc1",
				PaymentType:    api.PaymentTypeValidation,
				ClaimID:        &claim.ID,
			},
			{
				SenderWallet:   insurance.WalletAddress,
				ReceiverWallet: validator.WalletAddress,
				Amount:         "2",
				TxHash:         "0xabc2",
				PaymentType:    "ai_score",
			},
		},
	})
	ms.NoError(err)
	ms.Equal(2, response.Recorded)

	var payments Payments
	ms.NoError(payments.ListByClaim(ms.DB, claim.ID))
	ms.Len(payments, 1)
	ms.Equal(api.RewardAmount(750), payments[0].Amount, "amount digits past three decimals are truncated")

	// a bad amount anywhere fails the item and reports it
	_, err = RecordPayments(ms.DB, api.PaymentBatchInput{
		Payments: []api.PaymentCreateInput{
			{
				SenderWallet:   insurance.WalletAddress,
				ReceiverWallet: validator.WalletAddress,
				Amount:         "not-a-number",
				TxHash:         "0xabc3",
				PaymentType:    api.PaymentTypeValidation,
			},
		},
	})
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestCheckPaymentExistence() {
	fixtures := CreateClaimFixtures(ms.DB, 1)
	claim := fixtures.Claims[0]
	insurance := fixtures.Users[1]
	validator := CreateUserFixtures(ms.DB, 1, api.UserRoleValidator).Users[0]

	_, err := RecordPayments(ms.DB, api.PaymentBatchInput{
		Payments: []api.PaymentCreateInput{
			{
				SenderID:       &insurance.ID,
				ReceiverID:     &validator.ID,
				SenderWallet:   insurance.WalletAddress,
				ReceiverWallet: validator.WalletAddress,
				Amount:         "1.5",
				TxHash:         "0xabc1",
				PaymentType:    api.PaymentTypeValidation,
				ClaimID:        &claim.ID,
			},
		},
	})
	ms.NoError(err)

	response, err := CheckPaymentExistence(ms.DB, api.PaymentExistenceInput{
		Queries: []api.PaymentExistenceQuery{
			{
				SenderID:    insurance.ID,
				ReceiverID:  validator.ID,
				ClaimID:     claim.ID,
				PaymentType: api.PaymentTypeValidation,
			},
			{
				SenderID:    insurance.ID,
				ReceiverID:  validator.ID,
				ClaimID:     claim.ID,
				PaymentType: "ai_score",
			},
			{
				SenderID:    insurance.ID,
				ReceiverID:  validator.ID,
				ClaimID:     domain.GetUUID(),
				PaymentType: api.PaymentTypeValidation,
			},
		},
	})
	ms.NoError(err)
	ms.Len(response.Items, 3)
	ms.True(response.Items[0].Exists)
	ms.False(response.Items[1].Exists, "payment type is part of the identity")
	ms.False(response.Items[2].Exists, "claim is part of the identity")

	empty, err := CheckPaymentExistence(ms.DB, api.PaymentExistenceInput{})
	ms.NoError(err)
	ms.Len(empty.Items, 0)
}
