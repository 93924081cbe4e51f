package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryConflict     = ErrorCategory("Conflict")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")
	ErrorResourceNotFound      = ErrorKey("ErrorResourceNotFound")
	ErrorInvalidPagination     = ErrorKey("ErrorInvalidPagination")

	// Authentication
	ErrorCreatingAccessToken = ErrorKey("ErrorCreatingAccessToken")
	ErrorInvalidCredentials  = ErrorKey("ErrorInvalidCredentials")

	// Claim
	ErrorClaimStatus           = ErrorKey("ErrorClaimStatus")
	ErrorClaimMissingReport    = ErrorKey("ErrorClaimMissingReport")
	ErrorClaimIssuerRequired   = ErrorKey("ErrorClaimIssuerRequired")
	ErrorClaimIssuerNotAllowed = ErrorKey("ErrorClaimIssuerNotAllowed")
	ErrorClaimEmptyBulkRequest = ErrorKey("ErrorClaimEmptyBulkRequest")
	ErrorClaimsNotFound        = ErrorKey("ErrorClaimsNotFound")

	// Issued document
	ErrorIssuedDocumentNotFound     = ErrorKey("ErrorIssuedDocumentNotFound")
	ErrorIssuedDocumentWrongPatient = ErrorKey("ErrorIssuedDocumentWrongPatient")
	ErrorIssuedDocumentConsumed     = ErrorKey("ErrorIssuedDocumentConsumed")

	// Evaluation
	ErrorEvaluationBucket       = ErrorKey("ErrorEvaluationBucket")
	ErrorEvaluationEmptyBatch   = ErrorKey("ErrorEvaluationEmptyBatch")
	ErrorEvaluationClaimMissing = ErrorKey("ErrorEvaluationClaimMissing")

	// Task
	ErrorTaskNotFound           = ErrorKey("ErrorTaskNotFound")
	ErrorTaskStatus             = ErrorKey("ErrorTaskStatus")
	ErrorTaskRequiredValidators = ErrorKey("ErrorTaskRequiredValidators")
	ErrorTaskRewardAmount       = ErrorKey("ErrorTaskRewardAmount")
	ErrorTaskAlreadyCompleted   = ErrorKey("ErrorTaskAlreadyCompleted")

	// Payment
	ErrorPaymentEmptyBatch = ErrorKey("ErrorPaymentEmptyBatch")

	// File
	ErrorReceivingFile           = ErrorKey("ErrorReceivingFile")
	ErrorStoreFileBadContentType = ErrorKey("ErrorStoreFileBadContentType")
	ErrorStoreFileTooLarge       = ErrorKey("ErrorStoreFileTooLarge")
	ErrorUnableToReadFile        = ErrorKey("ErrorUnableToReadFile")
	ErrorUnableToStoreFile       = ErrorKey("ErrorUnableToStoreFile")

	// User
	ErrorUserNotFound = ErrorKey("ErrorUserNotFound")
	ErrorUserRole     = ErrorKey("ErrorUserRole")
)
