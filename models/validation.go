package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/validate/v3"

	"github.com/verixa-platform/verixa-api/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"claimStatus":      validateClaimStatus,
	"evaluationBucket": validateEvaluationBucket,
	"taskStatus":       validateTaskStatus,
	"userRole":         validateUserRole,
}

func validateModel(m interface{}) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	msg := strings.Join(msgs, " |")
	return msg
}

func validateClaimStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimStatus); ok {
		_, valid := ValidClaimStatus[value]
		return valid
	}
	return false
}

func validateEvaluationBucket(field validator.FieldLevel) bool {
	// bucket is nullable; a null value means the evaluator gave no routing hint
	value, ok := field.Field().Interface().(nulls.String)
	if !ok {
		return false
	}
	if !value.Valid {
		return true
	}
	_, valid := ValidEvaluationBuckets[api.EvaluationBucket(value.String)]
	return valid
}

func validateTaskStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.TaskStatus); ok {
		_, valid := ValidTaskStatus[value]
		return valid
	}
	return false
}

func validateUserRole(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.UserRole); ok {
		_, valid := ValidUserRoles[value]
		return valid
	}
	return false
}

func claimStructLevelValidation(sl validator.StructLevel) {
	claim, ok := sl.Current().Interface().(Claim)
	if !ok {
		panic("claimStructLevelValidation registered to a type other than Claim")
	}

	// The verified side of the issuer policy is enforced at creation; a claim can
	// become verified later (auto approval) without gaining an issuer.
	if !claim.IsVerified && claim.IssuedBy.Valid {
		sl.ReportError(claim.IssuedBy, "issued_by", "IssuedBy", "issuer_not_allowed_for_unverified", "")
	}
}

func taskStructLevelValidation(sl validator.StructLevel) {
	task, ok := sl.Current().Interface().(Task)
	if !ok {
		panic("taskStructLevelValidation registered to a type other than Task")
	}

	if task.RequiredValidators < 1 {
		sl.ReportError(task.RequiredValidators, "required_validators", "RequiredValidators",
			"required_validators_must_be_positive", "")
	}

	if task.Reward < 0 {
		sl.ReportError(task.Reward, "reward", "Reward", "reward_must_not_be_negative", "")
	}
}
