// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"groupledger/internal/reconcile"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("payment_status", validatePaymentStatus)
	_ = v.RegisterValidation("member_role", validateMemberRole)
	_ = v.RegisterValidation("billing_cycle", validateBillingCycle)
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("billing_month", validateBillingMonth)
	_ = v.RegisterValidation("month_code", validateMonthCode)
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "paid", "pending", "overdue":
		return true
	}
	return false
}

func validateMemberRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "member":
		return true
	}
	return false
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	return fl.Field().String() == "monthly"
}

func validateISODate(fl validator.FieldLevel) bool {
	return reconcile.IsISODate(fl.Field().String())
}

func validateBillingMonth(fl validator.FieldLevel) bool {
	return reconcile.IsBillingMonth(fl.Field().String())
}

func validateMonthCode(fl validator.FieldLevel) bool {
	return reconcile.IsMonthCode(fl.Field().String())
}
