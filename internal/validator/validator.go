// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("account_status", validateAccountStatus)
		_ = v.RegisterValidation("carrier_type", validateCarrierType)
		_ = v.RegisterValidation("policy_status", validatePolicyStatus)
		_ = v.RegisterValidation("installment_status", validateInstallmentStatus)
		_ = v.RegisterValidation("pipeline_stage", validatePipelineStage)
		_ = v.RegisterValidation("prospect_source", validateProspectSource)
		_ = v.RegisterValidation("service_item_type", validateServiceItemType)
		_ = v.RegisterValidation("service_item_status", validateServiceItemStatus)
		_ = v.RegisterValidation("service_item_urgency", validateServiceItemUrgency)
		_ = v.RegisterValidation("task_priority", validateTaskPriority)
		_ = v.RegisterValidation("task_status", validateTaskStatus)
		_ = v.RegisterValidation("sale_type", validateSaleType)
		_ = v.RegisterValidation("comm_direction", validateCommDirection)
		_ = v.RegisterValidation("comm_channel", validateCommChannel)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Admin", "Producer", "CSR", "ReadOnly":
		return true
	}
	return false
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Personal", "Commercial":
		return true
	}
	return false
}

func validateAccountStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Active", "Inactive", "Prospect":
		return true
	}
	return false
}

func validateCarrierType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Direct", "Wholesaler", "MGA":
		return true
	}
	return false
}

func validatePolicyStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Active", "Cancelled", "Expired", "Non-Renewed", "Rewritten":
		return true
	}
	return false
}

func validateInstallmentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Scheduled", "Reminded", "Paid", "Past Due", "Cancelled":
		return true
	}
	return false
}

func validatePipelineStage(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "New Lead", "Contacted", "Quoting", "Quoted", "Closed-Won", "Closed-Lost":
		return true
	}
	return false
}

func validateProspectSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Referral", "Web", "Walk-in", "Marketing", "Cross-Sell", "Other":
		return true
	}
	return false
}

func validateServiceItemType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Renewal", "MidTermReview", "Rewrite", "Endorsement",
		"UWIssue", "NonRenewal", "PaymentIssue", "General":
		return true
	}
	return false
}

func validateServiceItemStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Not Started", "In Progress", "Awaiting Insured", "Awaiting Carrier",
		"Action Required", "Completed", "Closed", "Escalated":
		return true
	}
	return false
}

func validateServiceItemUrgency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Low", "Medium", "High", "Critical":
		return true
	}
	return false
}

func validateTaskPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Low", "Medium", "High", "Urgent":
		return true
	}
	return false
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Open", "In Progress", "Completed", "Cancelled":
		return true
	}
	return false
}

func validateSaleType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "New Business", "Rewrite", "Cross-Sell", "Renewal":
		return true
	}
	return false
}

func validateCommDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Inbound", "Outbound":
		return true
	}
	return false
}

func validateCommChannel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Email", "Phone", "SMS", "InPerson", "Other":
		return true
	}
	return false
}
