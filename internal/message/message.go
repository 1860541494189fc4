package message

import "fmt"

// Code identifies a user-facing message shown by the view-states.
type Code string

const (
	// ─── Fee form validation ───────────────────────────────────────────
	FeeAmountInvalid Code = "FEE_AMOUNT_INVALID"
	FeeDateRequired  Code = "FEE_DATE_REQUIRED"
	FeeModeRequired  Code = "FEE_MODE_REQUIRED"

	// ─── Fee notifications ─────────────────────────────────────────────
	FeeRecorded      Code = "FEE_RECORDED"
	FeeDeleteConfirm Code = "FEE_DELETE_CONFIRM"
	FeeDeleted       Code = "FEE_DELETED"
	FeeDeleteFailed  Code = "FEE_DELETE_FAILED"

	// ─── Student notifications ─────────────────────────────────────────
	StudentAdded         Code = "STUDENT_ADDED"
	StudentUpdated       Code = "STUDENT_UPDATED"
	StudentDeleteConfirm Code = "STUDENT_DELETE_CONFIRM"
	StudentDeleted       Code = "STUDENT_DELETED"
	StudentDeleteFailed  Code = "STUDENT_DELETE_FAILED"
)

// Text returns the message for a given code.
// Codes that take arguments return their format template; use Format.
func Text(code Code) string {
	switch code {
	case FeeAmountInvalid:
		return "Please enter a valid amount greater than 0"
	case FeeDateRequired:
		return "Please select a payment date"
	case FeeModeRequired:
		return "Please select a payment mode"

	case FeeRecorded:
		return "Fee payment recorded successfully!"
	case FeeDeleteConfirm:
		return "Are you sure you want to delete this payment record?"
	case FeeDeleted:
		return "Payment record deleted successfully!"
	case FeeDeleteFailed:
		return "Error deleting payment record: %s"

	case StudentAdded:
		return "Student added successfully!"
	case StudentUpdated:
		return "Student updated successfully!"
	case StudentDeleteConfirm:
		return "Are you sure you want to delete %s?"
	case StudentDeleted:
		return "Student deleted successfully!"
	case StudentDeleteFailed:
		return "Error deleting student: %s"
	default:
		return string(code)
	}
}

// Format fills the template of code with args.
func Format(code Code, args ...interface{}) string {
	return fmt.Sprintf(Text(code), args...)
}
