package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Please enter a valid amount greater than 0", Text(FeeAmountInvalid))
	assert.Equal(t, "Please select a payment date", Text(FeeDateRequired))
	assert.Equal(t, "Please select a payment mode", Text(FeeModeRequired))
	assert.Equal(t, "UNKNOWN_CODE", Text(Code("UNKNOWN_CODE")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Are you sure you want to delete Jo?", Format(StudentDeleteConfirm, "Jo"))
	assert.Equal(t, "Error deleting payment record: boom", Format(FeeDeleteFailed, "boom"))
	assert.Equal(t, "Student deleted successfully!", Format(StudentDeleted))
}
