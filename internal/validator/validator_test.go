package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decisionForm struct {
	Status  string `json:"status" binding:"required,decisionstatus"`
	Remarks string `json:"remarks" binding:"omitempty,max=10"`
}

type scanForm struct {
	Method string `json:"scanMethod" binding:"required,scanmethod"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&decisionForm{Status: "APPROVED"}))
	assert.NoError(t, v.Validate(&decisionForm{Status: "REJECTED"}))
	assert.NoError(t, v.Validate(&scanForm{Method: "QR"}))
	assert.NoError(t, v.Validate(&scanForm{Method: "MANUAL"}))

	err := v.Validate(&decisionForm{Status: "PENDING"})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be APPROVED or REJECTED", validationErr.Errors["status"])

	err = v.Validate(&scanForm{Method: "NFC"})
	require.Error(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&decisionForm{Status: "APPROVED", Remarks: "this remark is way too long"})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, validationErr.Errors, "remarks")
	assert.Equal(t, "Must be at most 10", validationErr.Errors["remarks"])
}

func TestValidate_RequiredMessage(t *testing.T) {
	v := New()

	err := v.Validate(&decisionForm{})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", validationErr.Errors["status"])
}
