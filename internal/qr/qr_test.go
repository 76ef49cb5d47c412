package qr

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Payload{
		PassID:    "0b7e3c9a-5d1f-4e2b-9c8d-1a2b3c4d5e6f",
		UserID:    "f6e5d4c3-b2a1-4f9e-8d7c-6b5a4c3d2e1f",
		ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	encoded, err := EncodePayload(original)
	require.NoError(t, err)
	assert.Contains(t, encoded, original.PassID)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, original.PassID, decoded.PassID)
	assert.Equal(t, original.UserID, decoded.UserID)
	assert.True(t, original.ValidFrom.Equal(decoded.ValidFrom))
	assert.True(t, original.ValidTo.Equal(decoded.ValidTo))
}

func TestDecodePayload_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"не JSON", "BP-A1B2C3D4"},
		{"пустая строка", ""},
		{"JSON без passId", `{"userId":"u-1"}`},
		{"JSON без userId", `{"passId":"p-1"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayload(tc.data)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestGenerateImage(t *testing.T) {
	image, err := GenerateImage(Payload{
		PassID:    "pass-1",
		UserID:    "user-1",
		ValidFrom: time.Now(),
		ValidTo:   time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(image, "data:image/png;base64,"))
	assert.Greater(t, len(image), len("data:image/png;base64,"))
}
