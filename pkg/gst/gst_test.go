package gst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidFormat(t *testing.T) {
	valid := []string{
		"27AAPFU0939F1ZV",
		"29AABCU9603R1ZJ",
		"07AABCS1429B1Z5",
		" 27aapfu0939f1zv ", // normalized before matching
	}
	for _, gstin := range valid {
		assert.True(t, IsValidFormat(gstin), "expected %q to be valid", gstin)
	}

	invalid := []string{
		"",
		"27AAPFU0939F1Z",   // too short
		"27AAPFU0939F1ZVX", // too long
		"AAAPFU0939F1ZV27", // state code not leading
		"27AAPFU0939F0ZV",  // entity number 0 not allowed
		"27AAPFU0939F1XV",  // missing fixed Z
	}
	for _, gstin := range invalid {
		assert.False(t, IsValidFormat(gstin), "expected %q to be invalid", gstin)
	}
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, "27", StateCode("27AAPFU0939F1ZV"))
	assert.Equal(t, "", StateCode("not-a-gstin"))
}

func TestFormatVerifier(t *testing.T) {
	verifier := NewFormatVerifier()

	ok, err := verifier.Verify(context.Background(), "29AABCU9603R1ZJ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifier.Verify(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, ok)
}
