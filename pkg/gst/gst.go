package gst

import (
	"context"
	"regexp"
	"strings"
)

// gstinPattern matches the 15-character GSTIN layout: two-digit state code,
// ten-character PAN, entity number, Z, checksum character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// Normalize strips surrounding whitespace and uppercases the GSTIN.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsValidFormat reports whether the value matches the GSTIN layout.
func IsValidFormat(value string) bool {
	return gstinPattern.MatchString(Normalize(value))
}

// StateCode returns the two-digit state prefix of a well-formed GSTIN.
func StateCode(value string) string {
	normalized := Normalize(value)
	if !gstinPattern.MatchString(normalized) {
		return ""
	}
	return normalized[:2]
}

// Verifier answers whether a GSTIN belongs to a real registered business.
type Verifier interface {
	Verify(ctx context.Context, gstin string) (bool, error)
}

// FormatVerifier approves any GSTIN that passes the format check. The
// government lookup API requires a commercial subscription, so format
// verification is the production default.
type FormatVerifier struct{}

func NewFormatVerifier() *FormatVerifier {
	return &FormatVerifier{}
}

func (v *FormatVerifier) Verify(_ context.Context, gstin string) (bool, error) {
	return IsValidFormat(gstin), nil
}
