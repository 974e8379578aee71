package utils

import (
	"errors"
	"strings"
)

// LabelCodePrefix starts every location label payload.
// Format: ECK1.COM/L{address}{SUFFIX}, e.g. ECK1.COM/L4-016-0026-30IB
const LabelCodePrefix = "ECK1.COM/L"

var ErrNotLabelCode = errors.New("not a location label code")

// LabelCode is a decoded location label
type LabelCode struct {
	Address string // as printed, digits and dashes
	Suffix  string // issuing instance, upper case letters
}

// EncodeLabelCode builds the QR payload for an address
func EncodeLabelCode(addr, suffix string) string {
	return LabelCodePrefix + addr + strings.ToUpper(suffix)
}

// IsLabelCode reports whether a scanned string carries the label prefix.
// Scanners may add a URL scheme or lower case the payload.
func IsLabelCode(code string) bool {
	return strings.HasPrefix(trimScheme(strings.ToUpper(strings.TrimSpace(code))), LabelCodePrefix)
}

// DecodeLabelCode splits a scanned label into address and instance suffix.
// The address itself is not validated here.
func DecodeLabelCode(code string) (*LabelCode, error) {
	code = trimScheme(strings.ToUpper(strings.TrimSpace(code)))
	if !strings.HasPrefix(code, LabelCodePrefix) {
		return nil, ErrNotLabelCode
	}
	body := code[len(LabelCodePrefix):]

	// the address ends at the first letter
	split := strings.IndexFunc(body, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	if split < 0 {
		split = len(body)
	}
	if split == 0 {
		return nil, ErrNotLabelCode
	}
	return &LabelCode{Address: body[:split], Suffix: body[split:]}, nil
}

func trimScheme(code string) string {
	for _, scheme := range []string{"HTTPS://", "HTTP://"} {
		if strings.HasPrefix(code, scheme) {
			return code[len(scheme):]
		}
	}
	return code
}
