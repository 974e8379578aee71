package utils

import (
	"errors"
	"testing"
)

func TestEncodeLabelCode(t *testing.T) {
	if got := EncodeLabelCode("4-016-0026-30", "ib"); got != "ECK1.COM/L4-016-0026-30IB" {
		t.Errorf("EncodeLabelCode = %s", got)
	}
}

func TestDecodeLabelCode(t *testing.T) {
	testCases := []struct {
		in, address, suffix string
	}{
		{"ECK1.COM/L4-016-0026-30IB", "4-016-0026-30", "IB"},
		{"https://eck1.com/l1-001-0001-00", "1-001-0001-00", ""},
		{" HTTP://ECK1.COM/L1-5-54-20XY ", "1-5-54-20", "XY"},
	}

	for _, tc := range testCases {
		got, err := DecodeLabelCode(tc.in)
		if err != nil {
			t.Fatalf("DecodeLabelCode(%q): %v", tc.in, err)
		}
		if got.Address != tc.address || got.Suffix != tc.suffix {
			t.Errorf("DecodeLabelCode(%q) = %+v, want %s/%s", tc.in, got, tc.address, tc.suffix)
		}
	}
}

func TestDecodeLabelCodeRejects(t *testing.T) {
	if IsLabelCode("1-001-0001-00") {
		t.Error("a plain address is not a label code")
	}
	for _, in := range []string{"", "1-001-0001-00", "ECK1.COM/LIB", "ECK1.COM/X1-001-0001-00"} {
		if _, err := DecodeLabelCode(in); !errors.Is(err, ErrNotLabelCode) {
			t.Errorf("DecodeLabelCode(%q): expected ErrNotLabelCode, got %v", in, err)
		}
	}
}
