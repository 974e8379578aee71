package address

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFormatAddress(t *testing.T) {
	testCases := []struct {
		cell, aisle, position, level int
		want                         string
	}{
		{1, 1, 1, 0, "1-001-0001-00"},
		{4, 16, 26, 30, "4-016-0026-30"},
		{9, 999, 9999, 90, "9-999-9999-90"},
	}

	for _, tc := range testCases {
		a, err := New(tc.cell, tc.aisle, tc.position, tc.level)
		if err != nil {
			t.Fatalf("New(%d,%d,%d,%d): %v", tc.cell, tc.aisle, tc.position, tc.level, err)
		}
		if got := Format(a); got != tc.want {
			t.Errorf("Format = %s, want %s", got, tc.want)
		}
	}
}

func TestParseFullAddress(t *testing.T) {
	a, err := Parse("1-005-0054-20")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if a.Cell.Int() != 1 || a.Aisle.Int() != 5 || a.Position.Int() != 54 || a.Level.Int() != 20 {
		t.Errorf("Parsed wrong components: %+v", a)
	}
}

func TestParseNormalizesShortForms(t *testing.T) {
	short, err := Parse("1-5-54-20")
	if err != nil {
		t.Fatalf("Failed to parse short form: %v", err)
	}
	full, _ := Parse("1-005-0054-20")
	if short != full {
		t.Errorf("short form parsed to %v, want %v", short, full)
	}

	if got := Normalize("1-5-54-0"); got != "1-005-0054-00" {
		t.Errorf("Normalize = %s, want 1-005-0054-00", got)
	}
}

func TestParseInvalidFormat(t *testing.T) {
	inputs := []string{
		"",
		"garbage",
		"1-005-0054",
		"1-005-0054-20-1",
		"12-005-0054-20",  // cell is one digit
		"1-1000-0054-20",  // aisle too long
		"1-005-12345-20",  // position too long
		"1-005-0054-100",  // level too long
		"1-00a-0054-20",
		"1--0054-20",
		"0-005-0054-20",   // cell out of range
		"1-000-0054-20",   // aisle out of range
		"1-005-0000-20",   // position out of range
	}

	for _, in := range inputs {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Parse(%q): expected ErrInvalidFormat, got %v", in, err)
		}
	}
}

func TestParseInvalidLevel(t *testing.T) {
	for _, in := range []string{"1-005-0054-15", "1-005-0054-95", "1-005-0054-5"} {
		_, err := Parse(in)
		if !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("Parse(%q): expected ErrInvalidLevel, got %v", in, err)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): expected *ParseError, got %T", in, err)
		}
	}
}

func TestAddressRoundTrip(t *testing.T) {
	for cell := 1; cell <= 9; cell += 4 {
		for aisle := 1; aisle <= 999; aisle += 331 {
			for position := 1; position <= 9999; position += 1733 {
				for level := 0; level <= 90; level += 30 {
					a, err := New(cell, aisle, position, level)
					if err != nil {
						t.Fatalf("New: %v", err)
					}
					parsed, err := Parse(Format(a))
					if err != nil {
						t.Fatalf("Parse(%s): %v", Format(a), err)
					}
					if parsed != a {
						t.Errorf("round trip mismatch: %v -> %s -> %v", a, Format(a), parsed)
					}
				}
			}
		}
	}
}

func TestFormatOfParsedIsNormalized(t *testing.T) {
	for _, in := range []string{"4-16-26-30", "4-016-0026-30", " 4-016-26-3 "} {
		a, err := Parse(in)
		if in == " 4-016-26-3 " {
			// level "3" pads to "03", which is not a multiple of ten
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Parse(%q): expected ErrInvalidLevel, got %v", in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := Format(a); got != Normalize(in) {
			t.Errorf("Format(Parse(%q)) = %s, want %s", in, got, Normalize(in))
		}
	}
}

func TestAddressSide(t *testing.T) {
	odd, _ := Parse("1-001-0007-00")
	even, _ := Parse("1-001-0008-00")
	if odd.Side() != Odd || even.Side() != Even {
		t.Errorf("sides: got %s/%s, want odd/even", odd.Side(), even.Side())
	}
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("54-20")
	if err != nil {
		t.Fatalf("ParseSlot: %v", err)
	}
	if slot.String() != "0054-20" {
		t.Errorf("slot = %s, want 0054-20", slot)
	}
	if _, err := ParseSlot("54-25"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("ParseSlot(54-25): expected ErrInvalidLevel, got %v", err)
	}
	if _, err := ParseSlot("invalid"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseSlot(invalid): expected ErrInvalidFormat, got %v", err)
	}
}

func TestAddressJSON(t *testing.T) {
	a, _ := New(4, 16, 26, 30)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"cell":4,"aisle":16,"position":26,"level":30}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back FullAddress
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != a {
		t.Errorf("got %v, want %v", back, a)
	}

	if err := json.Unmarshal([]byte(`{"cell":4,"aisle":16,"position":26,"level":35}`), &back); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for level 35, got %v", err)
	}
}
