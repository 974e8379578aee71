package address

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Side is one of the two position sequences of a physical aisle.
// Odd sides hold positions 1, 3, 5... and even sides 2, 4, 6...
type Side string

const (
	Odd  Side = "odd"
	Even Side = "even"
)

// ParseSide accepts "odd" or "even" (case insensitive)
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Odd:
		return Odd, nil
	case Even:
		return Even, nil
	}
	return "", fmt.Errorf("invalid aisle side %q: must be odd or even", s)
}

func (s Side) IsOdd() bool { return s == Odd }
func (s Side) Valid() bool { return s == Odd || s == Even }
func (s Side) String() string { return string(s) }

// Label is the capitalised form used in aisle labels
func (s Side) Label() string {
	if s == Odd {
		return "Odd"
	}
	return "Even"
}

// Value implements driver.Valuer so a third side can never reach the database
func (s Side) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid aisle side %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *Side) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot convert %v to Side", value)
	}
	parsed, err := ParseSide(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
