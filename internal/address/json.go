package address

import (
	"encoding/json"
	"strconv"
)

// Value types marshal as plain integers and are validated on the way in.

func (c CellNumber) MarshalJSON() ([]byte, error) { return json.Marshal(c.value) }

func (c *CellNumber) UnmarshalJSON(data []byte) error {
	n, err := unmarshalInt("cell", data)
	if err != nil {
		return err
	}
	v, err := NewCellNumber(n)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (a AisleNumber) MarshalJSON() ([]byte, error) { return json.Marshal(a.value) }

func (a *AisleNumber) UnmarshalJSON(data []byte) error {
	n, err := unmarshalInt("aisle", data)
	if err != nil {
		return err
	}
	v, err := NewAisleNumber(n)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (p PositionNumber) MarshalJSON() ([]byte, error) { return json.Marshal(p.value) }

func (p *PositionNumber) UnmarshalJSON(data []byte) error {
	n, err := unmarshalInt("position", data)
	if err != nil {
		return err
	}
	v, err := NewPositionNumber(n)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (l LevelNumber) MarshalJSON() ([]byte, error) { return json.Marshal(l.value) }

func (l *LevelNumber) UnmarshalJSON(data []byte) error {
	n, err := unmarshalInt("level", data)
	if err != nil {
		return err
	}
	v, err := NewLevelNumber(n)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func unmarshalInt(field string, data []byte) (int, error) {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if json.Unmarshal(data, &s) == nil {
			return atoi(field, s)
		}
		return 0, &ValidationError{Field: field, Value: strconv.Quote(string(data)), Kind: ErrNotANumber}
	}
	return n, nil
}
