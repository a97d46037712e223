package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MovementType classifies a stock ledger entry
type MovementType string

const (
	MovementTypeIn     MovementType = "in"
	MovementTypeOut    MovementType = "out"
	MovementTypeAdjust MovementType = "adjust"
)

func (t MovementType) String() string {
	return string(t)
}

// IsValid reports whether t is a known movement type
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return true
	}
	return false
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !MovementType(str).IsValid() {
		return fmt.Errorf("invalid movement type %q", str)
	}
	*t = MovementType(str)
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return err
	}
	*t = MovementType(s)
	return nil
}
