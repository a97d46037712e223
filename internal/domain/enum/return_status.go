package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReturnStatus represents the review state of a customer return
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "Pending"
	ReturnStatusApproved ReturnStatus = "Approved"
	ReturnStatusRejected ReturnStatus = "Rejected"
)

func (s ReturnStatus) String() string {
	return string(s)
}

func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}

func (s *ReturnStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !ReturnStatus(str).IsValid() {
		return fmt.Errorf("invalid return status %q", str)
	}
	*s = ReturnStatus(str)
	return nil
}

func (s ReturnStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReturnStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = ReturnStatus(str)
	return nil
}
