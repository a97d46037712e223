package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PurchaseRequestStatus represents the approval state of a purchase request
type PurchaseRequestStatus string

const (
	PurchaseRequestDraft     PurchaseRequestStatus = "draft"
	PurchaseRequestSubmitted PurchaseRequestStatus = "submitted"
	PurchaseRequestApproved  PurchaseRequestStatus = "approved"
	PurchaseRequestRejected  PurchaseRequestStatus = "rejected"
)

func (s PurchaseRequestStatus) String() string {
	return string(s)
}

func (s PurchaseRequestStatus) IsValid() bool {
	switch s {
	case PurchaseRequestDraft, PurchaseRequestSubmitted, PurchaseRequestApproved, PurchaseRequestRejected:
		return true
	}
	return false
}

func (s *PurchaseRequestStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !PurchaseRequestStatus(str).IsValid() {
		return fmt.Errorf("invalid purchase request status %q", str)
	}
	*s = PurchaseRequestStatus(str)
	return nil
}

func (s PurchaseRequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PurchaseRequestStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = PurchaseRequestStatus(str)
	return nil
}
