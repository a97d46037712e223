package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// CustomerType separates retail and wholesale buyers
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "RETAIL"
	CustomerTypeWholesale CustomerType = "WHOLESALE"
)

func (t CustomerType) String() string {
	return string(t)
}

func (t CustomerType) IsValid() bool {
	return t == CustomerTypeRetail || t == CustomerTypeWholesale
}

// UnmarshalJSON accepts the type in any letter case
func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	ct := CustomerType(strings.ToUpper(strings.TrimSpace(str)))
	if !ct.IsValid() {
		return fmt.Errorf("invalid customer type %q", str)
	}
	*t = ct
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*t = CustomerType(str)
	return nil
}
