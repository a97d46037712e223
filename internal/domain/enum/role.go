package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the single role a user account holds
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// HomePath is where the client should navigate after login
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/dashboard"
	case RoleManager:
		return "/reports/stock"
	default:
		return "/sales"
	}
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	role := Role(strings.ToLower(strings.TrimSpace(str)))
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", str)
	}
	*r = role
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*r = Role(str)
	return nil
}
