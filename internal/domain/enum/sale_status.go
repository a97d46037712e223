package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus is the lifecycle state of a sale
type OrderStatus string

const (
	OrderStatusDraft            OrderStatus = "draft"
	OrderStatusPendingInventory OrderStatus = "pending_inventory"
	OrderStatusSubmitted        OrderStatus = "submitted"
	OrderStatusCompleted        OrderStatus = "completed"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPendingInventory, OrderStatusSubmitted, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a sale in status s may move to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return next == OrderStatusPendingInventory || next == OrderStatusSubmitted || next == OrderStatusCompleted
	case OrderStatusPendingInventory:
		return next == OrderStatusSubmitted || next == OrderStatusCompleted
	case OrderStatusSubmitted:
		return next == OrderStatusCompleted
	}
	return false
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !OrderStatus(str).IsValid() {
		return fmt.Errorf("invalid order status %q", str)
	}
	*s = OrderStatus(str)
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = OrderStatus(str)
	return nil
}

// PaymentStatus is derived from the payments recorded against a sale
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = PaymentStatus(str)
	return nil
}

// PaymentMethod is how a payment was settled
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodBank    PaymentMethod = "bank"
	PaymentMethodEWallet PaymentMethod = "ewallet"
)

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBank, PaymentMethodEWallet:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !PaymentMethod(str).IsValid() {
		return fmt.Errorf("invalid payment method %q", str)
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}
