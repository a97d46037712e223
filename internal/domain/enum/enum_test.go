package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusDraft.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusPendingInventory.CanTransitionTo(OrderStatusSubmitted))
	assert.False(t, OrderStatusSubmitted.CanTransitionTo(OrderStatusDraft))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusSubmitted))
}

func TestCustomerTypeUnmarshalIgnoresCase(t *testing.T) {
	var ct CustomerType
	require.NoError(t, json.Unmarshal([]byte(`"wholesale"`), &ct))
	assert.Equal(t, CustomerTypeWholesale, ct)

	assert.Error(t, json.Unmarshal([]byte(`"vip"`), &ct))
}

func TestScanFromBytes(t *testing.T) {
	var s ReturnStatus
	require.NoError(t, s.Scan([]byte("Approved")))
	assert.Equal(t, ReturnStatusApproved, s)

	var m MovementType
	assert.Error(t, m.Scan(42))
}

func TestRoleHomePath(t *testing.T) {
	assert.Equal(t, "/dashboard", RoleAdmin.HomePath())
	assert.Equal(t, "/sales", RoleCashier.HomePath())
}
