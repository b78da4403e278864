package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderLifecycleIsLinear(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	assert.True(t, order.CanTransitionTo(OrderStatusPaid))
	assert.False(t, order.CanTransitionTo(OrderStatusInProgress))
	assert.False(t, order.CanTransitionTo(OrderStatusCompleted))

	order.Status = OrderStatusPaid
	assert.True(t, order.CanTransitionTo(OrderStatusInProgress))
	assert.False(t, order.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, order.CanTransitionTo(OrderStatusPaid))

	order.Status = OrderStatusInProgress
	assert.True(t, order.CanTransitionTo(OrderStatusCompleted))

	order.Status = OrderStatusCompleted
	assert.False(t, order.CanTransitionTo(OrderStatusPending))
	assert.False(t, order.CanTransitionTo(OrderStatusPaid))
}
