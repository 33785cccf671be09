package statemachine

import (
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		wantErr bool
	}{
		{"restaurant accepts", models.StatusRegistered, models.StatusPreparing, ActorRestaurant, false},
		{"restaurant rejects", models.StatusRegistered, models.StatusCancelled, ActorRestaurant, false},
		{"customer cancels new order", models.StatusRegistered, models.StatusCancelled, ActorCustomer, false},
		{"restaurant dispatches", models.StatusPreparing, models.StatusSent, ActorRestaurant, false},
		{"customer confirms delivery", models.StatusSent, models.StatusDelivered, ActorCustomer, false},
		{"support confirms delivery", models.StatusSent, models.StatusDelivered, ActorSupport, false},
		{"customer cannot accept", models.StatusRegistered, models.StatusPreparing, ActorCustomer, true},
		{"no cancel once preparing", models.StatusPreparing, models.StatusCancelled, ActorRestaurant, true},
		{"no skipping to delivered", models.StatusRegistered, models.StatusDelivered, ActorCustomer, true},
		{"restaurant cannot confirm delivery", models.StatusSent, models.StatusDelivered, ActorRestaurant, true},
		{"delivered is terminal", models.StatusDelivered, models.StatusCancelled, ActorSupport, true},
		{"cancelled is terminal", models.StatusCancelled, models.StatusRegistered, ActorSupport, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPreparing, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusRegistered))
	assert.Equal(t, []models.OrderStatus{models.StatusSent}, ValidTransitionsFrom(models.StatusPreparing))
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))

	err := CanTransition(models.StatusDelivered, models.StatusSent, ActorSupport)
	assert.ErrorContains(t, err, "none (terminal state)")
}
