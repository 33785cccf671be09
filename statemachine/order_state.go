package statemachine

import (
	"fmt"
	"strings"

	"food-ordering-api/models"
)

// Actors allowed to drive transitions
const (
	ActorRestaurant = "restaurant"
	ActorCustomer   = "customer"
	ActorSupport    = "support"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From   models.OrderStatus `json:"from"`
	To     models.OrderStatus `json:"to"`
	Actor  string             `json:"actor"`
	Action string             `json:"action"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Restaurant accepts or rejects a new order
	{From: models.StatusRegistered, To: models.StatusPreparing, Actor: ActorRestaurant, Action: "accept"},
	{From: models.StatusRegistered, To: models.StatusCancelled, Actor: ActorRestaurant, Action: "reject"},
	// Customer may withdraw an order nobody has accepted yet
	{From: models.StatusRegistered, To: models.StatusCancelled, Actor: ActorCustomer, Action: "cancel"},
	// Restaurant hands the order to delivery
	{From: models.StatusPreparing, To: models.StatusSent, Actor: ActorRestaurant, Action: "dispatch"},
	// Customer confirms receipt
	{From: models.StatusSent, To: models.StatusDelivered, Actor: ActorCustomer, Action: "confirm"},
	// Support can push any step forward on behalf of the parties
	{From: models.StatusRegistered, To: models.StatusPreparing, Actor: ActorSupport, Action: "accept"},
	{From: models.StatusRegistered, To: models.StatusCancelled, Actor: ActorSupport, Action: "reject"},
	{From: models.StatusPreparing, To: models.StatusSent, Actor: ActorSupport, Action: "dispatch"},
	{From: models.StatusSent, To: models.StatusDelivered, Actor: ActorSupport, Action: "confirm"},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%s → %s is not allowed for actor '%s'; valid transitions from %s are: %s",
		from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
