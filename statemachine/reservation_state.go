package statemachine

import (
	"errors"

	"github.com/bookify/reservations-api/models"
)

// Actors allowed to drive reservation transitions
const (
	ActorOwner    = "owner"
	ActorCustomer = "customer"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
	Actor string
}

// validTransitions is the authoritative state machine definition.
// CANCELLED and DECLINED are terminal: nothing leaves them. A repeat
// cancel of a CANCELLED reservation is a handler-level no-op, not a
// transition.
var validTransitions = []Transition{
	// Owner responds to a pending request
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: ActorOwner},
	{From: models.StatusPending, To: models.StatusDeclined, Actor: ActorOwner},
	// Owner may still decline a reservation they already confirmed
	{From: models.StatusConfirmed, To: models.StatusDeclined, Actor: ActorOwner},
	// Customer can withdraw until the slot is declined
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: ActorCustomer},
}

type transitionKey struct {
	From  models.ReservationStatus
	To    models.ReservationStatus
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
func ValidTransitionsFrom(status models.ReservationStatus) []models.ReservationStatus {
	var nexts []models.ReservationStatus
	seen := map[models.ReservationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.ReservationStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.ReservationStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
