package order

import "github.com/tradelink/backend/internal/domain/shared"

// Status represents the status of an order
type Status string

const (
	StatusPending        Status = "pending"
	StatusPlaced         Status = "placed"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusReturned       Status = "returned"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPlaced, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusOutForDelivery, StatusDelivered,
		StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status permits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

// ParseStatus normalizes a raw status string at the boundary. Unknown
// spellings are rejected here, never deep in business logic.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Unknown order status: "+raw)
	}
	return s, nil
}

// Role identifies the kind of actor requesting a transition
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// IsValid checks if the role is a known actor role
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes a raw role string at the boundary
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Unknown actor role: "+raw)
	}
	return r, nil
}

// transitions maps, per role, each current status to the set of statuses the
// role may move the order into. One table per role keeps role logic out of
// the handlers.
var transitions = map[Role]map[Status][]Status{
	RoleBuyer: {
		// Buyers may only cancel, and only before fulfillment starts.
		StatusPending:    {StatusCancelled},
		StatusPlaced:     {StatusCancelled},
		StatusConfirmed:  {StatusCancelled},
		StatusProcessing: {StatusCancelled},
	},
	RoleSeller: {
		StatusPending:        {StatusConfirmed, StatusCancelled},
		StatusPlaced:         {StatusConfirmed, StatusCancelled},
		StatusConfirmed:      {StatusProcessing, StatusCancelled},
		StatusProcessing:     {StatusShipped, StatusCancelled},
		StatusShipped:        {StatusOutForDelivery, StatusDelivered},
		StatusOutForDelivery: {StatusDelivered},
	},
	RoleAdmin: {
		// Admins may take any forward step, cancel any in-flight order,
		// and are the only actor able to reach returned.
		StatusPending:        {StatusPlaced, StatusConfirmed, StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusPlaced:         {StatusConfirmed, StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusConfirmed:      {StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusProcessing:     {StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusShipped:        {StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusOutForDelivery: {StatusDelivered, StatusCancelled},
		StatusDelivered:      {StatusReturned},
	},
}

// CanTransition reports whether the role may move an order from one status to
// another according to its transition table.
func CanTransition(role Role, from, to Status) bool {
	table, ok := transitions[role]
	if !ok {
		return false
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedNext returns the statuses the role may move the order into from the
// given status. The returned slice must not be mutated.
func AllowedNext(role Role, from Status) []Status {
	return transitions[role][from]
}

// RequiresRestock reports whether a transition moves the order into a
// terminal state for the first time, which adds every item's quantity back
// to product stock.
func RequiresRestock(from, to Status) bool {
	return !from.IsTerminal() && to.IsTerminal()
}
