package service

import (
	"github.com/2063ti/flugede-gadgets-store/internal/constants"
)

// allowedTransitions is the forward order flow. Cancellation is handled by
// the dedicated cancel paths; admins may bypass the table with force.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPacked:    true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPacked: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturned: true,
	},
}

// isTransitionAllowed reports whether the forward flow permits from -> to.
func isTransitionAllowed(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// isCancellable reports whether a user may cancel from this status.
func isCancellable(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusConfirmed
}
