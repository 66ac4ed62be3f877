package entity

// OrderStatus is the order lifecycle state. Transitions are restricted
// to the graph below; every mutation path checks CanTransition before
// touching the row, so "illegal jumps" (e.g. PENDING straight to
// DELIVERED) are rejected instead of silently applied.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusFailed    OrderStatus = "FAILED"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCanceled  OrderStatus = "CANCELED"
)

var orderStatusGraph = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPaid, StatusFailed, StatusCanceled},
	StatusPaid:      {StatusConfirmed, StatusCanceled},
	StatusFailed:    {StatusPaid, StatusCanceled}, // payment retry
	StatusConfirmed: {StatusPreparing, StatusReady, StatusCanceled},
	StatusPreparing: {StatusReady, StatusCanceled},
	StatusReady:     {StatusInTransit, StatusCanceled},
	StatusInTransit: {StatusDelivered},
	StatusDelivered: {},
	StatusCanceled:  {},
}

// ParseOrderStatus validates a client-supplied status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderStatusGraph[st]
	return st, ok
}

// AllowedNext returns the set of states reachable from s.
func AllowedNext(s OrderStatus) []OrderStatus {
	return orderStatusGraph[s]
}

func CanTransition(from, to OrderStatus) bool {
	for _, n := range orderStatusGraph[from] {
		if n == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s OrderStatus) bool {
	return len(orderStatusGraph[s]) == 0
}
