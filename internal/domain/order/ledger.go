package order

import (
	"github.com/bookstore/backend/internal/domain/shared/valueobject"
)

// Ledger is the append-only history of committed orders for the session.
// Ordering is commit order; identity is sequential starting at 1.
type Ledger struct {
	orders []*Order
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{orders: make([]*Order, 0)}
}

// NextID returns the identity the next committed order will receive
func (l *Ledger) NextID() int {
	return len(l.orders) + 1
}

// Commit creates the immutable order record with the next sequential
// identity and appends it to the ledger. Orders are never removed.
func (l *Ledger) Commit(customerName, email, address string, lines []OrderLine, subtotal, tax, total valueobject.Money) (*Order, error) {
	o, err := newOrder(l.NextID(), customerName, email, address, lines, subtotal, tax, total)
	if err != nil {
		return nil, err
	}
	l.orders = append(l.orders, o)
	return o, nil
}

// Orders returns all committed orders in commit order.
// The returned slice is a copy; the orders themselves are immutable.
func (l *Ledger) Orders() []*Order {
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Len returns the number of committed orders
func (l *Ledger) Len() int {
	return len(l.orders)
}

// IsEmpty returns true if no orders have been committed
func (l *Ledger) IsEmpty() bool {
	return len(l.orders) == 0
}
