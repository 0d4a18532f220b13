package order

import (
	"time"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CheckoutStatus represents the state of a checkout in progress
type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "PENDING"
	CheckoutStatusCommitted CheckoutStatus = "COMMITTED"
	CheckoutStatusCancelled CheckoutStatus = "CANCELLED"
)

// IsValid checks if the status is a valid CheckoutStatus
func (s CheckoutStatus) IsValid() bool {
	switch s {
	case CheckoutStatusPending, CheckoutStatusCommitted, CheckoutStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CheckoutStatus
func (s CheckoutStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CheckoutStatus) CanTransitionTo(target CheckoutStatus) bool {
	switch s {
	case CheckoutStatusPending:
		return target == CheckoutStatusCommitted || target == CheckoutStatusCancelled
	case CheckoutStatusCommitted, CheckoutStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for committed and cancelled checkouts
func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCommitted || s == CheckoutStatusCancelled
}

// OrderLine is a frozen copy of one cart line at purchase time.
// Title, author and unit price are snapshotted so later catalog changes
// never alter recorded orders.
type OrderLine struct {
	BookID    int
	Title     string
	Author    string
	UnitPrice decimal.Decimal
	Quantity  int
	Amount    decimal.Decimal // UnitPrice * Quantity
}

// NewOrderLine creates a frozen order line
func NewOrderLine(bookID int, title, author string, unitPrice valueobject.Money, quantity int) (OrderLine, error) {
	if bookID <= 0 {
		return OrderLine{}, shared.NewDomainError("INVALID_BOOK_ID", "Book ID must be positive")
	}
	if title == "" {
		return OrderLine{}, shared.NewDomainError("INVALID_TITLE", "Book title cannot be empty")
	}
	if quantity < 1 {
		return OrderLine{}, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return OrderLine{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return OrderLine{
		BookID:    bookID,
		Title:     title,
		Author:    author,
		UnitPrice: unitPrice.Amount(),
		Quantity:  quantity,
		Amount:    unitPrice.MultiplyByInt(int64(quantity)).Amount(),
	}, nil
}

// AmountMoney returns the line amount as Money
func (l OrderLine) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.Amount)
}

// UnitPriceMoney returns the unit price as Money
func (l OrderLine) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.UnitPrice)
}

// Order is a finalized purchase. It is created exactly once at checkout
// commit and never mutated or removed from the ledger afterwards.
// Totals are fixed at commit time: Subtotal and Tax as displayed, Total
// rounded half-up to 2 decimal places.
type Order struct {
	ID           int
	CustomerName string
	Email        string
	Address      string
	Lines        []OrderLine
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	PlacedAt     time.Time
}

// newOrder assembles an order record; identity assignment and append are
// the Ledger's job, so creation stays internal to this package.
func newOrder(id int, customerName, email, address string, lines []OrderLine, subtotal, tax, total valueobject.Money) (*Order, error) {
	if id < 1 {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID must be positive")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	frozen := make([]OrderLine, len(lines))
	copy(frozen, lines)

	return &Order{
		ID:           id,
		CustomerName: customerName,
		Email:        email,
		Address:      address,
		Lines:        frozen,
		Subtotal:     subtotal.Amount(),
		Tax:          tax.Round(2).Amount(),
		Total:        total.Round(2).Amount(),
		PlacedAt:     time.Now(),
	}, nil
}

// TotalMoney returns the committed total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// SubtotalMoney returns the committed subtotal as Money
func (o *Order) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Subtotal)
}

// TaxMoney returns the committed tax as Money
func (o *Order) TaxMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Tax)
}

// TotalQuantity returns the number of copies across all lines
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}
