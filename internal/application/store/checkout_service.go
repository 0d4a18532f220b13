package store

import (
	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/order"
	"github.com/bookstore/backend/internal/domain/pricing"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// PendingCheckout is a checkout awaiting explicit confirmation. It holds a
// frozen snapshot of the cart lines and the totals computed at Begin time;
// the snapshot is what gets committed, so catalog price edits between Begin
// and Confirm cannot change the order.
type PendingCheckout struct {
	lines  []order.OrderLine
	quote  pricing.Quote
	status order.CheckoutStatus
}

// Status returns the checkout status
func (p *PendingCheckout) Status() order.CheckoutStatus {
	return p.status
}

// Lines returns the frozen line snapshot
func (p *PendingCheckout) Lines() []order.OrderLine {
	out := make([]order.OrderLine, len(p.lines))
	copy(out, p.lines)
	return out
}

// Quote returns the totals computed at Begin time
func (p *PendingCheckout) Quote() pricing.Quote {
	return p.quote
}

// QuoteView returns the totals rounded for display
func (p *PendingCheckout) QuoteView() QuoteView {
	return QuoteView{
		Subtotal: p.quote.Subtotal.Round(2).StringFixed(2),
		Tax:      p.quote.Tax.Round(2).StringFixed(2),
		Total:    p.quote.Total.Round(2).StringFixed(2),
	}
}

// CheckoutService orchestrates the cart-to-order transaction: it owns the
// session's catalog, cart and ledger handles and is the only code path that
// mutates catalog stock.
type CheckoutService struct {
	catalog  *catalog.Catalog
	cart     *cart.Cart
	ledger   *order.Ledger
	pricer   *pricing.Calculator
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cat *catalog.Catalog, c *cart.Cart, ledger *order.Ledger, pricer *pricing.Calculator, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		catalog:  cat,
		cart:     c,
		ledger:   ledger,
		pricer:   pricer,
		validate: validator.New(),
		logger:   logger,
	}
}

// Begin starts a checkout for the current cart contents.
// Fails with ErrEmptyCart if the cart is empty. On success the returned
// PendingCheckout carries the frozen lines and computed totals and awaits
// Confirm or Cancel.
func (s *CheckoutService) Begin() (*PendingCheckout, error) {
	if s.cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	lines := make([]order.OrderLine, 0, s.cart.Len())
	for _, cl := range s.cart.Lines() {
		book, err := s.catalog.FindBook(cl.BookID)
		if err != nil {
			return nil, shared.ErrDataIntegrity
		}
		line, err := order.NewOrderLine(book.ID, book.Title, book.Author, book.PriceMoney(), cl.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	quote, err := s.pricer.Quote(s.cart, s.catalog)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("checkout started",
		zap.Int("lines", len(lines)),
		zap.String("total", quote.Total.Round(2).StringFixed(2)),
	)

	return &PendingCheckout{
		lines:  lines,
		quote:  quote,
		status: order.CheckoutStatusPending,
	}, nil
}

// Confirm commits a pending checkout: it appends the immutable order to the
// ledger, decrements stock for every line and clears the cart, in that
// order. The commit is all-or-nothing: customer info and every line's stock
// are validated before anything mutates, so a failure leaves catalog, cart
// and ledger exactly as they were.
func (s *CheckoutService) Confirm(p *PendingCheckout, info CustomerInfo) (*order.Order, error) {
	if p == nil || !p.status.CanTransitionTo(order.CheckoutStatusCommitted) {
		return nil, shared.ErrInvalidState
	}

	if err := s.validate.Struct(info); err != nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_INFO", "Customer name, email and address are required: "+err.Error())
	}

	// Defensive re-validation before any mutation. A single-session run
	// should never fail here, but the commit must stay all-or-none.
	for _, line := range p.lines {
		book, err := s.catalog.FindBook(line.BookID)
		if err != nil {
			return nil, shared.ErrDataIntegrity
		}
		if line.Quantity > book.Stock {
			return nil, shared.ErrInsufficientStock
		}
	}

	o, err := s.ledger.Commit(info.Name, info.Email, info.Address, p.lines,
		p.quote.Subtotal, p.quote.Tax, p.quote.Total)
	if err != nil {
		return nil, err
	}

	for _, line := range p.lines {
		if err := s.catalog.DecrementStock(line.BookID, line.Quantity); err != nil {
			// Unreachable after the validation pass above
			s.logger.Error("stock decrement failed after validation",
				zap.Int("book_id", line.BookID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	s.cart.Clear()
	p.status = order.CheckoutStatusCommitted

	event := order.NewOrderPlacedEvent(o)
	s.logger.Info("order placed",
		zap.String("event_id", event.EventID().String()),
		zap.Int("order_id", o.ID),
		zap.String("customer", o.CustomerName),
		zap.Int("items", len(o.Lines)),
		zap.String("total", o.Total.StringFixed(2)),
	)

	return o, nil
}

// Cancel abandons a pending checkout. Cart and catalog stock are left
// untouched and no order is created.
func (s *CheckoutService) Cancel(p *PendingCheckout) error {
	if p == nil || !p.status.CanTransitionTo(order.CheckoutStatusCancelled) {
		return shared.ErrInvalidState
	}
	p.status = order.CheckoutStatusCancelled
	s.logger.Debug("checkout cancelled")
	return nil
}

// Orders returns the committed order history in commit order
func (s *CheckoutService) Orders() []*order.Order {
	return s.ledger.Orders()
}
