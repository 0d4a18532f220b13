package store

import (
	"testing"

	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/order"
	"github.com/bookstore/backend/internal/domain/pricing"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Test helpers
type testSession struct {
	catalog *catalog.Catalog
	cart    *cart.Cart
	ledger  *order.Ledger
	svc     *CheckoutService
}

func createTestSession(t *testing.T) *testSession {
	cat := catalog.NewSeededCatalog()
	c := cart.NewCart(cat)
	ledger := order.NewLedger()
	svc := NewCheckoutService(cat, c, ledger, pricing.NewDefaultCalculator(), zap.NewNop())
	return &testSession{catalog: cat, cart: c, ledger: ledger, svc: svc}
}

func validCustomer() CustomerInfo {
	return CustomerInfo{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Address: "12 Analytical Row, London",
	}
}

func stockOf(t *testing.T, cat *catalog.Catalog, id int) int {
	b, err := cat.FindBook(id)
	require.NoError(t, err)
	return b.Stock
}

// ============================================
// Begin Tests
// ============================================

func TestCheckoutService_Begin(t *testing.T) {
	t.Run("fails with empty cart", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.svc.Begin()
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		assert.True(t, s.ledger.IsEmpty())
	})

	t.Run("freezes lines and computes totals", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 3)) // Gatsby, 12.99

		pending, err := s.svc.Begin()
		require.NoError(t, err)
		assert.Equal(t, order.CheckoutStatusPending, pending.Status())

		lines := pending.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "The Great Gatsby", lines[0].Title)
		assert.Equal(t, 3, lines[0].Quantity)

		view := pending.QuoteView()
		assert.Equal(t, "38.97", view.Subtotal)
		assert.Equal(t, "3.90", view.Tax)
		assert.Equal(t, "42.87", view.Total)
	})

	t.Run("snapshot is immune to later catalog price edits", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 1))

		pending, err := s.svc.Begin()
		require.NoError(t, err)

		book, err := s.catalog.FindBook(1)
		require.NoError(t, err)
		book.Price = book.Price.Add(book.Price) // double the shelf price

		o, err := s.svc.Confirm(pending, validCustomer())
		require.NoError(t, err)
		assert.Equal(t, "12.99", o.Lines[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "14.29", o.Total.StringFixed(2)) // 12.99 * 1.10 = 14.289
	})
}

// ============================================
// Confirm Tests
// ============================================

func TestCheckoutService_Confirm(t *testing.T) {
	t.Run("commits order, decrements stock, clears cart", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 3))

		pending, err := s.svc.Begin()
		require.NoError(t, err)

		o, err := s.svc.Confirm(pending, validCustomer())
		require.NoError(t, err)

		assert.Equal(t, 1, o.ID)
		assert.Equal(t, "Ada Lovelace", o.CustomerName)
		assert.Equal(t, "42.87", o.Total.StringFixed(2))
		assert.Equal(t, 12, stockOf(t, s.catalog, 1)) // 15 - 3
		assert.True(t, s.cart.IsEmpty())
		assert.Equal(t, 1, s.ledger.Len())
		assert.Equal(t, order.CheckoutStatusCommitted, pending.Status())
	})

	t.Run("order total equals the pre-commit computed total", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(2, 2))
		require.NoError(t, s.cart.AddItem(8, 1))

		pending, err := s.svc.Begin()
		require.NoError(t, err)
		wantTotal := pending.QuoteView().Total

		o, err := s.svc.Confirm(pending, validCustomer())
		require.NoError(t, err)
		assert.Equal(t, wantTotal, o.Total.StringFixed(2))
	})

	t.Run("each purchased book's stock decreases by its cart quantity", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(2, 2)) // stock 12
		require.NoError(t, s.cart.AddItem(9, 4)) // stock 9

		pending, err := s.svc.Begin()
		require.NoError(t, err)
		_, err = s.svc.Confirm(pending, validCustomer())
		require.NoError(t, err)

		assert.Equal(t, 10, stockOf(t, s.catalog, 2))
		assert.Equal(t, 5, stockOf(t, s.catalog, 9))
	})

	t.Run("rejects incomplete or malformed customer info", func(t *testing.T) {
		tests := []struct {
			name string
			info CustomerInfo
		}{
			{"missing name", CustomerInfo{Email: "a@b.com", Address: "somewhere"}},
			{"missing email", CustomerInfo{Name: "Ada", Address: "somewhere"}},
			{"malformed email", CustomerInfo{Name: "Ada", Email: "not-an-email", Address: "somewhere"}},
			{"missing address", CustomerInfo{Name: "Ada", Email: "a@b.com"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := createTestSession(t)
				require.NoError(t, s.cart.AddItem(1, 1))
				pending, err := s.svc.Begin()
				require.NoError(t, err)

				_, err = s.svc.Confirm(pending, tt.info)
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "INVALID_CUSTOMER_INFO", domainErr.Code)

				// Nothing mutated
				assert.True(t, s.ledger.IsEmpty())
				assert.False(t, s.cart.IsEmpty())
				assert.Equal(t, 15, stockOf(t, s.catalog, 1))
			})
		}
	})

	t.Run("aborts atomically when stock is insufficient at commit time", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(7, 5)) // Hobbit, stock 8
		require.NoError(t, s.cart.AddItem(1, 2))

		pending, err := s.svc.Begin()
		require.NoError(t, err)

		// Drain Hobbit stock out from under the pending checkout
		require.NoError(t, s.catalog.DecrementStock(7, 6))

		_, err = s.svc.Confirm(pending, validCustomer())
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		// Neither order appended, nor any stock changed, nor cart cleared
		assert.True(t, s.ledger.IsEmpty())
		assert.Equal(t, 2, stockOf(t, s.catalog, 7)) // only the external drain
		assert.Equal(t, 15, stockOf(t, s.catalog, 1))
		assert.Equal(t, 2, s.cart.Len())
		assert.Equal(t, order.CheckoutStatusPending, pending.Status())
	})

	t.Run("cannot confirm twice", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 1))
		pending, err := s.svc.Begin()
		require.NoError(t, err)

		_, err = s.svc.Confirm(pending, validCustomer())
		require.NoError(t, err)

		_, err = s.svc.Confirm(pending, validCustomer())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.Equal(t, 1, s.ledger.Len())
		assert.Equal(t, 14, stockOf(t, s.catalog, 1)) // decremented once
	})

	t.Run("cannot confirm a cancelled checkout", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 1))
		pending, err := s.svc.Begin()
		require.NoError(t, err)

		require.NoError(t, s.svc.Cancel(pending))
		_, err = s.svc.Confirm(pending, validCustomer())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("nil pending checkout is rejected", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.svc.Confirm(nil, validCustomer())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.ErrorIs(t, s.svc.Cancel(nil), shared.ErrInvalidState)
	})

	t.Run("sequential checkouts get sequential order IDs", func(t *testing.T) {
		s := createTestSession(t)

		for want := 1; want <= 3; want++ {
			require.NoError(t, s.cart.AddItem(3, 2))
			pending, err := s.svc.Begin()
			require.NoError(t, err)
			o, err := s.svc.Confirm(pending, validCustomer())
			require.NoError(t, err)
			assert.Equal(t, want, o.ID)
		}
		assert.Equal(t, 3, s.ledger.Len())
		assert.Equal(t, 14, stockOf(t, s.catalog, 3)) // 20 - 3*2
	})
}

// ============================================
// Cancel Tests
// ============================================

func TestCheckoutService_Cancel(t *testing.T) {
	t.Run("leaves cart and stock untouched, creates no order", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 3))

		pending, err := s.svc.Begin()
		require.NoError(t, err)
		require.NoError(t, s.svc.Cancel(pending))

		assert.Equal(t, order.CheckoutStatusCancelled, pending.Status())
		assert.True(t, s.ledger.IsEmpty())
		assert.Equal(t, 3, s.cart.Quantity(1))
		assert.Equal(t, 15, stockOf(t, s.catalog, 1))
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.cart.AddItem(1, 1))
		pending, err := s.svc.Begin()
		require.NoError(t, err)

		require.NoError(t, s.svc.Cancel(pending))
		assert.ErrorIs(t, s.svc.Cancel(pending), shared.ErrInvalidState)
	})
}

// ============================================
// History / DTO Tests
// ============================================

func TestCheckoutService_Orders(t *testing.T) {
	s := createTestSession(t)
	require.NoError(t, s.cart.AddItem(1, 3))
	pending, err := s.svc.Begin()
	require.NoError(t, err)
	_, err = s.svc.Confirm(pending, validCustomer())
	require.NoError(t, err)

	orders := s.svc.Orders()
	require.Len(t, orders, 1)

	views := ToOrderViews(orders)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, "Ada Lovelace", views[0].CustomerName)
	assert.Equal(t, "42.87", views[0].Total)
	require.Len(t, views[0].Lines, 1)
	assert.Equal(t, "The Great Gatsby", views[0].Lines[0].Title)
	assert.Equal(t, 3, views[0].Lines[0].Quantity)
}

func TestToBookViews(t *testing.T) {
	cat := catalog.NewSeededCatalog()
	views := ToBookViews(cat.Books())
	require.Len(t, views, 10)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, "The Great Gatsby", views[0].Title)
	assert.Equal(t, "12.99", views[0].Price)
	assert.Equal(t, 15, views[0].Stock)
}
