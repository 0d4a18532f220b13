package pricing

import (
	"testing"

	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestCatalog(t *testing.T) *catalog.Catalog {
	gatsby, err := catalog.NewBook(1, "The Great Gatsby", "F. Scott Fitzgerald", decimal.NewFromFloat(12.99), 15)
	require.NoError(t, err)
	mockingbird, err := catalog.NewBook(2, "To Kill a Mockingbird", "Harper Lee", decimal.NewFromFloat(14.99), 12)
	require.NoError(t, err)
	cat, err := catalog.NewCatalog(gatsby, mockingbird)
	require.NoError(t, err)
	return cat
}

func TestNewCalculator(t *testing.T) {
	t.Run("accepts rates in [0, 1)", func(t *testing.T) {
		p, err := NewCalculator(decimal.NewFromFloat(0.07))
		require.NoError(t, err)
		assert.Equal(t, "0.07", p.Rate().String())

		_, err = NewCalculator(decimal.Zero)
		assert.NoError(t, err)
	})

	t.Run("rejects negative and >=1 rates", func(t *testing.T) {
		_, err := NewCalculator(decimal.NewFromFloat(-0.1))
		assert.Error(t, err)
		_, err = NewCalculator(decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestCalculator_Subtotal(t *testing.T) {
	cat := createTestCatalog(t)
	p := NewDefaultCalculator()

	t.Run("empty cart has zero subtotal", func(t *testing.T) {
		c := cart.NewCart(cat)
		subtotal, err := p.Subtotal(c, cat)
		require.NoError(t, err)
		assert.True(t, subtotal.IsZero())
	})

	t.Run("sums quantity times unit price over all lines", func(t *testing.T) {
		c := cart.NewCart(cat)
		require.NoError(t, c.AddItem(1, 3)) // 38.97
		require.NoError(t, c.AddItem(2, 2)) // 29.98

		subtotal, err := p.Subtotal(c, cat)
		require.NoError(t, err)
		assert.Equal(t, "68.95", subtotal.StringFixed(2))
	})

	t.Run("subtotal is independent of addition order", func(t *testing.T) {
		a := cart.NewCart(cat)
		require.NoError(t, a.AddItem(1, 3))
		require.NoError(t, a.AddItem(2, 2))

		b := cart.NewCart(cat)
		require.NoError(t, b.AddItem(2, 2))
		require.NoError(t, b.AddItem(1, 3))

		subA, err := p.Subtotal(a, cat)
		require.NoError(t, err)
		subB, err := p.Subtotal(b, cat)
		require.NoError(t, err)
		assert.True(t, subA.Equals(subB))
	})

	t.Run("fails with data integrity error for a vanished book", func(t *testing.T) {
		c := cart.NewCart(cat)
		require.NoError(t, c.AddItem(1, 1))

		// Price against a different catalog that lacks book 1
		other, err := catalog.NewCatalog()
		require.NoError(t, err)
		_, err = p.Subtotal(c, other)
		assert.ErrorIs(t, err, shared.ErrDataIntegrity)
	})
}

func TestCalculator_TaxAndTotal(t *testing.T) {
	cat := createTestCatalog(t)
	p := NewDefaultCalculator()

	c := cart.NewCart(cat)
	require.NoError(t, c.AddItem(1, 3)) // subtotal 38.97

	t.Run("tax is subtotal times rate, unrounded internally", func(t *testing.T) {
		tax, err := p.Tax(c, cat)
		require.NoError(t, err)
		assert.Equal(t, "3.897", tax.Amount().String())
		assert.Equal(t, "3.90", tax.Round(2).StringFixed(2))
	})

	t.Run("total is subtotal plus tax, rounds half-up at display", func(t *testing.T) {
		total, err := p.Total(c, cat)
		require.NoError(t, err)
		// 12.99 * 3 * 1.10 = 42.867 -> 42.87
		assert.Equal(t, "42.867", total.Amount().String())
		assert.Equal(t, "42.87", total.Round(2).StringFixed(2))
	})

	t.Run("total equals subtotal times 1.10 exactly", func(t *testing.T) {
		q, err := p.Quote(c, cat)
		require.NoError(t, err)
		want := q.Subtotal.Multiply(decimal.NewFromFloat(1.10))
		assert.True(t, q.Total.Equals(want))
	})
}

func TestCalculator_Quote(t *testing.T) {
	cat := createTestCatalog(t)
	p := NewDefaultCalculator()

	c := cart.NewCart(cat)
	require.NoError(t, c.AddItem(1, 1))
	require.NoError(t, c.AddItem(2, 1))

	q, err := p.Quote(c, cat)
	require.NoError(t, err)
	assert.Equal(t, "27.98", q.Subtotal.StringFixed(2))
	assert.True(t, q.Tax.Equals(q.Subtotal.Multiply(p.Rate())))
	assert.True(t, q.Total.Equals(q.Subtotal.MustAdd(q.Tax)))
}

func TestCalculator_ZeroRate(t *testing.T) {
	cat := createTestCatalog(t)
	p, err := NewCalculator(decimal.Zero)
	require.NoError(t, err)

	c := cart.NewCart(cat)
	require.NoError(t, c.AddItem(1, 2))

	q, err := p.Quote(c, cat)
	require.NoError(t, err)
	assert.True(t, q.Tax.IsZero())
	assert.True(t, q.Total.Equals(q.Subtotal))
}
