package pricing

import (
	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the store-wide sales tax rate (10%)
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// Calculator computes cart totals. It is pure: no state is mutated and the
// same cart snapshot always yields the same result. Amounts stay unrounded
// internally; callers round to 2 decimal places (half-up) only at display
// or commit time.
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator creates a calculator with the given tax rate
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be in [0, 1)")
	}
	return &Calculator{rate: rate}, nil
}

// NewDefaultCalculator creates a calculator with the default 10% tax rate
func NewDefaultCalculator() *Calculator {
	return &Calculator{rate: DefaultTaxRate}
}

// Rate returns the tax rate
func (p *Calculator) Rate() decimal.Decimal {
	return p.rate
}

// Quote holds the totals derived from one cart snapshot.
// All amounts are exact; Tax and Total are unrounded.
type Quote struct {
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
}

// Subtotal returns the exact sum of quantity x unit price over all lines.
// Fails with ErrDataIntegrity if a line references a book missing from the
// catalog, which the catalog/cart coupling should make impossible.
func (p *Calculator) Subtotal(c *cart.Cart, cat *catalog.Catalog) (valueobject.Money, error) {
	subtotal := valueobject.ZeroUSD()
	for _, line := range c.Lines() {
		book, err := cat.FindBook(line.BookID)
		if err != nil {
			return valueobject.Money{}, shared.ErrDataIntegrity
		}
		subtotal = subtotal.MustAdd(book.PriceMoney().MultiplyByInt(int64(line.Quantity)))
	}
	return subtotal, nil
}

// Tax returns subtotal x rate, unrounded
func (p *Calculator) Tax(c *cart.Cart, cat *catalog.Catalog) (valueobject.Money, error) {
	subtotal, err := p.Subtotal(c, cat)
	if err != nil {
		return valueobject.Money{}, err
	}
	return subtotal.Multiply(p.rate), nil
}

// Total returns subtotal + tax, unrounded
func (p *Calculator) Total(c *cart.Cart, cat *catalog.Catalog) (valueobject.Money, error) {
	q, err := p.Quote(c, cat)
	if err != nil {
		return valueobject.Money{}, err
	}
	return q.Total, nil
}

// Quote computes subtotal, tax and total in one pass
func (p *Calculator) Quote(c *cart.Cart, cat *catalog.Catalog) (Quote, error) {
	subtotal, err := p.Subtotal(c, cat)
	if err != nil {
		return Quote{}, err
	}
	tax := subtotal.Multiply(p.rate)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.MustAdd(tax),
	}, nil
}
