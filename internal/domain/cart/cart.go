package cart

import (
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/shared"
)

// DefaultMaxPerLine is the per-addition quantity cap
const DefaultMaxPerLine = 5

// Line is a cart entry: one book, a positive quantity.
// There is at most one line per book ID.
type Line struct {
	BookID   int
	Quantity int
}

// Cart is the session-scoped mapping of book ID to quantity, validated
// against the catalog it was created with. Iteration order of Lines is the
// insertion order of each book's first addition, stable across quantity
// updates.
type Cart struct {
	catalog    *catalog.Catalog
	lines      map[int]*Line
	order      []int // book IDs in first-addition order
	maxPerLine int
}

// NewCart creates an empty cart validated against the given catalog
func NewCart(cat *catalog.Catalog) *Cart {
	return NewCartWithLimit(cat, DefaultMaxPerLine)
}

// NewCartWithLimit creates an empty cart with a custom per-addition cap
func NewCartWithLimit(cat *catalog.Catalog, maxPerLine int) *Cart {
	if maxPerLine < 1 {
		maxPerLine = DefaultMaxPerLine
	}
	return &Cart{
		catalog:    cat,
		lines:      make(map[int]*Line),
		order:      make([]int, 0),
		maxPerLine: maxPerLine,
	}
}

// MaxPerLine returns the per-addition quantity cap
func (c *Cart) MaxPerLine() int {
	return c.maxPerLine
}

// AddItem adds quantity copies of a book to the cart.
//
// Each addition must satisfy 1 <= quantity <= min(stock, cap). Repeated
// additions for the same book accumulate onto the existing line.
//
// Policy: the combined quantity of a line is re-checked against current
// stock on every addition; if the combined quantity would exceed stock the
// whole addition is rejected with ErrOutOfStock and the cart is unchanged.
// The cap bounds each individual addition, not the running total.
func (c *Cart) AddItem(bookID, quantity int) error {
	book, err := c.catalog.FindBook(bookID)
	if err != nil {
		return err
	}
	if !book.InStock() {
		return shared.ErrOutOfStock
	}

	maxQuantity := min(book.Stock, c.maxPerLine)
	if quantity < 1 || quantity > maxQuantity {
		return shared.ErrInvalidQuantity
	}

	if line, ok := c.lines[bookID]; ok {
		if line.Quantity+quantity > book.Stock {
			return shared.ErrOutOfStock
		}
		line.Quantity += quantity
		return nil
	}

	c.lines[bookID] = &Line{BookID: bookID, Quantity: quantity}
	c.order = append(c.order, bookID)
	return nil
}

// RemoveItem deletes the line for the given book.
// Fails with ErrItemNotInCart if absent; the cart is unchanged on failure.
func (c *Cart) RemoveItem(bookID int) error {
	if _, ok := c.lines[bookID]; !ok {
		return shared.ErrItemNotInCart
	}
	delete(c.lines, bookID)
	for idx, id := range c.order {
		if id == bookID {
			c.order = append(c.order[:idx], c.order[idx+1:]...)
			break
		}
	}
	return nil
}

// Clear empties the cart unconditionally
func (c *Cart) Clear() {
	c.lines = make(map[int]*Line)
	c.order = c.order[:0]
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	return len(c.lines)
}

// Quantity returns the quantity for a book, or zero if not in the cart
func (c *Cart) Quantity(bookID int) int {
	if line, ok := c.lines[bookID]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns the cart lines in first-addition order.
// The returned slice holds copies; mutating it does not affect the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Catalog returns the catalog this cart validates against
func (c *Cart) Catalog() *catalog.Catalog {
	return c.catalog
}
