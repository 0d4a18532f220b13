package catalog

import (
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Book represents a purchasable title in the catalog.
// ID, Title, Author and Price are fixed at creation; Stock is mutated only
// by Catalog.DecrementStock during checkout commit.
type Book struct {
	ID     int
	Title  string
	Author string
	Price  decimal.Decimal
	Stock  int
}

// NewBook creates a new book
func NewBook(id int, title, author string, price decimal.Decimal, stock int) (*Book, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("INVALID_BOOK_ID", "Book ID must be positive")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Book title cannot be empty")
	}
	if author == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Book author cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Book price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Book stock cannot be negative")
	}

	return &Book{
		ID:     id,
		Title:  title,
		Author: author,
		Price:  price,
		Stock:  stock,
	}, nil
}

// PriceMoney returns the unit price as a Money value object
func (b *Book) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(b.Price)
}

// InStock returns true if at least one copy is available
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// decrementStock reduces the available stock.
// Callers must hold the all-or-none guarantee; see Catalog.DecrementStock.
func (b *Book) decrementStock(quantity int) error {
	if quantity < 1 {
		return shared.ErrInvalidQuantity
	}
	if quantity > b.Stock {
		return shared.ErrInsufficientStock
	}
	b.Stock -= quantity
	return nil
}
