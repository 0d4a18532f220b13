package catalog

import (
	"sort"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Catalog holds the set of purchasable books for the session.
// Books live for the lifetime of the process; only their stock changes,
// and only through DecrementStock.
type Catalog struct {
	byID  map[int]*Book
	books []*Book // sorted by ID ascending
}

// NewCatalog creates a catalog from the given books.
// Fails if two books share an ID.
func NewCatalog(books ...*Book) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[int]*Book, len(books)),
		books: make([]*Book, 0, len(books)),
	}
	for _, b := range books {
		if _, exists := c.byID[b.ID]; exists {
			return nil, shared.NewDomainError("DUPLICATE_BOOK_ID", "Catalog already contains a book with this ID")
		}
		c.byID[b.ID] = b
		c.books = append(c.books, b)
	}
	sort.Slice(c.books, func(i, j int) bool {
		return c.books[i].ID < c.books[j].ID
	})
	return c, nil
}

// FindBook returns the book with the given ID
func (c *Catalog) FindBook(id int) (*Book, error) {
	b, ok := c.byID[id]
	if !ok {
		return nil, shared.ErrBookNotFound
	}
	return b, nil
}

// Books returns all books ordered by ID ascending.
// The returned slice is a copy; the pointed-to books are the live entries.
func (c *Catalog) Books() []*Book {
	out := make([]*Book, len(c.books))
	copy(out, c.books)
	return out
}

// Len returns the number of books in the catalog
func (c *Catalog) Len() int {
	return len(c.books)
}

// DecrementStock reduces the stock of a single book.
// Fails with ErrInsufficientStock if quantity exceeds current stock and with
// ErrBookNotFound for an unknown ID; the catalog is unchanged on failure.
// Must be called only during checkout commit, after every line in the
// checkout has been validated, so that the commit stays all-or-none.
func (c *Catalog) DecrementStock(id, quantity int) error {
	b, err := c.FindBook(id)
	if err != nil {
		return err
	}
	return b.decrementStock(quantity)
}

func mustPrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// SeedBooks returns the store's opening inventory
func SeedBooks() []*Book {
	return []*Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Price: mustPrice("12.99"), Stock: 15},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Price: mustPrice("14.99"), Stock: 12},
		{ID: 3, Title: "1984", Author: "George Orwell", Price: mustPrice("13.99"), Stock: 20},
		{ID: 4, Title: "Pride and Prejudice", Author: "Jane Austen", Price: mustPrice("11.99"), Stock: 18},
		{ID: 5, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Price: mustPrice("10.99"), Stock: 10},
		{ID: 6, Title: "Brave New World", Author: "Aldous Huxley", Price: mustPrice("13.99"), Stock: 14},
		{ID: 7, Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: mustPrice("15.99"), Stock: 8},
		{ID: 8, Title: "Dune", Author: "Frank Herbert", Price: mustPrice("16.99"), Stock: 11},
		{ID: 9, Title: "Foundation", Author: "Isaac Asimov", Price: mustPrice("14.99"), Stock: 9},
		{ID: 10, Title: "Neuromancer", Author: "William Gibson", Price: mustPrice("12.99"), Stock: 12},
	}
}

// NewSeededCatalog creates a catalog pre-loaded with the opening inventory
func NewSeededCatalog() *Catalog {
	c, err := NewCatalog(SeedBooks()...)
	if err != nil {
		panic(err) // seed data is static and known-unique
	}
	return c
}
