package store

import (
	"time"

	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/order"
)

// CustomerInfo carries the customer fields collected at checkout
type CustomerInfo struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Address string `validate:"required"`
}

// BookView is a read model of a catalog book for the session shell
type BookView struct {
	ID     int
	Title  string
	Author string
	Price  string
	Stock  int
}

// CartLineView is a read model of one cart line with book details resolved
type CartLineView struct {
	BookID   int
	Title    string
	Author   string
	Price    string
	Quantity int
	Subtotal string
}

// QuoteView is a read model of cart totals, rounded for display
type QuoteView struct {
	Subtotal string
	Tax      string
	Total    string
}

// OrderLineView is a read model of a frozen order line
type OrderLineView struct {
	Title    string
	Quantity int
	Price    string
}

// OrderView is a read model of a committed order
type OrderView struct {
	ID           int
	CustomerName string
	Email        string
	Address      string
	Lines        []OrderLineView
	Total        string
	PlacedAt     time.Time
}

// ToBookView converts a catalog book to its read model
func ToBookView(b *catalog.Book) BookView {
	return BookView{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price.StringFixed(2),
		Stock:  b.Stock,
	}
}

// ToBookViews converts a catalog listing to read models
func ToBookViews(books []*catalog.Book) []BookView {
	out := make([]BookView, 0, len(books))
	for _, b := range books {
		out = append(out, ToBookView(b))
	}
	return out
}

// ToOrderView converts a committed order to its read model
func ToOrderView(o *order.Order) OrderView {
	lines := make([]OrderLineView, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineView{
			Title:    l.Title,
			Quantity: l.Quantity,
			Price:    l.UnitPrice.StringFixed(2),
		})
	}
	return OrderView{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Address:      o.Address,
		Lines:        lines,
		Total:        o.Total.StringFixed(2),
		PlacedAt:     o.PlacedAt,
	}
}

// ToOrderViews converts ledger history to read models
func ToOrderViews(orders []*order.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderView(o))
	}
	return out
}
