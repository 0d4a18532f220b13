package cli

import (
	"errors"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/bookstore/backend/internal/application/store"
	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/pricing"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Menu options
const (
	menuBrowse   = "Browse Books"
	menuAdd      = "Add to Cart"
	menuCart     = "View Cart"
	menuHistory  = "Order History"
	menuExit     = "Exit"
	cartCheckout = "Checkout"
	cartRemove   = "Remove item"
	cartBack     = "Back"
)

// Session drives the interactive storefront. It owns no business rules:
// every command is delegated to the core through plain ints and strings.
type Session struct {
	catalog  *catalog.Catalog
	cart     *cart.Cart
	pricer   *pricing.Calculator
	checkout *store.CheckoutService
	logger   *zap.Logger
}

// NewSession creates a session over the given core handles
func NewSession(cat *catalog.Catalog, c *cart.Cart, pricer *pricing.Calculator, checkout *store.CheckoutService, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		catalog:  cat,
		cart:     c,
		pricer:   pricer,
		checkout: checkout,
		logger:   logger,
	}
}

// Run shows the welcome banner and processes menu commands until the user
// exits. One command runs to completion before the next is accepted.
func (s *Session) Run() error {
	printWelcome()

	for {
		choice, err := s.promptMenu()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				printGoodbye()
				return nil
			}
			return err
		}

		switch choice {
		case menuBrowse:
			s.browseBooks()
		case menuAdd:
			s.addToCart()
		case menuCart:
			s.viewCart()
		case menuHistory:
			s.orderHistory()
		case menuExit:
			printGoodbye()
			return nil
		}
	}
}

func (s *Session) promptMenu() (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Main Menu",
		Options: []string{menuBrowse, menuAdd, menuCart, menuHistory, menuExit},
	}
	err := survey.AskOne(prompt, &choice)
	return choice, err
}

func (s *Session) browseBooks() {
	printHeading("Available Books")
	renderCatalogTable(store.ToBookViews(s.catalog.Books()))
}

func (s *Session) addToCart() {
	s.browseBooks()

	bookID, ok := s.promptInt("Enter Book ID to add to cart (0 to go back)")
	if !ok || bookID == 0 {
		return
	}

	book, err := s.catalog.FindBook(bookID)
	if err != nil {
		printError(err)
		return
	}
	if !book.InStock() {
		printError(shared.ErrOutOfStock)
		return
	}

	maxQuantity := min(book.Stock, s.cart.MaxPerLine())
	quantity, ok := s.promptInt("Enter quantity (max " + strconv.Itoa(maxQuantity) + ")")
	if !ok {
		return
	}

	if err := s.cart.AddItem(bookID, quantity); err != nil {
		printError(err)
		return
	}

	s.logger.Debug("item added to cart",
		zap.Int("book_id", bookID),
		zap.Int("quantity", quantity),
	)
	printSuccess("Added " + strconv.Itoa(quantity) + " copy/copies of '" + book.Title + "' to cart!")
}

func (s *Session) viewCart() {
	if s.cart.IsEmpty() {
		printNotice("Your cart is empty!")
		return
	}

	printHeading("Shopping Cart")
	lines, err := s.cartLineViews()
	if err != nil {
		printError(err)
		return
	}
	renderCartTable(lines)

	quote, err := s.pricer.Quote(s.cart, s.catalog)
	if err != nil {
		printError(err)
		return
	}
	rateLabel := s.pricer.Rate().Mul(decimal.NewFromInt(100)).String() + "%"
	renderTotals(store.QuoteView{
		Subtotal: quote.Subtotal.Round(2).StringFixed(2),
		Tax:      quote.Tax.Round(2).StringFixed(2),
		Total:    quote.Total.Round(2).StringFixed(2),
	}, rateLabel)

	var choice string
	prompt := &survey.Select{
		Message: "Options",
		Options: []string{cartCheckout, cartRemove, cartBack},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return
	}

	switch choice {
	case cartCheckout:
		s.checkoutFlow()
	case cartRemove:
		s.removeFromCart()
	}
}

func (s *Session) cartLineViews() ([]store.CartLineView, error) {
	views := make([]store.CartLineView, 0, s.cart.Len())
	for _, line := range s.cart.Lines() {
		book, err := s.catalog.FindBook(line.BookID)
		if err != nil {
			return nil, shared.ErrDataIntegrity
		}
		subtotal := book.PriceMoney().MultiplyByInt(int64(line.Quantity))
		views = append(views, store.CartLineView{
			BookID:   book.ID,
			Title:    book.Title,
			Author:   book.Author,
			Price:    book.Price.StringFixed(2),
			Quantity: line.Quantity,
			Subtotal: subtotal.StringFixed(2),
		})
	}
	return views, nil
}

func (s *Session) removeFromCart() {
	printHeading("Remove Item")

	bookID, ok := s.promptInt("Enter Book ID to remove")
	if !ok {
		return
	}

	book, findErr := s.catalog.FindBook(bookID)
	if err := s.cart.RemoveItem(bookID); err != nil {
		printError(err)
		return
	}

	title := strconv.Itoa(bookID)
	if findErr == nil {
		title = book.Title
	}
	printSuccess("'" + title + "' removed from cart!")
}

func (s *Session) checkoutFlow() {
	pending, err := s.checkout.Begin()
	if err != nil {
		printError(err)
		return
	}

	printHeading("Checkout")

	info, ok := s.promptCustomerInfo()
	if !ok {
		// Prompt aborted; the checkout stays uncommitted
		if err := s.checkout.Cancel(pending); err != nil {
			s.logger.Warn("cancel after aborted prompt failed", zap.Error(err))
		}
		printNotice("Checkout cancelled.")
		return
	}

	printNotice("Order Total: $" + pending.QuoteView().Total)

	confirmed := false
	if err := survey.AskOne(&survey.Confirm{Message: "Confirm purchase?"}, &confirmed); err != nil || !confirmed {
		if err := s.checkout.Cancel(pending); err != nil {
			s.logger.Warn("checkout cancel failed", zap.Error(err))
		}
		printNotice("Checkout cancelled.")
		return
	}

	o, err := s.checkout.Confirm(pending, info)
	if err != nil {
		printError(err)
		return
	}

	renderOrderConfirmation(store.ToOrderView(o))
}

func (s *Session) promptCustomerInfo() (store.CustomerInfo, bool) {
	var info store.CustomerInfo
	questions := []struct {
		message string
		target  *string
	}{
		{"Enter full name", &info.Name},
		{"Enter email", &info.Email},
		{"Enter address", &info.Address},
	}
	for _, q := range questions {
		if err := survey.AskOne(&survey.Input{Message: q.message}, q.target); err != nil {
			return store.CustomerInfo{}, false
		}
	}
	return info, true
}

func (s *Session) orderHistory() {
	orders := s.checkout.Orders()
	if len(orders) == 0 {
		printNotice("No orders yet!")
		return
	}

	printHeading("Order History")
	for _, view := range store.ToOrderViews(orders) {
		renderOrderHistoryEntry(view)
	}
}

// promptInt asks for an integer; the second return is false when the prompt
// is aborted or the input is not a number.
func (s *Session) promptInt(message string) (int, bool) {
	var raw string
	if err := survey.AskOne(&survey.Input{Message: message}, &raw); err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		printNotice("Invalid input!")
		return 0, false
	}
	return n, true
}
