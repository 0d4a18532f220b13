package cli

import (
	"errors"
	"os"
	"strconv"

	"github.com/bookstore/backend/internal/application/store"
	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	headingColor = color.New(color.FgMagenta, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	noticeColor  = color.New(color.FgYellow)
	bannerColor  = color.New(color.FgCyan, color.Bold)
)

func printWelcome() {
	bannerColor.Println(`
╔═══════════════════════════════════════╗
║          BOOKSTORE TERMINAL           ║
║    Your Gateway to Literary Worlds    ║
╚═══════════════════════════════════════╝`)
}

func printGoodbye() {
	successColor.Println("Thank you for shopping! Goodbye!")
}

func printHeading(text string) {
	headingColor.Println("\n── " + text + " ──")
}

func printSuccess(text string) {
	successColor.Println("✔ " + text)
}

func printNotice(text string) {
	noticeColor.Println(text)
}

func printError(err error) {
	errorColor.Println("✘ " + friendlyMessage(err))
}

// friendlyMessage maps core errors to the storefront's wording.
// Unknown errors pass through unchanged.
func friendlyMessage(err error) string {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return err.Error()
	}
	switch domainErr.Code {
	case "BOOK_NOT_FOUND":
		return "No books found!"
	case "OUT_OF_STOCK":
		return "Out of stock!"
	case "INVALID_QUANTITY":
		return "Invalid quantity!"
	case "ITEM_NOT_IN_CART":
		return "Item not in cart!"
	case "EMPTY_CART":
		return "Cart is empty!"
	case "INSUFFICIENT_STOCK":
		return "Not enough stock to complete the order!"
	default:
		return domainErr.Message
	}
}

func renderCatalogTable(books []store.BookView) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Author", "Price", "Stock"})
	for _, b := range books {
		table.Append([]string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			"$" + b.Price,
			strconv.Itoa(b.Stock),
		})
	}
	table.Render()
}

func renderCartTable(lines []store.CartLineView) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Title", "Author", "Price", "Qty", "Subtotal"})
	for _, l := range lines {
		table.Append([]string{
			l.Title,
			l.Author,
			"$" + l.Price,
			strconv.Itoa(l.Quantity),
			"$" + l.Subtotal,
		})
	}
	table.Render()
}

func renderTotals(quote store.QuoteView, rateLabel string) {
	noticeColor.Println("Subtotal: $" + quote.Subtotal)
	noticeColor.Println("Tax (" + rateLabel + "): $" + quote.Tax)
	successColor.Println("Total: $" + quote.Total)
}

func renderOrderConfirmation(o store.OrderView) {
	successColor.Println(`
╔════════════════════════════════════╗
║          ORDER CONFIRMED           ║
╚════════════════════════════════════╝`)
	successColor.Println("Order ID: #" + strconv.Itoa(o.ID))
	successColor.Println("Customer: " + o.CustomerName)
	successColor.Println("Email: " + o.Email)
	successColor.Println("Total: $" + o.Total)
	successColor.Println("\nThank you for your purchase!")
}

func renderOrderHistoryEntry(o store.OrderView) {
	headingColor.Println("Order #" + strconv.Itoa(o.ID) + " | " + o.PlacedAt.Format("2006-01-02 15:04:05"))
	noticeColor.Println("Customer: " + o.CustomerName + " | Email: " + o.Email)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Title", "Quantity", "Price"})
	for _, l := range o.Lines {
		table.Append([]string{l.Title, strconv.Itoa(l.Quantity), "$" + l.Price})
	}
	table.Render()
	successColor.Println("Total: $" + o.Total + "\n")
}
