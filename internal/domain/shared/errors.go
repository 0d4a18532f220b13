package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrBookNotFound      = NewDomainError("BOOK_NOT_FOUND", "Book not found in catalog")
	ErrOutOfStock        = NewDomainError("OUT_OF_STOCK", "Book is out of stock")
	ErrInvalidQuantity   = NewDomainError("INVALID_QUANTITY", "Quantity is outside the allowed range")
	ErrItemNotInCart     = NewDomainError("ITEM_NOT_IN_CART", "Item is not in the cart")
	ErrEmptyCart         = NewDomainError("EMPTY_CART", "Cart is empty")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrDataIntegrity     = NewDomainError("DATA_INTEGRITY", "Cart references a book missing from the catalog")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
)
