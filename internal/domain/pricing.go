package domain

// PriceSource resolves a ticker symbol to its current price.
// Implementations must return a non-negative price, or ErrUnknownSymbol
// (possibly wrapped) when the symbol is not recognized.
type PriceSource interface {
	GetPrice(symbol string) (float64, error)
}

// PriceFunc adapts a plain function to the PriceSource interface, so tests
// and callers can pass ad-hoc providers (e.g. historical prices) without
// defining a type.
type PriceFunc func(symbol string) (float64, error)

// GetPrice calls f(symbol).
func (f PriceFunc) GetPrice(symbol string) (float64, error) {
	return f(symbol)
}
