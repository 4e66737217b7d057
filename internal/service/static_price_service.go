package service

import (
	"fmt"

	"stocksim/internal/domain"
)

// StaticPriceService resolves symbols against a fixed in-memory price table.
// It is pure and side-effect free, which makes valuations deterministic and
// suitable for simulation and testing.
type StaticPriceService struct {
	prices map[string]float64
}

// NewStaticPriceService creates the reference price source covering the
// default simulation universe.
func NewStaticPriceService() *StaticPriceService {
	return NewStaticPriceServiceWithTable(map[string]float64{
		"AAPL":  150.00,
		"TSLA":  700.00,
		"GOOGL": 2800.00,
	})
}

// NewStaticPriceServiceWithTable creates a price source over a custom table.
// The table is copied, so later mutation by the caller has no effect.
func NewStaticPriceServiceWithTable(prices map[string]float64) *StaticPriceService {
	table := make(map[string]float64, len(prices))
	for symbol, price := range prices {
		table[symbol] = price
	}
	return &StaticPriceService{prices: table}
}

// GetPrice returns the fixed price for symbol, or ErrUnknownSymbol when the
// symbol is not in the table.
func (s *StaticPriceService) GetPrice(symbol string) (float64, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %q: %w", symbol, domain.ErrUnknownSymbol)
	}
	return price, nil
}

// Symbols returns the symbols the source can resolve.
func (s *StaticPriceService) Symbols() []string {
	symbols := make([]string, 0, len(s.prices))
	for symbol := range s.prices {
		symbols = append(symbols, symbol)
	}
	return symbols
}
