package domain

import "time"

// TransactionType identifies the kind of ledger event
type TransactionType string

// TransactionType constants
const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeBuy      TransactionType = "buy"
	TypeSell     TransactionType = "sell"
)

// Valid reports whether t is one of the four known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeBuy, TypeSell:
		return true
	}
	return false
}

// Transaction is an immutable record of one ledger event. It is created
// exclusively by the account's internal recorder and handed out by value;
// callers never receive a reference into live account state.
//
// Symbol, Quantity and Price are set only for buy/sell transactions.
// CashDelta is signed: positive for deposit/sell, negative for withdraw/buy.
// HoldingsDelta is empty for deposit/withdraw and carries exactly one entry
// for buy/sell.
type Transaction struct {
	ID            string           `json:"id"`
	Timestamp     time.Time        `json:"timestamp"`
	Type          TransactionType  `json:"type"`
	Symbol        string           `json:"symbol,omitempty"`
	Quantity      int64            `json:"quantity,omitempty"`
	Price         float64          `json:"price,omitempty"`
	CashDelta     float64          `json:"cash_delta"`
	HoldingsDelta map[string]int64 `json:"holdings_delta,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// clone returns a deep copy so the ledger's record and the caller's copy
// never share the holdings delta map.
func (tx Transaction) clone() Transaction {
	out := tx
	if tx.HoldingsDelta != nil {
		out.HoldingsDelta = make(map[string]int64, len(tx.HoldingsDelta))
		for symbol, delta := range tx.HoldingsDelta {
			out.HoldingsDelta[symbol] = delta
		}
	}
	return out
}

// TransactionFilter narrows a ledger query. Bounds are inclusive and
// open-ended when nil; Type and Symbol match all entries when empty.
type TransactionFilter struct {
	Start  *time.Time
	End    *time.Time
	Type   TransactionType
	Symbol string
}

// matches reports whether tx passes every populated filter field.
func (f TransactionFilter) matches(tx Transaction) bool {
	if f.Start != nil && tx.Timestamp.Before(*f.Start) {
		return false
	}
	if f.End != nil && tx.Timestamp.After(*f.End) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Symbol != "" && tx.Symbol != f.Symbol {
		return false
	}
	return true
}
