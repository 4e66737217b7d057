package dto

import (
	"time"

	"stocksim/internal/domain"
)

// CreateAccountRequest is the payload for opening a new simulation account.
// AccountID is optional; the handler generates one when it is empty.
type CreateAccountRequest struct {
	AccountID      string  `json:"account_id"`
	Owner          string  `json:"owner"`
	InitialDeposit float64 `json:"initial_deposit"`
}

// CashRequest is the payload for deposits and withdrawals
type CashRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// TradeRequest is the payload for buy and sell orders. Price is optional:
// when present it overrides the server's price source for this order only.
type TradeRequest struct {
	Symbol   string   `json:"symbol"`
	Quantity int64    `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
	Note     string   `json:"note"`
}

// TransactionOutput is the wire representation of one ledger entry
type TransactionOutput struct {
	ID            string           `json:"id"`
	Timestamp     string           `json:"timestamp"`
	Type          string           `json:"type"`
	Symbol        string           `json:"symbol,omitempty"`
	Quantity      int64            `json:"quantity,omitempty"`
	Price         float64          `json:"price,omitempty"`
	CashDelta     float64          `json:"cash_delta"`
	HoldingsDelta map[string]int64 `json:"holdings_delta,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// FromTransaction converts a ledger record to its wire representation
func FromTransaction(tx domain.Transaction) TransactionOutput {
	return TransactionOutput{
		ID:            tx.ID,
		Timestamp:     tx.Timestamp.Format(time.RFC3339Nano),
		Type:          string(tx.Type),
		Symbol:        tx.Symbol,
		Quantity:      tx.Quantity,
		Price:         tx.Price,
		CashDelta:     tx.CashDelta,
		HoldingsDelta: tx.HoldingsDelta,
		Note:          tx.Note,
	}
}

// FromTransactions converts a slice of ledger records
func FromTransactions(txs []domain.Transaction) []TransactionOutput {
	out := make([]TransactionOutput, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}
