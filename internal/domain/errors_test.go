package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFamily(t *testing.T) {
	// every sentinel wraps the base account error
	for _, err := range []error{
		ErrInvalidTransaction,
		ErrInsufficientFunds,
		ErrInsufficientShares,
		ErrUnknownSymbol,
	} {
		assert.ErrorIs(t, err, ErrAccount)
	}

	// wrapping with context keeps both matches intact
	wrapped := fmt.Errorf("withdraw failed: %w", ErrInsufficientFunds)
	assert.True(t, IsInsufficientFunds(wrapped))
	assert.ErrorIs(t, wrapped, ErrAccount)

	assert.True(t, IsInvalidTransaction(ErrInvalidTransaction))
	assert.True(t, IsInsufficientShares(ErrInsufficientShares))
	assert.True(t, IsUnknownSymbol(ErrUnknownSymbol))
	assert.False(t, IsUnknownSymbol(ErrInsufficientFunds))
}

func TestTransactionTypeValid(t *testing.T) {
	for _, txType := range []TransactionType{TypeDeposit, TypeWithdraw, TypeBuy, TypeSell} {
		assert.True(t, txType.Valid())
	}
	assert.False(t, TransactionType("transfer").Valid())
	assert.False(t, TransactionType("").Valid())
}
