package http

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/domain"
)

// AccountHandler serves the trading-simulation account API. It holds the
// process's single current account; creating a new account replaces the
// previous one.
type AccountHandler struct {
	mu      sync.RWMutex
	account *domain.Account

	prices domain.PriceSource
	log    zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler bound to the given default
// price source.
func NewAccountHandler(prices domain.PriceSource, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		prices: prices,
		log:    log.With().Str("component", "account_handler").Logger(),
	}
}

// SetAccount installs an account, replacing any existing one. Used by main
// to seed the demo account at startup.
func (h *AccountHandler) SetAccount(account *domain.Account) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.account = account
}

// Current returns the active account, or nil when none has been created yet.
func (h *AccountHandler) Current() *domain.Account {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account
}

// CreateAccount opens a fresh account, replacing the current one
// POST /api/account
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	accountID := req.AccountID
	if accountID == "" {
		accountID = "acct-" + uuid.NewString()[:8]
	}

	account, err := domain.NewAccount(accountID, req.Owner, req.InitialDeposit, h.prices)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	h.mu.Lock()
	h.account = account
	h.mu.Unlock()

	h.log.Info().
		Str("account_id", account.ID()).
		Float64("initial_deposit", req.InitialDeposit).
		Msg("account created")

	stmt, err := account.Statement(nil)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to build statement", err)
	}
	return CreatedResponse(c, stmt)
}

// GetStatement returns the consolidated account snapshot
// GET /api/account
func (h *AccountHandler) GetStatement(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	stmt, err := account.Statement(nil)
	if err != nil {
		return h.mapAccountError(c, err)
	}
	return SuccessResponse(c, stmt)
}

// Deposit adds cash to the account
// POST /api/account/deposit
func (h *AccountHandler) Deposit(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	var req dto.CashRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	tx, err := account.Deposit(req.Amount, req.Note)
	if err != nil {
		return h.mapAccountError(c, err)
	}
	return CreatedResponse(c, dto.FromTransaction(tx))
}

// Withdraw removes cash from the account
// POST /api/account/withdraw
func (h *AccountHandler) Withdraw(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	var req dto.CashRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	tx, err := account.Withdraw(req.Amount, req.Note)
	if err != nil {
		return h.mapAccountError(c, err)
	}
	return CreatedResponse(c, dto.FromTransaction(tx))
}

// Buy executes a purchase order
// POST /api/account/buy
func (h *AccountHandler) Buy(c echo.Context) error {
	return h.trade(c, func(account *domain.Account, req dto.TradeRequest) (domain.Transaction, error) {
		return account.Buy(req.Symbol, req.Quantity, req.Price, req.Note)
	})
}

// Sell executes a sale order
// POST /api/account/sell
func (h *AccountHandler) Sell(c echo.Context) error {
	return h.trade(c, func(account *domain.Account, req dto.TradeRequest) (domain.Transaction, error) {
		return account.Sell(req.Symbol, req.Quantity, req.Price, req.Note)
	})
}

func (h *AccountHandler) trade(c echo.Context, exec func(*domain.Account, dto.TradeRequest) (domain.Transaction, error)) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Symbol == "" {
		return BadRequestResponse(c, "Symbol is required")
	}

	tx, err := exec(account, req)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	h.log.Info().
		Str("type", string(tx.Type)).
		Str("symbol", tx.Symbol).
		Int64("quantity", tx.Quantity).
		Float64("price", tx.Price).
		Msg("trade executed")

	return CreatedResponse(c, dto.FromTransaction(tx))
}

// GetHoldings returns a copy of the holdings table
// GET /api/account/holdings
func (h *AccountHandler) GetHoldings(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	holdings := account.Holdings()
	return SuccessResponse(c, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// ListTransactions returns filtered ledger entries in chronological order
// GET /api/account/transactions?start=&end=&type=&symbol=
func (h *AccountHandler) ListTransactions(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	var filter domain.TransactionFilter

	if raw := c.QueryParam("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return BadRequestResponse(c, "Invalid 'start' timestamp, expected RFC3339")
		}
		filter.Start = &t
	}
	if raw := c.QueryParam("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return BadRequestResponse(c, "Invalid 'end' timestamp, expected RFC3339")
		}
		filter.End = &t
	}
	if raw := c.QueryParam("type"); raw != "" {
		txType := domain.TransactionType(raw)
		if !txType.Valid() {
			return BadRequestResponse(c, "Invalid 'type', expected deposit|withdraw|buy|sell")
		}
		filter.Type = txType
	}
	filter.Symbol = c.QueryParam("symbol")

	txs, err := account.ListTransactions(filter)
	if err != nil {
		return h.mapAccountError(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"transactions": dto.FromTransactions(txs),
		"count":        len(txs),
	})
}

// GetTransaction returns a single ledger entry by id
// GET /api/account/transactions/:id
func (h *AccountHandler) GetTransaction(c echo.Context) error {
	account := h.Current()
	if account == nil {
		return NotFoundResponse(c, "No account created yet")
	}

	tx, ok := account.GetTransaction(c.Param("id"))
	if !ok {
		return NotFoundResponse(c, "Transaction not found")
	}
	return SuccessResponse(c, dto.FromTransaction(tx))
}

// mapAccountError translates domain errors to HTTP status codes: malformed
// input and unknown symbols are client errors, shortfalls are conflicts with
// the current account state.
func (h *AccountHandler) mapAccountError(c echo.Context, err error) error {
	switch {
	case domain.IsInsufficientFunds(err), domain.IsInsufficientShares(err):
		return ConflictResponse(c, err.Error())
	case domain.IsInvalidTransaction(err), domain.IsUnknownSymbol(err):
		return BadRequestResponse(c, err.Error())
	default:
		h.log.Error().Err(err).Msg("unexpected account error")
		return InternalServerErrorResponse(c, "Unexpected error", err)
	}
}
