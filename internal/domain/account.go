package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Account is the aggregate root for one simulated trading account. It owns
// the cash balance, the holdings table and the append-only transaction
// ledger; all mutation goes through Deposit/Withdraw/Buy/Sell and every read
// view returns an independent copy, never a live reference.
//
// A per-instance mutex serializes concurrent callers, so each operation's
// cash/holdings/ledger update appears atomic to any other goroutine.
type Account struct {
	mu sync.Mutex

	accountID string
	owner     string

	// baseline anchors profit/loss. It is set exactly once: at construction
	// when a positive initial deposit is given, otherwise by the first
	// successful deposit, and never changes afterwards.
	baseline float64

	cash         float64
	holdings     map[string]int64
	transactions []Transaction

	prices PriceSource
	now    func() time.Time
}

// Statement is a point-in-time snapshot of an account, combining identity,
// balances and valuation into one read model.
type Statement struct {
	AccountID        string           `json:"account_id"`
	Owner            string           `json:"owner,omitempty"`
	CashBalance      float64          `json:"cash_balance"`
	Holdings         map[string]int64 `json:"holdings"`
	PortfolioValue   float64          `json:"portfolio_value"`
	TotalBalance     float64          `json:"total_balance"`
	ProfitLoss       float64          `json:"profit_loss"`
	TransactionCount int              `json:"transaction_count"`
}

// NewAccount creates an account bound to the given default price source,
// stamping transactions with the current UTC wall-clock time.
//
// A positive initialDeposit funds the account through a real deposit (so the
// ledger starts with one deposit transaction) and anchors the profit/loss
// baseline. A negative initialDeposit returns ErrInvalidTransaction.
func NewAccount(accountID, owner string, initialDeposit float64, prices PriceSource) (*Account, error) {
	return NewAccountWithClock(accountID, owner, initialDeposit, prices, nil)
}

// NewAccountWithClock is NewAccount with an injectable clock, so tests can
// supply deterministic timestamps. A nil now falls back to time.Now.
func NewAccountWithClock(accountID, owner string, initialDeposit float64, prices PriceSource, now func() time.Time) (*Account, error) {
	if initialDeposit < 0 {
		return nil, fmt.Errorf("initial deposit must be >= 0: %w", ErrInvalidTransaction)
	}
	if now == nil {
		now = time.Now
	}

	a := &Account{
		accountID: accountID,
		owner:     owner,
		holdings:  make(map[string]int64),
		prices:    prices,
		now:       now,
	}

	if initialDeposit > 0 {
		a.cash += initialDeposit
		a.recordTransaction(TypeDeposit, initialDeposit, nil, "", 0, 0, "Initial deposit")
		a.baseline = initialDeposit
	}

	return a, nil
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.accountID }

// Owner returns the account owner name, possibly empty.
func (a *Account) Owner() string { return a.owner }

// Baseline returns the profit/loss reference amount, 0 until the first deposit.
func (a *Account) Baseline() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.baseline
}

// Deposit adds amount to the cash balance and appends a deposit transaction.
// The amount must be strictly positive. The first deposit ever made anchors
// the profit/loss baseline if construction did not.
func (a *Account) Deposit(amount float64, note string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("deposit amount must be > 0: %w", ErrInvalidTransaction)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.cash += amount
	tx := a.recordTransaction(TypeDeposit, amount, nil, "", 0, 0, note)
	if a.baseline == 0 {
		a.baseline = amount
	}
	return tx.clone(), nil
}

// Withdraw removes amount from the cash balance and appends a withdraw
// transaction. Fails with ErrInsufficientFunds if the balance would go
// negative; the account is left untouched on any failure.
func (a *Account) Withdraw(amount float64, note string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("withdraw amount must be > 0: %w", ErrInvalidTransaction)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cash-amount < 0 {
		return Transaction{}, fmt.Errorf("cash balance %.2f cannot cover withdrawal of %.2f: %w", a.cash, amount, ErrInsufficientFunds)
	}
	a.cash -= amount
	tx := a.recordTransaction(TypeWithdraw, -amount, nil, "", 0, 0, note)
	return tx.clone(), nil
}

// Buy purchases quantity shares of symbol. When price is non-nil it is used
// as the execution price (it must be >= 0), which lets callers execute
// against historical or hypothetical prices; otherwise the bound price
// source resolves the symbol. Affordability is checked before any mutation.
func (a *Account) Buy(symbol string, quantity int64, price *float64, note string) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("buy quantity must be > 0: %w", ErrInvalidTransaction)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	execPrice, err := a.resolvePrice(symbol, price)
	if err != nil {
		return Transaction{}, err
	}

	cost := execPrice * float64(quantity)
	if a.cash-cost < 0 {
		return Transaction{}, fmt.Errorf("cash balance %.2f cannot cover buy of %d %s at %.2f: %w", a.cash, quantity, symbol, execPrice, ErrInsufficientFunds)
	}

	a.cash -= cost
	a.holdings[symbol] += quantity
	tx := a.recordTransaction(TypeBuy, -cost, map[string]int64{symbol: quantity}, symbol, quantity, execPrice, note)
	return tx.clone(), nil
}

// Sell disposes of quantity shares of symbol. Share sufficiency is checked
// before price resolution, so a short sale never touches the price source.
// A holding that reaches zero is removed from the holdings table entirely.
func (a *Account) Sell(symbol string, quantity int64, price *float64, note string) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("sell quantity must be > 0: %w", ErrInvalidTransaction)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	held := a.holdings[symbol]
	if held-quantity < 0 {
		return Transaction{}, fmt.Errorf("holding %d %s cannot cover sale of %d: %w", held, symbol, quantity, ErrInsufficientShares)
	}

	execPrice, err := a.resolvePrice(symbol, price)
	if err != nil {
		return Transaction{}, err
	}

	proceeds := execPrice * float64(quantity)
	a.cash += proceeds
	if held-quantity == 0 {
		delete(a.holdings, symbol)
	} else {
		a.holdings[symbol] = held - quantity
	}
	tx := a.recordTransaction(TypeSell, proceeds, map[string]int64{symbol: -quantity}, symbol, quantity, execPrice, note)
	return tx.clone(), nil
}

// Holdings returns an independent copy of the holdings table.
func (a *Account) Holdings() map[string]int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyHoldings()
}

// CashBalance returns the current cash balance.
func (a *Account) CashBalance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// PortfolioValue sums quantity*price over every held symbol. A nil prices
// argument uses the account's bound default source. An unresolvable held
// symbol propagates ErrUnknownSymbol rather than being valued at zero, so a
// stale holding surfaces as an error instead of a silently wrong total.
func (a *Account) PortfolioValue(prices PriceSource) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.portfolioValue(prices)
}

// TotalBalance returns cash plus portfolio value.
func (a *Account) TotalBalance(prices PriceSource) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, err := a.portfolioValue(prices)
	if err != nil {
		return 0, err
	}
	return a.cash + value, nil
}

// ProfitLoss returns the total balance minus the baseline. While no deposit
// has ever been made the baseline is 0 and the result equals the total
// balance.
func (a *Account) ProfitLoss(prices PriceSource) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, err := a.portfolioValue(prices)
	if err != nil {
		return 0, err
	}
	return a.cash + value - a.baseline, nil
}

// ListTransactions returns an ascending, independent copy of the ledger
// entries matching the filter. An inverted time range fails with
// ErrInvalidTransaction.
func (a *Account) ListTransactions(filter TransactionFilter) ([]Transaction, error) {
	if filter.Start != nil && filter.End != nil && filter.Start.After(*filter.End) {
		return nil, fmt.Errorf("transaction query start must be <= end: %w", ErrInvalidTransaction)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]Transaction, 0, len(a.transactions))
	for _, tx := range a.transactions {
		if filter.matches(tx) {
			result = append(result, tx.clone())
		}
	}
	return result, nil
}

// GetTransaction looks up a ledger entry by id. A missing id is reported
// through the boolean, not an error.
func (a *Account) GetTransaction(txID string) (Transaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, tx := range a.transactions {
		if tx.ID == txID {
			return tx.clone(), true
		}
	}
	return Transaction{}, false
}

// Statement builds a snapshot of the account under a single lock
// acquisition, so the balances, valuation and transaction count are
// mutually consistent.
func (a *Account) Statement(prices PriceSource) (Statement, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, err := a.portfolioValue(prices)
	if err != nil {
		return Statement{}, err
	}
	total := a.cash + value
	return Statement{
		AccountID:        a.accountID,
		Owner:            a.owner,
		CashBalance:      a.cash,
		Holdings:         a.copyHoldings(),
		PortfolioValue:   value,
		TotalBalance:     total,
		ProfitLoss:       total - a.baseline,
		TransactionCount: len(a.transactions),
	}, nil
}

// recordTransaction is the single writer to the ledger: it stamps a fresh id
// and the current UTC time, appends the record and returns it. Callers must
// hold the mutex and funnel every mutation through here, which keeps the
// append-only and timestamp-ordering invariants true by construction.
func (a *Account) recordTransaction(txType TransactionType, cashDelta float64, holdingsDelta map[string]int64, symbol string, quantity int64, price float64, note string) Transaction {
	tx := Transaction{
		ID:            uuid.NewString(),
		Timestamp:     a.now().UTC(),
		Type:          txType,
		Symbol:        symbol,
		Quantity:      quantity,
		Price:         price,
		CashDelta:     cashDelta,
		HoldingsDelta: holdingsDelta,
		Note:          note,
	}
	a.transactions = append(a.transactions, tx)
	return tx
}

// resolvePrice picks the execution price: an explicit caller price wins,
// otherwise the bound default source is queried.
func (a *Account) resolvePrice(symbol string, explicit *float64) (float64, error) {
	if explicit != nil {
		if *explicit < 0 {
			return 0, fmt.Errorf("explicit price must be >= 0: %w", ErrInvalidTransaction)
		}
		return *explicit, nil
	}
	if a.prices == nil {
		return 0, fmt.Errorf("no price source bound for %q: %w", symbol, ErrUnknownSymbol)
	}
	price, err := a.prices.GetPrice(symbol)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, fmt.Errorf("price source returned negative price for %q: %w", symbol, ErrInvalidTransaction)
	}
	return price, nil
}

// portfolioValue is the unlocked valuation core shared by the read views.
func (a *Account) portfolioValue(prices PriceSource) (float64, error) {
	if prices == nil {
		prices = a.prices
	}

	total := 0.0
	for symbol, quantity := range a.holdings {
		if prices == nil {
			return 0, fmt.Errorf("no price source bound for %q: %w", symbol, ErrUnknownSymbol)
		}
		price, err := prices.GetPrice(symbol)
		if err != nil {
			return 0, err
		}
		total += price * float64(quantity)
	}
	return total, nil
}

func (a *Account) copyHoldings() map[string]int64 {
	out := make(map[string]int64, len(a.holdings))
	for symbol, quantity := range a.holdings {
		out[symbol] = quantity
	}
	return out
}
