package infra

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"stocksim/internal/domain"
)

// Scheduler periodically marks the active account to market and logs the
// valuation snapshot. The account is fetched through a provider on every
// tick, so the job follows whatever account is currently active.
type Scheduler struct {
	cron    *cron.Cron
	account func() *domain.Account
	spec    string
	log     zerolog.Logger
}

// NewScheduler creates a new scheduler. spec is a standard cron expression,
// e.g. "*/1 * * * *" for one snapshot per minute.
func NewScheduler(account func() *domain.Account, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		account: account,
		spec:    spec,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.snapshot)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.spec).Msg("snapshot scheduler started")
	return nil
}

// Stop stops the scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("snapshot scheduler stopped")
}

// snapshot logs a mark-to-market statement for the active account. Skips
// quietly while no account exists yet.
func (s *Scheduler) snapshot() {
	account := s.account()
	if account == nil {
		return
	}

	stmt, err := account.Statement(nil)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID()).Msg("mark-to-market failed")
		return
	}

	s.log.Info().
		Str("account_id", stmt.AccountID).
		Float64("cash_balance", stmt.CashBalance).
		Float64("portfolio_value", stmt.PortfolioValue).
		Float64("total_balance", stmt.TotalBalance).
		Float64("profit_loss", stmt.ProfitLoss).
		Int("transactions", stmt.TransactionCount).
		Msg("mark-to-market snapshot")
}
