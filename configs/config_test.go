package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "acct-demo", cfg.Account.ID)
	assert.Equal(t, 10000.0, cfg.Account.InitialDeposit)
	assert.Equal(t, "*/1 * * * *", cfg.Scheduler.SnapshotCron)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCOUNT_OWNER", "Alice")
	t.Setenv("INITIAL_DEPOSIT", "2500.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Alice", cfg.Account.Owner)
	assert.Equal(t, 2500.5, cfg.Account.InitialDeposit)
}

func TestLoad_BadFloatFallsBack(t *testing.T) {
	t.Setenv("INITIAL_DEPOSIT", "lots")

	cfg := Load()
	assert.Equal(t, 10000.0, cfg.Account.InitialDeposit)
}
