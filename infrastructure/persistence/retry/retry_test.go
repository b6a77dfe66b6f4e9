package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"meusmedicamentos/domain/medicamento"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"concurrent modification", medicamento.NewConcurrentModificationError(1), true},
		{"wrapped concurrent modification", fmt.Errorf("salvar: %w", medicamento.NewConcurrentModificationError(1)), true},
		{"deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"lock wait", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"duplicate key", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"not found", medicamento.NewMedicamentoNotFoundError(1), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err, cfg))
		})
	}
}

func TestIsRetryableError_RespectsFlags(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryOnDeadlock = false
	cfg.RetryOnConcurrentModification = false

	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
	assert.False(t, IsRetryableError(medicamento.NewConcurrentModificationError(1), cfg))
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialDelay = 10 * time.Millisecond
	cfg.MaxDelay = 25 * time.Millisecond

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 10*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 20*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 25*time.Millisecond, ExponentialBackoffWithJitter(3, cfg))
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			if calls < 3 {
				return medicamento.NewConcurrentModificationError(7)
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		permanent := medicamento.NewMedicamentoNotFoundError(7)
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(context.Context) error {
			calls++
			return &mysqlDriver.MySQLError{Number: 1213}
		})
		assert.Error(t, err)
		assert.Equal(t, DefaultConfig.MaxAttempts, calls)
	})

	t.Run("disabled runs once", func(t *testing.T) {
		cfg := fastConfig()
		cfg.Enabled = false
		calls := 0
		_ = ExecuteWithRetry(context.Background(), cfg, func(context.Context) error {
			calls++
			return medicamento.NewConcurrentModificationError(7)
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ExecuteWithRetry(ctx, fastConfig(), func(context.Context) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
