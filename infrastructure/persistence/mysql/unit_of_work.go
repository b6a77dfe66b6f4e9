package mysql

import (
	"context"
	"fmt"

	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence"
	"meusmedicamentos/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork opens one transaction per attempt, hands it to repositories through ctx
// and writes the events of registered aggregates to the outbox before committing.
// A unit is stateful and belongs to a single request.
type UnitOfWork struct {
	db          *gorm.DB
	aggregates  []shared.AggregateRoot
	outbox      shared.OutboxRepository
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB, outbox shared.OutboxRepository) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outbox:      outbox,
		retryConfig: retry.DefaultConfig,
	}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute commits when fn returns nil and rolls back otherwise. Retryable failures
// (lost optimistic lock, deadlock) re-run fn from scratch, so fn must reload what it changes.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	once := func(ctx context.Context) error {
		u.aggregates = nil

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}
		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		for _, agg := range u.aggregates {
			for _, event := range agg.PullEvents() {
				if err := u.outbox.SaveEvent(txCtx, event); err != nil {
					tx.Rollback()
					return fmt.Errorf("failed to save event to outbox: %w", err)
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	err := retry.ExecuteWithRetry(ctx, u.retryConfig, once)
	u.aggregates = nil
	return err
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
