package mysql

import (
	"meusmedicamentos/domain/shared"
	"meusmedicamentos/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory hands out a fresh unit per request; all of them share one outbox.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	outbox      shared.OutboxRepository
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		outbox:      NewOutboxRepository(db),
		retryConfig: retryConfig,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db, f.outbox)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
