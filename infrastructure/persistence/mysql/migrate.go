package mysql

import (
	"fmt"

	"meusmedicamentos/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or alters the tables for every persistence object.
// It is dialect-neutral and also runs against PostgreSQL connections.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&po.CategoriaPO{}, &po.MedicamentoPO{}, &po.OutboxEventPO{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
