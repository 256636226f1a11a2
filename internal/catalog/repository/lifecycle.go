package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// Lifecycle creates, checks and empties the catalog tables.
type Lifecycle struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLifecycle creates a Lifecycle for db.
func NewLifecycle(db *gorm.DB, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{db: db, logger: logging.OrGlobal(logger)}
}

// Migrate creates or alters the tools table and every geometry table.
func (l *Lifecycle) Migrate(ctx context.Context) error {
	if err := l.db.WithContext(ctx).AutoMigrate(entity.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	l.logger.Info("catalog tables migrated", zap.Strings("tables", entity.TableNames()))
	return nil
}

// MissingTables returns the expected tables that do not exist.
func (l *Lifecycle) MissingTables(ctx context.Context, expected []string) []string {
	migrator := l.db.WithContext(ctx).Migrator()
	var missing []string
	for _, name := range expected {
		if !migrator.HasTable(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		l.logger.Warn("catalog tables missing", zap.Strings("tables", missing))
	}
	return missing
}

// Clear truncates every catalog table and restarts identities.
func (l *Lifecycle) Clear(ctx context.Context) error {
	tables := entity.TableNames()
	quoted := make([]string, len(tables))
	for i, name := range tables {
		quoted[i] = l.db.Statement.Quote(clause.Table{Name: name})
	}
	sql := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
	if err := l.db.WithContext(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("truncate catalog: %w", err)
	}
	l.logger.Info("catalog cleared", zap.Strings("tables", tables))
	return nil
}
