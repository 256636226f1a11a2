package service

import (
	"context"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/toolcat/internal/catalog/repository"
	"github.com/bitfantasy/toolcat/internal/shared/cache"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueLookup serves the distinct values of a tools column, e.g. every
// standard in use, through a cache.
type ValueLookup struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.Logger
}

// NewValueLookup creates a lookup caching value lists in c. A nil cache disables caching.
func NewValueLookup(db *gorm.DB, c cache.Cache, logger *zap.Logger) *ValueLookup {
	if c == nil {
		c = cache.Nop{}
	}
	return &ValueLookup{db: db, cache: c, logger: logging.OrGlobal(logger)}
}

func valuesKey(column string, groups []string) string {
	return "values:" + column + ":" + strings.Join(groups, "|")
}

// Values returns the sorted distinct values of column, optionally within groups.
// Cache failures are logged and the database is queried instead.
func (v *ValueLookup) Values(ctx context.Context, column string, groups ...string) ([]string, error) {
	key := valuesKey(column, groups)
	if raw, ok, err := v.cache.Get(ctx, key); err != nil {
		v.logger.Warn("value cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var values []string
		if err := json.Unmarshal(raw, &values); err == nil {
			return values, nil
		}
		v.logger.Warn("corrupt value cache entry", zap.String("key", key))
	}

	qb := repository.NewQueryBuilder(v.db, v.logger)
	if len(groups) > 0 {
		qb.FilterByGroup(groups, true)
	}
	values, err := qb.UniqueValues(ctx, column)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(values); err == nil {
		if err := v.cache.Set(ctx, key, raw); err != nil {
			v.logger.Warn("value cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return values, nil
}

// Invalidate drops every cached value list.
func (v *ValueLookup) Invalidate(ctx context.Context) error {
	return v.cache.Purge(ctx)
}
