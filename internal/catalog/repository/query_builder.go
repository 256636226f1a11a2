package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// ErrUnknownColumn is returned by Update for columns absent from tools.
var ErrUnknownColumn = errors.New("unknown column")

// Tool header columns.
const (
	ColumnID       = "id"
	ColumnMarking  = "marking"
	ColumnGroup    = "group"
	ColumnStandard = "standard"
)

var schemaCache sync.Map

// QueryBuilder accumulates filters over the tools table. Builders are not
// safe for concurrent use; terminals leave the accumulated state in place.
type QueryBuilder struct {
	db      *gorm.DB
	logger  *zap.Logger
	filters []clause.Expression
	orders  []clause.OrderByColumn
	limit   int
	offset  int
}

// NewQueryBuilder starts an unfiltered, unordered query over tools.
func NewQueryBuilder(db *gorm.DB, logger *zap.Logger) *QueryBuilder {
	return &QueryBuilder{db: db, logger: logging.OrGlobal(logger)}
}

// Reset drops filters, ordering and pagination.
func (q *QueryBuilder) Reset() *QueryBuilder {
	q.filters = nil
	q.orders = nil
	q.limit = 0
	q.offset = 0
	return q
}

// AddFilter appends a WHERE expression. Filters are ANDed; nil is ignored.
func (q *QueryBuilder) AddFilter(expr clause.Expression) *QueryBuilder {
	if expr != nil {
		q.filters = append(q.filters, expr)
	}
	return q
}

// AddFilters appends each non-nil expression.
func (q *QueryBuilder) AddFilters(exprs ...clause.Expression) *QueryBuilder {
	for _, e := range exprs {
		q.AddFilter(e)
	}
	return q
}

// FilterByID matches any of ids. No ids adds no filter.
func (q *QueryBuilder) FilterByID(ids ...int64) *QueryBuilder {
	col := clause.Column{Name: ColumnID}
	switch len(ids) {
	case 0:
		return q
	case 1:
		return q.AddFilter(clause.Eq{Column: col, Value: ids[0]})
	default:
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		return q.AddFilter(clause.IN{Column: col, Values: values})
	}
}

// FilterByMarking matches the marking exactly or as a substring.
func (q *QueryBuilder) FilterByMarking(marking string, caseSensitive, exactMatch bool) *QueryBuilder {
	col := clause.Column{Name: ColumnMarking}
	switch {
	case exactMatch && caseSensitive:
		return q.AddFilter(clause.Eq{Column: col, Value: marking})
	case exactMatch:
		return q.AddFilter(ilike(col, escapeLike(marking)))
	case caseSensitive:
		return q.AddFilter(clause.Like{Column: col, Value: "%" + escapeLike(marking) + "%"})
	default:
		return q.AddFilter(ilike(col, "%"+escapeLike(marking)+"%"))
	}
}

// FilterByGroup matches any of the group values. An empty list adds no filter.
func (q *QueryBuilder) FilterByGroup(values []string, caseSensitive bool) *QueryBuilder {
	return q.AddFilter(anyOf(clause.Column{Name: ColumnGroup}, values, caseSensitive))
}

// FilterByStandard matches any of the standard values. An empty list adds no filter.
func (q *QueryBuilder) FilterByStandard(values []string, caseSensitive bool) *QueryBuilder {
	return q.AddFilter(anyOf(clause.Column{Name: ColumnStandard}, values, caseSensitive))
}

// OrderBy appends an ORDER BY column. Execute orders by id when none is set.
func (q *QueryBuilder) OrderBy(column string, desc bool) *QueryBuilder {
	q.orders = append(q.orders, clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	return q
}

// Limit caps the result size; n <= 0 removes the cap.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Offset skips the first n matches.
func (q *QueryBuilder) Offset(n int) *QueryBuilder {
	q.offset = n
	return q
}

// scope applies filters and, when paged is set, ordering and pagination.
func (q *QueryBuilder) scope(tx *gorm.DB, paged bool) *gorm.DB {
	tx = tx.Model(&entity.Tool{})
	if len(q.filters) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: q.filters})
	}
	if !paged {
		return tx
	}
	orders := q.orders
	if len(orders) == 0 {
		orders = []clause.OrderByColumn{{Column: clause.Column{Name: ColumnID}}}
	}
	tx = tx.Order(clause.OrderBy{Columns: orders})
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}
	if q.offset > 0 {
		tx = tx.Offset(q.offset)
	}
	return tx
}

// Execute returns the matching tools with every geometry relation preloaded.
func (q *QueryBuilder) Execute(ctx context.Context) ([]entity.Tool, error) {
	tx := q.scope(q.db.WithContext(ctx), true)
	for _, rel := range entity.Relations() {
		tx = tx.Preload(rel)
	}
	var tools []entity.Tool
	if err := tx.Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("query tools: %w", err)
	}
	return tools, nil
}

// First returns the first match, or nil when nothing matches.
func (q *QueryBuilder) First(ctx context.Context) (*entity.Tool, error) {
	saved := q.limit
	q.limit = 1
	tools, err := q.Execute(ctx)
	q.limit = saved
	if err != nil || len(tools) == 0 {
		return nil, err
	}
	return &tools[0], nil
}

// Count returns the number of matches, ignoring ordering and pagination.
func (q *QueryBuilder) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.scope(q.db.WithContext(ctx), false).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return n, nil
}

// UniqueValues lists the distinct non-null values of a tools column under the
// current filters. An unknown column yields an empty list.
func (q *QueryBuilder) UniqueValues(ctx context.Context, column string) ([]string, error) {
	if !q.hasColumn(column) {
		q.logger.Warn("unique values requested for unknown column", zap.String("column", column))
		return []string{}, nil
	}
	col := clause.Column{Name: column}
	var values []string
	err := q.scope(q.db.WithContext(ctx), false).
		Where(clause.Neq{Column: col, Value: nil}).
		Distinct(column).
		Order(clause.OrderByColumn{Column: col}).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("unique values of %s: %w", column, err)
	}
	return values, nil
}

// Update sets values on every matching row and returns the affected count.
func (q *QueryBuilder) Update(ctx context.Context, values map[string]any) (int64, error) {
	for column := range values {
		if !q.hasColumn(column) {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}
	}
	res := q.scope(q.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}), false).
		Updates(values)
	if res.Error != nil {
		return 0, fmt.Errorf("update tools: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes every matching row; geometry rows follow through the cascade.
func (q *QueryBuilder) Delete(ctx context.Context) (int64, error) {
	res := q.scope(q.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}), false).
		Delete(&entity.Tool{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete tools: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DebugQuery renders the SELECT that Execute would run, literals inlined.
func (q *QueryBuilder) DebugQuery() string {
	return q.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var tools []entity.Tool
		return q.scope(tx, true).Find(&tools)
	})
}

func (q *QueryBuilder) hasColumn(column string) bool {
	s, err := schema.Parse(&entity.Tool{}, &schemaCache, q.db.NamingStrategy)
	if err != nil {
		q.logger.Error("parse tools schema", zap.Error(err))
		return false
	}
	_, ok := s.FieldsByDBName[column]
	return ok
}

func anyOf(col clause.Column, values []string, caseSensitive bool) clause.Expression {
	switch {
	case len(values) == 0:
		return nil
	case caseSensitive && len(values) == 1:
		return clause.Eq{Column: col, Value: values[0]}
	case caseSensitive:
		in := make([]any, len(values))
		for i, v := range values {
			in[i] = v
		}
		return clause.IN{Column: col, Values: in}
	}
	exprs := make([]clause.Expression, len(values))
	for i, v := range values {
		exprs[i] = ilike(col, escapeLike(v))
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return clause.Or(exprs...)
}

func ilike(col clause.Column, pattern string) clause.Expression {
	return clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, pattern}}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
