package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/toolcat/internal/catalog/repository"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/catalog/strategy"
	"github.com/bitfantasy/toolcat/internal/shared/logging"
	"github.com/bitfantasy/toolcat/internal/shared/metrics"
)

// ErrUnknownStrategy is matched by *UnknownStrategyError.
var ErrUnknownStrategy = errors.New("unknown strategy")

type UnknownStrategyError struct {
	Name      string
	Available []string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q; available: %s", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownStrategyError) Is(target error) bool { return target == ErrUnknownStrategy }

type finderOptions struct {
	limit      int
	strategies *strategy.Factory
	assembler  *Assembler
	logger     *zap.Logger
}

// Option configures a Finder.
type Option func(*finderOptions)

// WithDefaultLimit caps every query that does not pass its own limit.
func WithDefaultLimit(n int) Option {
	return func(o *finderOptions) { o.limit = n }
}

// WithStrategies replaces the built-in strategy set.
func WithStrategies(f *strategy.Factory) Option {
	return func(o *finderOptions) { o.strategies = f }
}

// WithAssembler sets the assembler turning rows into schemas.
func WithAssembler(a *Assembler) Option {
	return func(o *finderOptions) { o.assembler = a }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *finderOptions) { o.logger = l }
}

// Finder runs a named strategy and shapes the rows with its formatter.
type Finder[R any] struct {
	db         *gorm.DB
	formatter  Formatter[R]
	limit      int
	ignoreCase bool
	strategies *strategy.Factory
	assembler  *Assembler
	logger     *zap.Logger
}

// NewFinder builds a finder over db. Without options it has no default limit
// and uses every registered strategy.
func NewFinder[R any](db *gorm.DB, formatter Formatter[R], opts ...Option) *Finder[R] {
	o := finderOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrGlobal(o.logger)
	if o.strategies == nil {
		o.strategies = strategy.NewFactory()
	}
	if o.assembler == nil {
		o.assembler = NewAssembler(nil, nil, o.logger)
	}
	return &Finder[R]{
		db:         db,
		formatter:  formatter,
		limit:      o.limit,
		strategies: o.strategies,
		assembler:  o.assembler,
		logger:     o.logger,
	}
}

// NewListFinder is the common Finder returning schemas in query order.
func NewListFinder(db *gorm.DB, opts ...Option) *Finder[[]schema.Schema] {
	return NewFinder[[]schema.Schema](db, ListFormatter{}, opts...)
}

// WithLimit returns a copy of the finder with another default limit.
func (f *Finder[R]) WithLimit(n int) *Finder[R] {
	c := *f
	c.limit = n
	return &c
}

// WithCaseInsensitive returns a copy of the finder whose FindBy* helpers match
// markings, groups and standards regardless of case.
func (f *Finder[R]) WithCaseInsensitive(on bool) *Finder[R] {
	c := *f
	c.ignoreCase = on
	return &c
}

func (f *Finder[R]) Strategies() *strategy.Factory { return f.strategies }

// Find runs the named strategy. A positive limit overrides the finder's
// default; zero or less uses the default, which itself may be unlimited.
func (f *Finder[R]) Find(ctx context.Context, name string, limit int, args strategy.Args) (R, error) {
	var zero R
	start := time.Now()

	s, ok := f.strategies.Get(name)
	if !ok {
		metrics.QueriesTotal.WithLabelValues(name, metrics.StatusError).Inc()
		return zero, &UnknownStrategyError{Name: name, Available: f.strategies.Names()}
	}

	effective := f.limit
	if limit > 0 {
		effective = limit
	}
	qb := repository.NewQueryBuilder(f.db, f.logger).Limit(effective)

	tools, err := s.Execute(ctx, qb, args)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(name, metrics.StatusError).Inc()
		return zero, err
	}
	schemas := f.assembler.AssembleAll(ctx, tools)

	metrics.QueriesTotal.WithLabelValues(name, metrics.StatusOK).Inc()
	metrics.QueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	f.logger.Debug("find",
		zap.String("strategy", name),
		zap.Int("limit", effective),
		zap.Int("rows", len(tools)),
		zap.Int("schemas", len(schemas)),
	)
	return f.formatter.Format(schemas), nil
}

// with fills in the finder-wide matching mode for the FindBy* helpers.
func (f *Finder[R]) with(args strategy.Args) strategy.Args {
	args.CaseInsensitive = f.ignoreCase
	return args
}

// The FindBy* helpers run one strategy each under the finder's default limit
// and case mode; see WithLimit and WithCaseInsensitive. Use Find to pass both
// per call.

func (f *Finder[R]) FindByID(ctx context.Context, ids ...int64) (R, error) {
	return f.Find(ctx, strategy.ByID, 0, f.with(strategy.Args{ToolIDs: ids}))
}

// FindByMarking matches the marking exactly or as a substring.
func (f *Finder[R]) FindByMarking(ctx context.Context, marking string, exactMatch bool) (R, error) {
	return f.Find(ctx, strategy.ByMarking, 0, f.with(strategy.Args{Marking: marking, ExactMatch: exactMatch}))
}

func (f *Finder[R]) FindByGroup(ctx context.Context, groups ...string) (R, error) {
	return f.Find(ctx, strategy.ByGroup, 0, f.with(strategy.Args{Groups: groups}))
}

func (f *Finder[R]) FindByStandard(ctx context.Context, standards ...string) (R, error) {
	return f.Find(ctx, strategy.ByStandard, 0, f.with(strategy.Args{Standards: standards}))
}

func (f *Finder[R]) FindByMarkingAndGroup(ctx context.Context, marking string, exactMatch bool, groups ...string) (R, error) {
	return f.Find(ctx, strategy.ByMarkingAndGroup, 0, f.with(strategy.Args{Marking: marking, ExactMatch: exactMatch, Groups: groups}))
}

func (f *Finder[R]) FindByGroupAndStandard(ctx context.Context, groups, standards []string) (R, error) {
	return f.Find(ctx, strategy.ByGroupAndStandard, 0, f.with(strategy.Args{Groups: groups, Standards: standards}))
}

// FindAll returns every tool up to the default limit.
func (f *Finder[R]) FindAll(ctx context.Context) (R, error) {
	return f.Find(ctx, strategy.All, 0, strategy.Args{})
}
