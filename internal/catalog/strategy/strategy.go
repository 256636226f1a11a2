// Package strategy holds the named search procedures the finder dispatches to.
package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/catalog/repository"
	"github.com/bitfantasy/toolcat/internal/shared/registry"
)

// ErrMissingArgument is returned when a strategy lacks a required argument.
var ErrMissingArgument = errors.New("missing argument")

// Canonical strategy names.
const (
	ByID               = "by_id"
	ByMarking          = "by_marking"
	ByGroup            = "by_group"
	ByStandard         = "by_standard"
	ByMarkingAndGroup  = "by_marking_and_group"
	ByGroupAndStandard = "by_group_and_standard"
	All                = "all"
)

// Args are the search parameters. The zero value matches markings as
// case-sensitive substrings and lists with IN.
type Args struct {
	ToolIDs         []int64
	Marking         string
	ExactMatch      bool
	Groups          []string
	Standards       []string
	CaseInsensitive bool
}

// Strategy installs its filters on a fresh builder and executes it.
type Strategy interface {
	Name() string
	Execute(ctx context.Context, qb *repository.QueryBuilder, args Args) ([]entity.Tool, error)
}

// Func adapts a filter function into a Strategy.
type Func struct {
	name  string
	apply func(qb *repository.QueryBuilder, args Args) error
}

// New wraps apply as a named strategy.
func New(name string, apply func(qb *repository.QueryBuilder, args Args) error) *Func {
	return &Func{name: name, apply: apply}
}

func (s *Func) Name() string { return s.name }

// Execute applies args to qb and runs the query. Missing arguments fail
// before any SQL is sent.
func (s *Func) Execute(ctx context.Context, qb *repository.QueryBuilder, args Args) ([]entity.Tool, error) {
	if err := s.apply(qb, args); err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return qb.Execute(ctx)
}

func missing(arg string) error {
	return fmt.Errorf("%w: %s", ErrMissingArgument, arg)
}

func byID(qb *repository.QueryBuilder, a Args) error {
	if len(a.ToolIDs) == 0 {
		return missing("tool ids")
	}
	qb.FilterByID(a.ToolIDs...)
	return nil
}

func byMarking(qb *repository.QueryBuilder, a Args) error {
	if a.Marking == "" {
		return missing("marking")
	}
	qb.FilterByMarking(a.Marking, !a.CaseInsensitive, a.ExactMatch)
	return nil
}

func byGroup(qb *repository.QueryBuilder, a Args) error {
	if len(a.Groups) == 0 {
		return missing("groups")
	}
	qb.FilterByGroup(a.Groups, !a.CaseInsensitive)
	return nil
}

func byStandard(qb *repository.QueryBuilder, a Args) error {
	if len(a.Standards) == 0 {
		return missing("standards")
	}
	qb.FilterByStandard(a.Standards, !a.CaseInsensitive)
	return nil
}

func both(first, second func(*repository.QueryBuilder, Args) error) func(*repository.QueryBuilder, Args) error {
	return func(qb *repository.QueryBuilder, a Args) error {
		if err := first(qb, a); err != nil {
			return err
		}
		return second(qb, a)
	}
}

// Defaults returns the canonical strategies keyed by name.
func Defaults() map[string]Strategy {
	list := []Strategy{
		New(ByID, byID),
		New(ByMarking, byMarking),
		New(ByGroup, byGroup),
		New(ByStandard, byStandard),
		New(ByMarkingAndGroup, both(byMarking, byGroup)),
		New(ByGroupAndStandard, both(byGroup, byStandard)),
		New(All, func(*repository.QueryBuilder, Args) error { return nil }),
	}
	out := make(map[string]Strategy, len(list))
	for _, s := range list {
		out[s.Name()] = s
	}
	return out
}

// Factory is the strategy registry.
type Factory struct {
	*registry.Registry[Strategy]
}

// NewFactory returns a factory holding the built-in strategies.
func NewFactory() *Factory {
	return &Factory{Registry: registry.New(Defaults)}
}

// Add registers s under its own name.
func (f *Factory) Add(s Strategy) {
	f.Register(s.Name(), s)
}
