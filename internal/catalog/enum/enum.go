// Package enum holds the closed vocabularies of the tool catalog.
//
// Every vocabulary is a string type whose value is the displayed (stored) text,
// paired with a Set that knows the ordered (name, value) members.
package enum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidValue is matched by every *InvalidValueError.
var ErrInvalidValue = errors.New("invalid value")

type InvalidValueError struct {
	Kind     string
	Value    string
	Expected []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s; expected one of {%s}",
		e.Value, e.Kind, strings.Join(e.Expected, ", "))
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Item is one (name, value) member of a vocabulary.
type Item[T ~string] struct {
	Name  string
	Value T
}

// Set is an ordered, closed vocabulary over T.
type Set[T ~string] struct {
	kind      string
	items     []Item[T]
	byValue   map[T]int
	byName    map[string]int
	normalize func(string) string
}

// NewSet builds a vocabulary; kind names it in error messages.
func NewSet[T ~string](kind string, items ...Item[T]) *Set[T] {
	s := &Set[T]{
		kind:    kind,
		items:   items,
		byValue: make(map[T]int, len(items)),
		byName:  make(map[string]int, len(items)),
	}
	for i, it := range items {
		s.byValue[it.Value] = i
		s.byName[it.Name] = i
	}
	return s
}

// withNormalizer installs a rewrite applied to input before value lookup.
func (s *Set[T]) withNormalizer(fn func(string) string) *Set[T] {
	s.normalize = fn
	return s
}

func (s *Set[T]) Kind() string { return s.kind }

func (s *Set[T]) Values() []T {
	out := make([]T, len(s.items))
	for i, it := range s.items {
		out[i] = it.Value
	}
	return out
}

func (s *Set[T]) Names() []string {
	out := make([]string, len(s.items))
	for i, it := range s.items {
		out[i] = it.Name
	}
	return out
}

func (s *Set[T]) Items() []Item[T] {
	return append([]Item[T](nil), s.items...)
}

// Dict maps member names to values.
func (s *Set[T]) Dict() map[string]T {
	out := make(map[string]T, len(s.items))
	for _, it := range s.items {
		out[it.Name] = it.Value
	}
	return out
}

// DisplayNames returns the displayed values in declaration order.
func (s *Set[T]) DisplayNames() []string {
	out := make([]string, len(s.items))
	for i, it := range s.items {
		out[i] = string(it.Value)
	}
	return out
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.byValue[v]
	return ok
}

// FromValue returns the member whose value equals v. A member passed back in
// resolves to itself.
func (s *Set[T]) FromValue(v string) (T, error) {
	if i, ok := s.byValue[T(v)]; ok {
		return s.items[i].Value, nil
	}
	if s.normalize != nil {
		if i, ok := s.byValue[T(s.normalize(v))]; ok {
			return s.items[i].Value, nil
		}
	}
	var zero T
	return zero, s.invalid(v)
}

// FromName returns the member declared under name.
func (s *Set[T]) FromName(name string) (T, error) {
	if i, ok := s.byName[name]; ok {
		return s.items[i].Value, nil
	}
	var zero T
	return zero, &InvalidValueError{Kind: s.kind, Value: name, Expected: s.Names()}
}

func (s *Set[T]) invalid(v string) error {
	expected := make([]string, 0, len(s.items))
	for _, it := range s.items {
		if it.Value == "" {
			expected = append(expected, "None")
			continue
		}
		expected = append(expected, string(it.Value))
	}
	return &InvalidValueError{Kind: s.kind, Value: v, Expected: expected}
}

// parseInto is the shared body of the UnmarshalText methods.
func parseInto[T ~string](s *Set[T], dst *T, text []byte) error {
	v, err := s.FromValue(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// foldLookalikes rewrites Latin letters into their Cyrillic twins, or the reverse.
func foldLookalikes(s string, pairs map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if out, ok := pairs[r]; ok {
			return out
		}
		return r
	}, strings.TrimSpace(s))
}
