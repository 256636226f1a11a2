package schema

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"github.com/bitfantasy/toolcat/internal/catalog/enum"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	_ = v.RegisterValidation("standard", func(fl validator.FieldLevel) bool {
		return enum.IsStandard(fl.Field().String())
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	})
	v.RegisterStructValidation(validateTolerance, Tolerance{})
	return v
}

// validateTolerance accepts the zero tolerance or a pair that parses back to itself,
// so every stored tolerance survives ToMap and FromMap.
func validateTolerance(sl validator.StructLevel) {
	t := sl.Current().Interface().(Tolerance)
	if t.IsZero() {
		return
	}
	if parsed, err := ParseTolerance(t.String()); err != nil || parsed != t {
		sl.ReportError(t, "tolerance", "Tolerance", "tolerance", "")
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

type fieldRef struct {
	name  string
	index []int
	typ   reflect.Type
}

type fieldSet struct {
	order  []fieldRef
	byName map[string]int
}

func (s *fieldSet) lookup(name string) (fieldRef, bool) {
	i, ok := s.byName[name]
	if !ok {
		return fieldRef{}, false
	}
	return s.order[i], true
}

var fieldSets sync.Map // reflect.Type -> *fieldSet

// fieldsOf indexes the json-tagged leaves of a parameter struct, embedded
// structs flattened in declaration order.
func fieldsOf(t reflect.Type) *fieldSet {
	if cached, ok := fieldSets.Load(t); ok {
		return cached.(*fieldSet)
	}
	s := &fieldSet{byName: map[string]int{}}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		s.byName[name] = len(s.order)
		s.order = append(s.order, fieldRef{name: name, index: f.Index, typ: f.Type})
	}
	actual, _ := fieldSets.LoadOrStore(t, s)
	return actual.(*fieldSet)
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// convert coerces value into typ. Enumerations and tolerances go through
// UnmarshalText, scalars through cast.
func convert(value any, typ reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type() == typ {
		return rv, nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Zero(typ), nil
		}
		return convert(rv.Elem().Interface(), typ)
	}

	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		s, err := cast.ToStringE(value)
		if err != nil {
			return reflect.Value{}, err
		}
		// Empty means unset; the validate tags decide whether that is allowed.
		if strings.TrimSpace(s) == "" {
			return reflect.Zero(typ), nil
		}
		ptr := reflect.New(typ)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" && typ.Kind() != reflect.String {
		return reflect.Zero(typ), nil
	}

	var (
		out any
		err error
	)
	switch typ.Kind() {
	case reflect.String:
		out, err = cast.ToStringE(value)
	case reflect.Float64:
		out, err = cast.ToFloat64E(value)
	case reflect.Int:
		out, err = cast.ToIntE(value)
	case reflect.Bool:
		out, err = cast.ToBoolE(value)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported field type %s", typ)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(out).Convert(typ), nil
}

// assign writes values into a copy of params, validates the copy and commits it.
// params is left untouched on any error.
func assign(params any, values map[string]any) error {
	current := reflect.ValueOf(params).Elem()
	fields := fieldsOf(current.Type())

	candidate := reflect.New(current.Type()).Elem()
	candidate.Set(current)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == FieldGroup || name == "group" {
			return &ProtectedFieldError{Field: name}
		}
		ref, ok := fields.lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		v, err := convert(values[name], ref.typ)
		if err != nil {
			return &ValidationError{Field: name, Value: values[name], Err: err}
		}
		candidate.FieldByIndex(ref.index).Set(v)
	}

	if err := validate.Struct(candidate.Addr().Interface()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			value, ok := values[fe.Field()]
			if !ok {
				value = fe.Value()
			}
			return &ValidationError{
				Field: fe.Field(),
				Value: value,
				Err:   fmt.Errorf("failed on %q constraint", fe.ActualTag()),
			}
		}
		return &ValidationError{Value: values, Err: err}
	}

	current.Set(candidate)
	return nil
}

// plain renders a field value with enumerations and tolerances as strings.
func plain(v any) any {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}
