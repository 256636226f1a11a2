package service

import "github.com/bitfantasy/toolcat/internal/catalog/schema"

// Formatter shapes assembled schemas into a result container.
type Formatter[R any] interface {
	Format(schemas []schema.Schema) R
}

// ListFormatter keeps query order.
type ListFormatter struct{}

func (ListFormatter) Format(schemas []schema.Schema) []schema.Schema {
	if schemas == nil {
		return []schema.Schema{}
	}
	return schemas
}

// MarkingFormatter keys schemas by marking; the last duplicate wins.
type MarkingFormatter struct{}

func (MarkingFormatter) Format(schemas []schema.Schema) map[string]schema.Schema {
	out := make(map[string]schema.Schema, len(schemas))
	for _, s := range schemas {
		out[s.Marking()] = s
	}
	return out
}

// OrdinalFormatter keys schemas by 1-based position.
type OrdinalFormatter struct{}

func (OrdinalFormatter) Format(schemas []schema.Schema) map[int]schema.Schema {
	out := make(map[int]schema.Schema, len(schemas))
	for i, s := range schemas {
		out[i+1] = s
	}
	return out
}
