package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
)

// IDField is the reserved field name that addresses the document key instead of the body.
const IDField = "_id"

var (
	ErrEmptyUpdate = errors.New("docstore: update has no fields to set")
	ErrImmutableID = errors.New("docstore: document id cannot be updated")
)

// Criteria names a document field that a Filter condition is built on.
type Criteria struct {
	field string
}

// Where starts a filter condition on the given field.
func Where(field string) Criteria {
	return Criteria{field: field}
}

// Is returns a Filter matching documents whose field equals value.
func (c Criteria) Is(value any) Filter {
	return Filter{}.with(c.field, value)
}

// Filter describes which documents an operation applies to. The zero value matches every document.
type Filter struct {
	id     *string
	fields map[string]any
}

// And returns a filter matching documents that satisfy both f and other.
// A field present in both keeps the value from other.
func (f Filter) And(other Filter) Filter {
	out := f.clone()
	if other.id != nil {
		id := *other.id
		out.id = &id
	}
	for field, value := range other.fields {
		out = out.with(field, value)
	}

	return out
}

// IsEmpty reports whether the filter matches every document.
func (f Filter) IsEmpty() bool {
	return f.id == nil && len(f.fields) == 0
}

func (f Filter) with(field string, value any) Filter {
	out := f.clone()
	if field == IDField {
		id := fmt.Sprint(value)
		out.id = &id
		return out
	}
	if out.fields == nil {
		out.fields = make(map[string]any)
	}
	out.fields[field] = value

	return out
}

func (f Filter) clone() Filter {
	out := Filter{id: f.id}
	if f.fields != nil {
		out.fields = maps.Clone(f.fields)
	}

	return out
}

// where compiles the filter into a WHERE clause whose placeholders start at $argPos.
func (f Filter) where(argPos int) (string, []any, error) {
	var (
		conds []string
		args  []any
	)

	if f.id != nil {
		conds = append(conds, fmt.Sprintf("id = $%d", argPos+len(args)))
		args = append(args, *f.id)
	}

	if len(f.fields) > 0 {
		body, err := json.Marshal(f.fields)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		conds = append(conds, fmt.Sprintf("doc @> $%d::jsonb", argPos+len(args)))
		args = append(args, string(body))
	}

	if len(conds) == 0 {
		return "", nil, nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// Update describes which top-level document fields to overwrite.
type Update struct {
	set map[string]any
}

// Set returns an Update that overwrites field with value.
func Set(field string, value any) Update {
	return Update{}.Set(field, value)
}

// Set returns a copy of u that also overwrites field with value.
func (u Update) Set(field string, value any) Update {
	out := Update{set: make(map[string]any, len(u.set)+1)}
	maps.Copy(out.set, u.set)
	out.set[field] = value

	return out
}

func (u Update) patch() (string, error) {
	if len(u.set) == 0 {
		return "", ErrEmptyUpdate
	}
	if _, ok := u.set[IDField]; ok {
		return "", ErrImmutableID
	}

	body, err := json.Marshal(u.set)
	if err != nil {
		return "", fmt.Errorf("failed to encode update: %w", err)
	}

	return string(body), nil
}
