package snapshot

import (
	"fmt"
	"sort"
)

// Field names a declared record field. Record packages declare their fields as
// typed constants so that exclusion and ignore sets cannot name a field that
// does not exist without failing to compile.
type Field string

// FieldSet is a set of field names.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Strings returns the field names sorted.
func (s FieldSet) Strings() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Accessor declares one field of record type T.
// Set is optional and only needed for fields restored from a snapshot.
type Accessor[T any] struct {
	Name Field
	Get  func(*T) any
	Set  func(*T, any)
}

// Schema serializes records of type T from an explicit field list.
type Schema[T any] struct {
	fields   []Accessor[T]
	byName   map[Field]int
	excluded FieldSet
}

// NewSchema validates the declaration: field names must be unique, every field
// must have a getter, and every excluded name must be a declared field.
func NewSchema[T any](fields []Accessor[T], excluded FieldSet) (*Schema[T], error) {
	byName := make(map[Field]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if f.Get == nil {
			return nil, fmt.Errorf("field %q has no getter", f.Name)
		}
		if _, dup := byName[f.Name]; dup {
			return nil, fmt.Errorf("field %q declared twice", f.Name)
		}
		byName[f.Name] = i
	}
	for name := range excluded {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("excluded field %q is not declared", name)
		}
	}
	if excluded == nil {
		excluded = FieldSet{}
	}
	return &Schema[T]{fields: fields, byName: byName, excluded: excluded}, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema[T any](fields []Accessor[T], excluded FieldSet) *Schema[T] {
	s, err := NewSchema(fields, excluded)
	if err != nil {
		panic("snapshot: " + err.Error())
	}
	return s
}

// Serialize builds the snapshot of rec from every non-excluded field.
func (s *Schema[T]) Serialize(rec *T) Snapshot {
	out := make(Snapshot, len(s.fields))
	for _, f := range s.fields {
		if s.excluded.Has(f.Name) {
			continue
		}
		out.Set(string(f.Name), f.Get(rec))
	}
	return out
}

// Restore writes the named fields present in snap back into rec.
// Fields without a setter, or absent from snap, are left untouched.
func (s *Schema[T]) Restore(rec *T, snap Snapshot, names ...Field) {
	for _, name := range names {
		i, ok := s.byName[name]
		if !ok || s.fields[i].Set == nil {
			continue
		}
		if v, present := snap[string(name)]; present {
			s.fields[i].Set(rec, v)
		}
	}
}

// Significant returns the serialized field names in declaration order.
func (s *Schema[T]) Significant() []Field {
	out := make([]Field, 0, len(s.fields))
	for _, f := range s.fields {
		if !s.excluded.Has(f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

// Excluded returns the exclusion set.
func (s *Schema[T]) Excluded() FieldSet {
	return s.excluded
}
