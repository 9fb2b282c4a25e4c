package dsl

import (
	goshape "github.com/reoring/goshape"
)

type shapeBuilder struct {
	name     string
	fields   []goshape.Field
	index    map[string]int
	unknown  goshape.UnknownPolicy
	dup      string
	unmarked []string
}

type fieldStep struct {
	b *shapeBuilder
	i int
}

// Shape creates a new shape builder. Unknown keys are stripped by default.
func Shape(name string) *shapeBuilder {
	return &shapeBuilder{name: name, index: map[string]int{}, unknown: goshape.UnknownStrip}
}

// Field registers an optional, mutable field.
func (b *shapeBuilder) Field(name string, t goshape.Type) *fieldStep {
	if i, ok := b.index[name]; ok {
		if b.dup == "" {
			b.dup = name
		}
		return &fieldStep{b: b, i: i}
	}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, goshape.Field{Name: name, Type: t})
	return &fieldStep{b: b, i: len(b.fields) - 1}
}

// Required marks the current field as required.
func (f *fieldStep) Required() *fieldStep {
	f.b.fields[f.i].Required = true
	return f
}

// Optional marks the current field as optional (default).
func (f *fieldStep) Optional() *fieldStep {
	f.b.fields[f.i].Required = false
	return f
}

// Readonly forbids updates of the current field after creation.
func (f *fieldStep) Readonly() *fieldStep {
	f.b.fields[f.i].Readonly = true
	return f
}

func (f *fieldStep) Field(name string, t goshape.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Require(names ...string) *shapeBuilder        { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *shapeBuilder                 { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *shapeBuilder                  { return f.b.UnknownStrip() }
func (f *fieldStep) Build() (*goshape.Shape, error)               { return f.b.Build() }
func (f *fieldStep) MustBuild() *goshape.Shape                    { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *shapeBuilder) Require(names ...string) *shapeBuilder {
	for _, n := range names {
		i, ok := b.index[n]
		if !ok {
			b.unmarked = append(b.unmarked, n)
			continue
		}
		b.fields[i].Required = true
	}
	return b
}

// ReadonlyFields marks one or more fields as readonly.
func (b *shapeBuilder) ReadonlyFields(names ...string) *shapeBuilder {
	for _, n := range names {
		i, ok := b.index[n]
		if !ok {
			b.unmarked = append(b.unmarked, n)
			continue
		}
		b.fields[i].Readonly = true
	}
	return b
}

// UnknownStrict reports keys the shape does not declare.
func (b *shapeBuilder) UnknownStrict() *shapeBuilder {
	b.unknown = goshape.UnknownStrict
	return b
}

// UnknownStrip drops keys the shape does not declare.
func (b *shapeBuilder) UnknownStrip() *shapeBuilder {
	b.unknown = goshape.UnknownStrip
	return b
}

// Build validates the declaration and returns the shape.
func (b *shapeBuilder) Build() (*goshape.Shape, error) {
	if b.dup != "" {
		return nil, &goshape.DuplicateFieldError{Shape: b.name, Field: b.dup}
	}
	if len(b.unmarked) > 0 {
		return nil, &goshape.UnknownFieldError{Shape: b.name, Fields: append([]string(nil), b.unmarked...)}
	}
	s, err := goshape.NewShape(b.name, b.fields...)
	if err != nil {
		return nil, err
	}
	return s.WithUnknown(b.unknown), nil
}

// MustBuild is like Build but panics on error.
func (b *shapeBuilder) MustBuild() *goshape.Shape {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
