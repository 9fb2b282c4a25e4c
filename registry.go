package goshape

import (
	"slices"

	js "github.com/reoring/goshape/jsonschema"
)

// Variant pairs a tag with the shape its values conform to.
type Variant struct {
	Tag   Tag
	Shape *Shape
}

// Registry maps tags to shapes. It is fixed at construction and safe to share
// between containers.
type Registry struct {
	order  []Tag
	shapes map[Tag]*Shape
}

// NewRegistry registers variants in order. Tags must be unique and every
// variant needs a shape.
func NewRegistry(variants ...Variant) (*Registry, error) {
	r := &Registry{order: make([]Tag, 0, len(variants)), shapes: make(map[Tag]*Shape, len(variants))}
	for _, v := range variants {
		if v.Shape == nil {
			return nil, &MissingShapeError{Tag: v.Tag}
		}
		if _, dup := r.shapes[v.Tag]; dup {
			return nil, &DuplicateVariantError{Tag: v.Tag}
		}
		r.order = append(r.order, v.Tag)
		r.shapes[v.Tag] = v.Shape
	}
	return r, nil
}

// Tags returns registered tags in registration order.
func (r *Registry) Tags() []Tag { return slices.Clone(r.order) }

// Shape returns the shape registered for tag.
func (r *Registry) Shape(tag Tag) (*Shape, bool) {
	s, ok := r.shapes[tag]
	return s, ok
}

// Variants returns the registered variants in order.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, len(r.order))
	for i, t := range r.order {
		out[i] = Variant{Tag: t, Shape: r.shapes[t]}
	}
	return out
}

// Predicates returns one conformance predicate per variant in registration
// order: a field set matches a variant when it validates against its shape.
func (r *Registry) Predicates() []Predicate[map[string]any] {
	out := make([]Predicate[map[string]any], len(r.order))
	for i, t := range r.order {
		out[i] = When(t, r.shapes[t].Conforms)
	}
	return out
}

// Classifier builds a classifier over Predicates.
func (r *Registry) Classifier(mode Mode) *Classifier[map[string]any] {
	return NewClassifier(mode, r.Predicates()...)
}

// JSONSchema projects the registry as a oneOf over its variants.
func (r *Registry) JSONSchema() *js.Schema {
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(r.order))}
	for _, t := range r.order {
		s := r.shapes[t].JSONSchema()
		s.Title = string(t)
		out.OneOf = append(out.OneOf, s)
	}
	return out
}
