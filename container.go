package goshape

import (
	"bytes"
	"fmt"
	"maps"

	j "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type containerConfig struct {
	mode  Mode
	newID func() string
}

// ContainerOption configures a Container.
type ContainerOption func(*containerConfig)

// WithMode sets the classification mode used by Adopt. Default FirstMatch.
func WithMode(m Mode) ContainerOption { return func(c *containerConfig) { c.mode = m } }

// WithIDGenerator replaces the default random UUID entity IDs.
func WithIDGenerator(fn func() string) ContainerOption {
	return func(c *containerConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Container creates, reads and updates entities against a registry. P is the
// typed payload that entity fields project into through Payload.
//
// Field values are copied shallowly: slices and maps passed to Create or
// Update must not be mutated by the caller afterwards.
type Container[P any] struct {
	reg        *Registry
	cfg        containerConfig
	classifier *Classifier[map[string]any]
}

// NewContainer binds a container to reg. A nil reg behaves as a registry with
// no variants.
func NewContainer[P any](reg *Registry, opts ...ContainerOption) *Container[P] {
	if reg == nil {
		reg, _ = NewRegistry()
	}
	cfg := containerConfig{mode: FirstMatch, newID: uuid.NewString}
	for _, o := range opts {
		o(&cfg)
	}
	return &Container[P]{reg: reg, cfg: cfg, classifier: reg.Classifier(cfg.mode)}
}

func (c *Container[P]) Registry() *Registry { return c.reg }

// Create validates fields against the shape registered for tag and returns a
// new entity. Keys the shape does not declare are dropped unless the shape is
// UnknownStrict, in which case they are reported with the other issues.
func (c *Container[P]) Create(tag Tag, fields map[string]any) (Entity, error) {
	s, ok := c.reg.Shape(tag)
	if !ok {
		return Entity{}, &UnknownVariantError{Tag: tag}
	}
	if err := s.Validate(fields); err != nil {
		return Entity{}, err
	}
	return Entity{id: c.cfg.newID(), tag: tag, shape: s, revision: 1, fields: s.project(fields)}, nil
}

// Adopt classifies fields against the registry and creates an entity of the
// chosen variant.
func (c *Container[P]) Adopt(fields map[string]any) (Entity, error) {
	tag, err := c.classifier.Classify(fields)
	if err != nil {
		return Entity{}, err
	}
	return c.Create(tag, fields)
}

// Read returns the value of name, or None when the variant declares the field
// but the entity does not carry it.
func (c *Container[P]) Read(e Entity, name string) (Opt[any], error) {
	if e.shape == nil || !e.shape.Has(name) {
		return None[any](), &FieldNotInVariantError{Tag: e.tag, Field: name}
	}
	v, ok := e.fields[name]
	if !ok {
		return None[any](), nil
	}
	return Some(v), nil
}

// Update returns a copy of e with name set to v. A nil v clears an optional
// field. The original entity is not modified.
func (c *Container[P]) Update(e Entity, name string, v any) (Entity, error) {
	if e.shape == nil {
		return Entity{}, &FieldNotInVariantError{Tag: e.tag, Field: name}
	}
	f, ok := e.shape.Field(name)
	if !ok {
		return Entity{}, &FieldNotInVariantError{Tag: e.tag, Field: name}
	}
	if f.Readonly {
		return Entity{}, &ReadonlyFieldError{Tag: e.tag, Field: name}
	}
	if iss, ok := checkField(f, map[string]any{name: v}); !ok {
		return Entity{}, &ShapeValidationError{Shape: e.shape.Name(), Issues: Issues{iss}}
	}
	next := e
	next.fields = maps.Clone(e.fields)
	if next.fields == nil {
		next.fields = map[string]any{}
	}
	if v == nil {
		delete(next.fields, name)
	} else {
		next.fields[name] = v
	}
	next.revision++
	return next, nil
}

// Payload projects the entity's fields into P by JSON round trip, honouring
// P's json tags.
func (c *Container[P]) Payload(e Entity) (P, error) {
	var out P
	b, err := j.Marshal(e.fields)
	if err != nil {
		return out, fmt.Errorf("goshape: encode %s fields: %w", e.tag, err)
	}
	if err := j.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("goshape: decode %s payload: %w", e.tag, err)
	}
	return out, nil
}

// FromPayload encodes p to fields and creates an entity of variant tag.
// Numbers arrive as json.Number.
func (c *Container[P]) FromPayload(tag Tag, p P) (Entity, error) {
	b, err := j.Marshal(p)
	if err != nil {
		return Entity{}, fmt.Errorf("goshape: encode payload: %w", err)
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return Entity{}, fmt.Errorf("goshape: payload is not an object: %w", err)
	}
	return c.Create(tag, fields)
}
