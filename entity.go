package goshape

import (
	"maps"

	j "github.com/goccy/go-json"
)

// Entity is a validated instance of exactly one variant. Entities are values:
// Container.Update returns a new Entity and leaves the old one intact.
type Entity struct {
	id       string
	tag      Tag
	shape    *Shape
	revision int
	fields   map[string]any
}

func (e Entity) ID() string { return e.id }

func (e Entity) Tag() Tag { return e.tag }

func (e Entity) Shape() *Shape { return e.shape }

// Revision starts at 1 and grows by one on every update.
func (e Entity) Revision() int { return e.revision }

// Fields returns a copy of the present field values.
func (e Entity) Fields() map[string]any { return maps.Clone(e.fields) }

// IsZero reports whether e was never created by a Container.
func (e Entity) IsZero() bool { return e.shape == nil }

type entityWire struct {
	ID       string         `json:"id"`
	Tag      Tag            `json:"tag"`
	Revision int            `json:"revision"`
	Fields   map[string]any `json:"fields"`
}

// MarshalJSON renders the entity with its identity and fields.
func (e Entity) MarshalJSON() ([]byte, error) {
	fields := e.fields
	if fields == nil {
		fields = map[string]any{}
	}
	return j.Marshal(entityWire{ID: e.id, Tag: e.tag, Revision: e.revision, Fields: fields})
}
