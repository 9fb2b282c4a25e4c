package dsl

import (
	"reflect"

	goshape "github.com/reoring/goshape"
)

// Match reports whether a dynamic field set belongs to some variant.
type Match = func(map[string]any) bool

// Has matches field sets that carry every named key with a non-nil value.
// It is the presence-of-field discriminant:
//
//	isUser := dsl.Has("permission")
func Has(names ...string) Match {
	return func(m map[string]any) bool {
		for _, n := range names {
			if v, ok := m[n]; !ok || v == nil {
				return false
			}
		}
		return true
	}
}

// Equals matches field sets whose field equals want.
func Equals(field string, want any) Match {
	return func(m map[string]any) bool {
		v, ok := m[field]
		return ok && reflect.DeepEqual(v, want)
	}
}

// Conforms matches field sets that validate against s.
func Conforms(s *goshape.Shape) Match { return s.Conforms }

func Not(m Match) Match { return func(v map[string]any) bool { return !m(v) } }

// All matches when every matcher does.
func All(ms ...Match) Match {
	return func(v map[string]any) bool {
		for _, m := range ms {
			if !m(v) {
				return false
			}
		}
		return true
	}
}

// AnyOf matches when at least one matcher does.
func AnyOf(ms ...Match) Match {
	return func(v map[string]any) bool {
		for _, m := range ms {
			if m(v) {
				return true
			}
		}
		return false
	}
}

// Discriminator builds one predicate per tag, matching field sets whose field
// holds the tag's string value.
func Discriminator(field string, tags ...goshape.Tag) []goshape.Predicate[map[string]any] {
	out := make([]goshape.Predicate[map[string]any], len(tags))
	for i, t := range tags {
		out[i] = goshape.When(t, Equals(field, string(t)))
	}
	return out
}
