package dsl

import goshape "github.com/reoring/goshape"

// Variant pairs tag with shape for Registry.
func Variant(tag goshape.Tag, s *goshape.Shape) goshape.Variant {
	return goshape.Variant{Tag: tag, Shape: s}
}

// Registry registers variants in order.
func Registry(vs ...goshape.Variant) (*goshape.Registry, error) { return goshape.NewRegistry(vs...) }

// MustRegistry is like Registry but panics on error.
func MustRegistry(vs ...goshape.Variant) *goshape.Registry {
	r, err := goshape.NewRegistry(vs...)
	if err != nil {
		panic(err)
	}
	return r
}
