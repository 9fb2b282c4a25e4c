package dsl_test

import (
	"errors"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestPredicates(t *testing.T) {
	v := map[string]any{"kind": "admin", "name": "A", "permission": nil}

	cases := []struct {
		name string
		m    g.Match
		want bool
	}{
		{"has present", g.Has("name"), true},
		{"has nil counts as absent", g.Has("permission"), false},
		{"has all", g.Has("kind", "name"), true},
		{"equals", g.Equals("kind", "admin"), true},
		{"equals other", g.Equals("kind", "user"), false},
		{"not", g.Not(g.Has("permission")), true},
		{"all", g.All(g.Has("name"), g.Equals("kind", "admin")), true},
		{"all fails", g.All(g.Has("name"), g.Has("permission")), false},
		{"anyof", g.AnyOf(g.Has("permission"), g.Has("name")), true},
		{"anyof none", g.AnyOf(), false},
		{"conforms", g.Conforms(g.Shape("n").Field("name", g.String()).Required().MustBuild()), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m(v); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestDiscriminator_WithRegistry(t *testing.T) {
	circle := g.Shape("circle").Field("kind", g.String()).Field("radius", g.Number()).Required().MustBuild()
	square := g.Shape("square").Field("kind", g.String()).Field("side", g.Number()).Required().MustBuild()
	reg := g.MustRegistry(g.Variant("circle", circle), g.Variant("square", square))

	c := goshape.NewContainer[map[string]any](reg)
	in := map[string]any{"kind": "circle", "radius": 2.0}
	tag, err := goshape.Classify(in, goshape.Strict, g.Discriminator("kind", reg.Tags()...)...)
	if err != nil {
		t.Fatal(err)
	}
	e, err := c.Create(tag, in)
	if err != nil || e.Tag() != "circle" {
		t.Fatalf("create: %v", err)
	}

	_, err = goshape.Classify(map[string]any{"kind": "hexagon"}, goshape.Strict, g.Discriminator("kind", reg.Tags()...)...)
	var nm *goshape.NoMatchingVariantError
	if !errors.As(err, &nm) {
		t.Fatalf("expected NoMatchingVariantError, got %v", err)
	}
}

func TestMustRegistryPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	s := g.Shape("a").MustBuild()
	g.MustRegistry(g.Variant("a", s), g.Variant("a", s))
}
