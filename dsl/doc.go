// Package dsl provides a fluent builder DSL for goshape.
//
// Overview
//   - Builder API: declare shapes with Shape(name).Field(...).Required().Readonly() and Build()/MustBuild().
//   - Types: String()/Number()/Integer()/Bool()/Any(), List(elem) and Enum(values...).
//   - Predicates: Has (presence-of-field discriminant), Equals, Conforms, Not/All/AnyOf,
//     and Discriminator(field, tags...) for kind-style tagged unions.
//   - Registry: Variant(tag, shape) and Registry/MustRegistry.
//
// File layout (roles)
//   - shape_builder.go: shapeBuilder/fieldStep and Build/MustBuild.
//   - types.go: semantic type constructors.
//   - predicates.go: matchers over dynamic field sets.
//   - registry.go: variant and registry helpers.
//
// Example (quickstart)
//
//	user := g.Shape("user").
//	    Field("name", g.String()).Required().
//	    Field("permission", g.List(g.String())).Required().
//	    MustBuild()
//	admin := g.Shape("admin").
//	    Field("name", g.String()).Required().
//	    MustBuild()
//
//	reg := g.MustRegistry(g.Variant("admin", admin), g.Variant("user", user))
//	tag, err := goshape.Classify(input, goshape.Strict,
//	    goshape.When("admin", g.Conforms(admin)),
//	    goshape.When("user", g.Has("permission")),
//	)
//
// Builder notes
//   - Unknown keys are stripped unless UnknownStrict() is set.
//   - Declaring a field twice, or requiring an undeclared field, fails at Build.
package dsl
