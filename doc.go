// Package goshape provides:
//
// - Immutable record Shapes with Partial/Required/Pick/Omit/Readonly/Extend transforms
// - Ordered, optionally strict variant classification and a one-way narrowing Guard
// - Closed unions (Union2..Union4) whose Match helpers are exhaustive at compile time
// - A generic keyed Store with explicit absence (Opt)
// - An entity Container that validates, reads and updates immutable entities
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep the core pure and in-memory; no locking, no I/O.
// - Place builders under dsl/, input decoding under source/, registry files
//   under manifest/, and the CLI under cmd/goshape.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := goshape.MustShape("user",
//	    goshape.Field{Name: "id", Type: goshape.Type{Kind: goshape.KindInteger}, Required: true, Readonly: true},
//	    goshape.Field{Name: "name", Type: goshape.Type{Kind: goshape.KindString}, Required: true},
//	    goshape.Field{Name: "email", Type: goshape.Type{Kind: goshape.KindString}},
//	)
//	reg, _ := goshape.NewRegistry(goshape.Variant{Tag: "user", Shape: user})
//	c := goshape.NewContainer[User](reg)
//	e, err := c.Create("user", map[string]any{"id": 1, "name": "A"})
//	email, err := c.Read(e, "email") // None
//	_, err = c.Update(e, "id", 2)    // *ReadonlyFieldError
package goshape
