package goshape_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func userShape() *goshape.Shape {
	return g.Shape("user").
		Field("id", g.Integer()).Required().Readonly().
		Field("name", g.String()).Required().
		Field("email", g.String()).
		MustBuild()
}

type nameType struct {
	Name string
	Type goshape.Type
}

func namesAndTypes(s *goshape.Shape) []nameType {
	var out []nameType
	for _, f := range s.Fields() {
		out = append(out, nameType{f.Name, f.Type})
	}
	return out
}

func TestShape_DuplicateFieldRejected(t *testing.T) {
	_, err := goshape.NewShape("x",
		goshape.Field{Name: "a", Type: g.String()},
		goshape.Field{Name: "a", Type: g.Bool()},
	)
	var dup *goshape.DuplicateFieldError
	if !errors.As(err, &dup) || dup.Field != "a" {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}

	_, err = g.Shape("x").Field("a", g.String()).Field("a", g.Bool()).Build()
	if !errors.As(err, &dup) {
		t.Fatalf("builder should reject duplicates, got %v", err)
	}
}

func TestShape_PartialThenRequired_KeepsNamesAndTypes(t *testing.T) {
	s := userShape()
	rt := s.Partial().Required()

	if diff := cmp.Diff(namesAndTypes(s), namesAndTypes(rt)); diff != "" {
		t.Fatalf("names/types changed (-want +got):\n%s", diff)
	}
	for _, f := range rt.Fields() {
		if !f.Required {
			t.Fatalf("field %s should be required", f.Name)
		}
	}
	// optionality is not restored: email was optional in s
	if f, _ := s.Field("email"); f.Required {
		t.Fatalf("receiver must not change")
	}
}

func TestShape_Partial_AcceptsEmpty(t *testing.T) {
	if err := userShape().Partial().Validate(map[string]any{}); err != nil {
		t.Fatalf("partial shape should accept empty value: %v", err)
	}
}

func TestShape_Required_RejectsAbsentAndNil(t *testing.T) {
	req := userShape().Required()
	err := req.Validate(map[string]any{"id": 1, "name": "A", "email": nil})
	iss, ok := goshape.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/email" || iss[0].Code != goshape.CodeRequired {
		t.Fatalf("expected required at /email, got %v", err)
	}
}

func TestShape_Pick(t *testing.T) {
	s := userShape()
	p, err := s.Pick("email", "id")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// declaration order, original optionality
	if diff := cmp.Diff([]string{"id", "email"}, p.Names()); diff != "" {
		t.Fatalf("pick order (-want +got):\n%s", diff)
	}
	if f, _ := p.Field("email"); f.Required {
		t.Fatalf("email should stay optional")
	}
	if f, _ := p.Field("id"); !f.Required || !f.Readonly {
		t.Fatalf("id should keep required/readonly")
	}

	_, err = s.Pick("id", "phone", "fax", "phone")
	var uf *goshape.UnknownFieldError
	if !errors.As(err, &uf) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	if diff := cmp.Diff([]string{"phone", "fax"}, uf.Fields); diff != "" {
		t.Fatalf("unknown fields (-want +got):\n%s", diff)
	}
}

func TestShape_Omit_IgnoresUnknown(t *testing.T) {
	o := userShape().Omit("email", "does_not_exist")
	if diff := cmp.Diff([]string{"id", "name"}, o.Names()); diff != "" {
		t.Fatalf("omit (-want +got):\n%s", diff)
	}
}

func TestShape_PickPlusOmitComplement_Reconstructs(t *testing.T) {
	s := userShape()
	subsets := [][]string{{}, {"id"}, {"name", "email"}, {"id", "name", "email"}}
	for _, sub := range subsets {
		picked, err := s.Pick(sub...)
		if err != nil {
			t.Fatalf("pick %v: %v", sub, err)
		}
		rest := s.Omit(sub...)
		back, err := picked.Extend("user", rest)
		if err != nil {
			t.Fatalf("extend: %v", err)
		}
		want := map[string]goshape.Field{}
		for _, f := range s.Fields() {
			want[f.Name] = f
		}
		got := map[string]goshape.Field{}
		for _, f := range back.Fields() {
			got[f.Name] = f
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("subset %v did not reconstruct (-want +got):\n%s", sub, diff)
		}
	}
}

func TestShape_Readonly(t *testing.T) {
	for _, f := range userShape().Readonly().Fields() {
		if !f.Readonly {
			t.Fatalf("field %s should be readonly", f.Name)
		}
	}
}

func TestShape_Extend_MergesAndConflicts(t *testing.T) {
	base := g.Shape("named").Field("name", g.String()).MustBuild()
	perm := g.Shape("perm").
		Field("name", g.String()).Required().
		Field("permission", g.List(g.String())).
		MustBuild()

	u, err := base.Extend("user", perm)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "permission"}, u.Names()); diff != "" {
		t.Fatalf("extend order (-want +got):\n%s", diff)
	}
	if f, _ := u.Field("name"); !f.Required {
		t.Fatalf("required on either side should win")
	}

	bad := g.Shape("bad").Field("name", g.Bool()).MustBuild()
	_, err = base.Extend("x", bad)
	var fc *goshape.FieldConflictError
	if !errors.As(err, &fc) || fc.Field != "name" {
		t.Fatalf("expected FieldConflictError, got %v", err)
	}
}

func TestShape_Extend_SkipsNilShapes(t *testing.T) {
	base := g.Shape("named").Field("name", g.String()).MustBuild()
	perm := g.Shape("perm").Field("permission", g.List(g.String())).MustBuild()
	u, err := base.Extend("user", nil, perm, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "permission"}, u.Names()); diff != "" {
		t.Fatalf("extend order (-want +got):\n%s", diff)
	}
}

func TestShape_Validate_CollectsEveryIssue(t *testing.T) {
	s := g.Shape("user").
		Field("id", g.Integer()).Required().
		Field("name", g.String()).Required().
		Field("role", g.Enum("viewer", "editor")).
		Field("tags", g.List(g.String())).
		UnknownStrict().
		MustBuild()

	err := s.Validate(map[string]any{
		"id":    1.5,
		"role":  "owner",
		"tags":  []any{"a", 3},
		"extra": true,
	})
	var sv *goshape.ShapeValidationError
	if !errors.As(err, &sv) {
		t.Fatalf("expected ShapeValidationError, got %v", err)
	}
	type pc struct{ Path, Code string }
	var got []pc
	for _, it := range sv.Issues {
		got = append(got, pc{it.Path, it.Code})
	}
	want := []pc{
		{"/id", goshape.CodeInvalidType},
		{"/name", goshape.CodeRequired},
		{"/role", goshape.CodeInvalidEnum},
		{"/tags", goshape.CodeInvalidType},
		{"/extra", goshape.CodeUnknownKey},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues (-want +got):\n%s", diff)
	}
	if sv.Issues[0].Message == "" {
		t.Fatalf("issue message should be filled from i18n")
	}
}

func TestType_Check(t *testing.T) {
	cases := []struct {
		name string
		typ  goshape.Type
		v    any
		want bool
	}{
		{"int is integer", g.Integer(), 3, true},
		{"integral float is integer", g.Integer(), 3.0, true},
		{"fraction is not integer", g.Integer(), 3.5, false},
		{"json number integer", g.Integer(), json.Number("42"), true},
		{"json number fraction", g.Number(), json.Number("4.2"), true},
		{"uint is number", g.Number(), uint8(7), true},
		{"string is not number", g.Number(), "7", false},
		{"bool", g.Bool(), false, true},
		{"typed slice", g.List(g.String()), []string{"a"}, true},
		{"empty list", g.List(g.Integer()), []any{}, true},
		{"mixed list", g.List(g.Integer()), []any{1, "x"}, false},
		{"any rejects nil", g.Any(), nil, false},
		{"any accepts map", g.Any(), map[string]any{}, true},
		{"enum member", g.Enum("a", "b"), "b", true},
		{"enum non-string", g.Enum("a"), 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.Check(tc.v); got != tc.want {
				t.Fatalf("Check(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestShape_JSONSchema(t *testing.T) {
	js := userShape().WithUnknown(goshape.UnknownStrict).JSONSchema()
	if js.Type != "object" || len(js.Properties) != 3 {
		t.Fatalf("unexpected schema: %#v", js)
	}
	if diff := cmp.Diff([]string{"id", "name"}, js.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
	if !js.Properties["id"].ReadOnly || js.Properties["id"].Type != "integer" {
		t.Fatalf("id property: %#v", js.Properties["id"])
	}
	if js.AdditionalProperties != false {
		t.Fatalf("strict shapes should forbid additional properties")
	}
}
