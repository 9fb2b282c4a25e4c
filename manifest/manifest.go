// Package manifest loads a goshape Registry from a YAML or JSON document.
//
//	mode: strict
//	variants:
//	  - tag: user
//	    unknown: strip
//	    fields:
//	      - {name: id, type: integer, required: true, readonly: true}
//	      - {name: permission, type: list, elem: string}
//	  - tag: user_patch
//	    derive: {from: user, op: partial}
//
// Derived variants may only refer to variants declared earlier in the list.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/source"
)

// Document is the decoded manifest.
type Document struct {
	Mode     string       `yaml:"mode" json:"mode"`
	Variants []VariantDef `yaml:"variants" json:"variants"`
}

// VariantDef declares one variant either by fields or by deriving from an
// earlier one.
type VariantDef struct {
	Tag     string     `yaml:"tag" json:"tag"`
	Unknown string     `yaml:"unknown" json:"unknown"`
	Fields  []FieldDef `yaml:"fields" json:"fields"`
	Derive  *DeriveDef `yaml:"derive" json:"derive"`
}

// FieldDef declares one field. Elem is the element type name for lists and
// Values the allowed strings for enums.
type FieldDef struct {
	Name     string   `yaml:"name" json:"name"`
	Type     string   `yaml:"type" json:"type"`
	Elem     string   `yaml:"elem" json:"elem"`
	Values   []string `yaml:"values" json:"values"`
	Required bool     `yaml:"required" json:"required"`
	Readonly bool     `yaml:"readonly" json:"readonly"`
}

// DeriveDef applies one shape transform to the variant named From. With
// "extend", Fields lists the other variants to merge in; with "pick" and
// "omit" it lists field names.
type DeriveDef struct {
	From   string   `yaml:"from" json:"from"`
	Op     string   `yaml:"op" json:"op"`
	Fields []string `yaml:"fields" json:"fields"`
}

// Manifest is a loaded registry with its classification mode.
type Manifest struct {
	Mode     goshape.Mode
	Registry *goshape.Registry
}

// Load reads path and picks the format from its extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(data, source.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and builds a manifest.
func Parse(data []byte, format source.Format) (*Manifest, error) {
	var doc Document
	if format == source.FormatYAML {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("manifest: decode yaml: %w", err)
		}
	} else {
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("manifest: decode json: %w", err)
		}
	}
	return Build(doc)
}

// Build turns a decoded document into a registry.
func Build(doc Document) (*Manifest, error) {
	mode, ok := goshape.ParseMode(doc.Mode)
	if !ok {
		return nil, fmt.Errorf("manifest: unknown mode %q", doc.Mode)
	}
	built := map[string]*goshape.Shape{}
	variants := make([]goshape.Variant, 0, len(doc.Variants))
	for i, vd := range doc.Variants {
		if vd.Tag == "" {
			return nil, fmt.Errorf("manifest: variant #%d has no tag", i)
		}
		s, err := buildVariant(vd, built)
		if err != nil {
			return nil, fmt.Errorf("manifest: variant %q: %w", vd.Tag, err)
		}
		built[vd.Tag] = s
		variants = append(variants, goshape.Variant{Tag: goshape.Tag(vd.Tag), Shape: s})
	}
	reg, err := goshape.NewRegistry(variants...)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &Manifest{Mode: mode, Registry: reg}, nil
}

func buildVariant(vd VariantDef, built map[string]*goshape.Shape) (*goshape.Shape, error) {
	var s *goshape.Shape
	var err error
	switch {
	case vd.Derive != nil && len(vd.Fields) > 0:
		return nil, fmt.Errorf("fields and derive are mutually exclusive")
	case vd.Derive != nil:
		s, err = derive(vd.Tag, *vd.Derive, built)
	default:
		s, err = declare(vd.Tag, vd.Fields)
	}
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(vd.Unknown) {
	case "":
	case "strip":
		s = s.WithUnknown(goshape.UnknownStrip)
	case "strict":
		s = s.WithUnknown(goshape.UnknownStrict)
	default:
		return nil, fmt.Errorf("unknown policy %q", vd.Unknown)
	}
	return s, nil
}

func declare(tag string, defs []FieldDef) (*goshape.Shape, error) {
	fields := make([]goshape.Field, 0, len(defs))
	for _, fd := range defs {
		t, err := parseType(fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields = append(fields, goshape.Field{Name: fd.Name, Type: t, Required: fd.Required, Readonly: fd.Readonly})
	}
	return goshape.NewShape(tag, fields...)
}

func parseType(fd FieldDef) (goshape.Type, error) {
	k, ok := goshape.ParseKind(fd.Type)
	if fd.Type == "" {
		k, ok = goshape.KindAny, true
	}
	if !ok {
		return goshape.Type{}, fmt.Errorf("unknown type %q", fd.Type)
	}
	t := goshape.Type{Kind: k}
	switch k {
	case goshape.KindList:
		if fd.Elem != "" {
			et, err := parseType(FieldDef{Type: fd.Elem})
			if err != nil {
				return goshape.Type{}, err
			}
			t.Elem = &et
		}
	case goshape.KindEnum:
		if len(fd.Values) == 0 {
			return goshape.Type{}, fmt.Errorf("enum without values")
		}
		t.Values = append([]string(nil), fd.Values...)
	}
	return t, nil
}

func derive(tag string, dd DeriveDef, built map[string]*goshape.Shape) (*goshape.Shape, error) {
	base, ok := built[dd.From]
	if !ok {
		return nil, fmt.Errorf("derive from undeclared variant %q", dd.From)
	}
	var out *goshape.Shape
	switch strings.ToLower(dd.Op) {
	case "partial":
		out = base.Partial()
	case "required":
		out = base.Required()
	case "readonly":
		out = base.Readonly()
	case "omit":
		out = base.Omit(dd.Fields...)
	case "pick":
		s, err := base.Pick(dd.Fields...)
		if err != nil {
			return nil, err
		}
		out = s
	case "extend":
		others := make([]*goshape.Shape, 0, len(dd.Fields))
		for _, name := range dd.Fields {
			o, ok := built[name]
			if !ok {
				return nil, fmt.Errorf("extend with undeclared variant %q", name)
			}
			others = append(others, o)
		}
		return base.Extend(tag, others...)
	default:
		return nil, fmt.Errorf("unknown derive op %q", dd.Op)
	}
	return out.Renamed(tag), nil
}
