package goshape

import (
	"slices"
	"sort"

	js "github.com/reoring/goshape/jsonschema"
)

// Shape is an immutable, ordered set of uniquely named fields. Every transform
// returns a new Shape and leaves the receiver untouched.
type Shape struct {
	name    string
	fields  []Field
	index   map[string]int
	unknown UnknownPolicy
}

// NewShape builds a shape from fields in declaration order. Field names must be
// unique.
func NewShape(name string, fields ...Field) (*Shape, error) {
	s := &Shape{name: name, fields: make([]Field, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			return nil, &DuplicateFieldError{Shape: name, Field: f.Name}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustShape is like NewShape but panics on error. Intended for package-level
// declarations.
func MustShape(name string, fields ...Field) *Shape {
	s, err := NewShape(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// derive copies the receiver's settings onto a new field list that is already
// known to be unique.
func (s *Shape) derive(name string, fields []Field) *Shape {
	out := &Shape{name: name, fields: fields, index: make(map[string]int, len(fields)), unknown: s.unknown}
	for i, f := range fields {
		out.index[f.Name] = i
	}
	return out
}

func (s *Shape) Name() string { return s.name }

// Unknown returns the unknown-key policy.
func (s *Shape) Unknown() UnknownPolicy { return s.unknown }

// WithUnknown returns a copy using the given unknown-key policy.
func (s *Shape) WithUnknown(p UnknownPolicy) *Shape {
	out := s.derive(s.name, slices.Clone(s.fields))
	out.unknown = p
	return out
}

// Renamed returns a copy with another name.
func (s *Shape) Renamed(name string) *Shape { return s.derive(name, slices.Clone(s.fields)) }

// Fields returns a copy of the fields in declaration order.
func (s *Shape) Fields() []Field { return slices.Clone(s.fields) }

// Names returns field names in declaration order.
func (s *Shape) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Field looks up a field by name.
func (s *Shape) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the shape declares name.
func (s *Shape) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Shape) Len() int { return len(s.fields) }

// Partial makes every field optional.
func (s *Shape) Partial() *Shape {
	fs := slices.Clone(s.fields)
	for i := range fs {
		fs[i].Required = false
	}
	return s.derive("Partial<"+s.name+">", fs)
}

// Required makes every field mandatory.
func (s *Shape) Required() *Shape {
	fs := slices.Clone(s.fields)
	for i := range fs {
		fs[i].Required = true
	}
	return s.derive("Required<"+s.name+">", fs)
}

// Readonly marks every field readonly.
func (s *Shape) Readonly() *Shape {
	fs := slices.Clone(s.fields)
	for i := range fs {
		fs[i].Readonly = true
	}
	return s.derive("Readonly<"+s.name+">", fs)
}

// Pick keeps only the named fields, in declaration order. Every name must
// exist; all unknown names are reported together.
func (s *Shape) Pick(names ...string) (*Shape, error) {
	want := make(map[string]struct{}, len(names))
	var unknown []string
	for _, n := range names {
		if !s.Has(n) {
			if !slices.Contains(unknown, n) {
				unknown = append(unknown, n)
			}
			continue
		}
		want[n] = struct{}{}
	}
	if len(unknown) > 0 {
		return nil, &UnknownFieldError{Shape: s.name, Fields: unknown}
	}
	fs := make([]Field, 0, len(want))
	for _, f := range s.fields {
		if _, ok := want[f.Name]; ok {
			fs = append(fs, f)
		}
	}
	return s.derive("Pick<"+s.name+">", fs), nil
}

// Omit drops the named fields. Names the shape does not declare are ignored.
func (s *Shape) Omit(names ...string) *Shape {
	fs := make([]Field, 0, len(s.fields))
	for _, f := range s.fields {
		if !slices.Contains(names, f.Name) {
			fs = append(fs, f)
		}
	}
	return s.derive("Omit<"+s.name+">", fs)
}

// Extend merges the receiver with others into a shape called name. Fields keep
// first-declaration order. A field declared on both sides must have equal
// types; it is required or readonly when either side says so. The
// unknown-key policy is the strictest among the inputs. Nil shapes are
// skipped.
func (s *Shape) Extend(name string, others ...*Shape) (*Shape, error) {
	fs := slices.Clone(s.fields)
	out := s.derive(name, fs)
	for _, o := range others {
		if o == nil {
			continue
		}
		if o.unknown > out.unknown {
			out.unknown = o.unknown
		}
		for _, f := range o.fields {
			i, ok := out.index[f.Name]
			if !ok {
				out.index[f.Name] = len(out.fields)
				out.fields = append(out.fields, f)
				continue
			}
			cur := out.fields[i]
			if !cur.Type.Equal(f.Type) {
				return nil, &FieldConflictError{Field: f.Name, Left: cur.Type, Right: f.Type}
			}
			cur.Required = cur.Required || f.Required
			cur.Readonly = cur.Readonly || f.Readonly
			out.fields[i] = cur
		}
	}
	return out, nil
}

// Validate checks fields against the shape and reports every violation at
// once. A nil value counts as absent.
func (s *Shape) Validate(fields map[string]any) error {
	iss := s.check(fields)
	if len(iss) == 0 {
		return nil
	}
	return &ShapeValidationError{Shape: s.name, Issues: iss}
}

// Conforms reports whether fields validate without issues.
func (s *Shape) Conforms(fields map[string]any) bool { return len(s.check(fields)) == 0 }

func (s *Shape) check(fields map[string]any) Issues {
	var iss Issues
	for _, f := range s.fields {
		if i, ok := checkField(f, fields); !ok {
			iss = AppendIssues(iss, i)
		}
	}
	if s.unknown == UnknownStrict {
		// unknown keys in key-sorted order
		uks := make([]string, 0)
		for k := range fields {
			if !s.Has(k) {
				uks = append(uks, k)
			}
		}
		sort.Strings(uks)
		for _, k := range uks {
			iss = AppendIssues(iss, fieldIssue(k, CodeUnknownKey, "", nil))
		}
	}
	return iss
}

func checkField(f Field, fields map[string]any) (Issue, bool) {
	v, present := fields[f.Name]
	if !present || v == nil {
		if f.Required {
			return fieldIssue(f.Name, CodeRequired, "required field missing", nil), false
		}
		return Issue{}, true
	}
	if f.Type.Check(v) {
		return Issue{}, true
	}
	params := map[string]any{"expected": f.Type.String()}
	if f.Type.Kind == KindEnum {
		if _, isStr := v.(string); isStr {
			params["allowed"] = slices.Clone(f.Type.Values)
			return fieldIssue(f.Name, CodeInvalidEnum, "expected one of "+f.Type.String(), params), false
		}
	}
	return fieldIssue(f.Name, CodeInvalidType, "expected "+f.Type.String(), params), false
}

// project keeps only declared, non-nil fields.
func (s *Shape) project(fields map[string]any) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if v, ok := fields[f.Name]; ok && v != nil {
			out[f.Name] = v
		}
	}
	return out
}

// JSONSchema projects the shape into a JSON Schema object.
func (s *Shape) JSONSchema() *js.Schema {
	out := &js.Schema{Title: s.name, Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
	for _, f := range s.fields {
		p := typeSchema(f.Type)
		p.ReadOnly = f.Readonly
		out.Properties[f.Name] = p
		if f.Required {
			out.Required = append(out.Required, f.Name)
		}
	}
	if s.unknown == UnknownStrict {
		out.AdditionalProperties = false
	}
	return out
}

func typeSchema(t Type) *js.Schema {
	switch t.Kind {
	case KindString:
		return &js.Schema{Type: "string"}
	case KindNumber:
		return &js.Schema{Type: "number"}
	case KindInteger:
		return &js.Schema{Type: "integer"}
	case KindBool:
		return &js.Schema{Type: "boolean"}
	case KindList:
		return &js.Schema{Type: "array", Items: typeSchema(t.elem())}
	case KindEnum:
		vals := make([]any, len(t.Values))
		for i, v := range t.Values {
			vals[i] = v
		}
		return &js.Schema{Type: "string", Enum: vals}
	}
	return &js.Schema{}
}
