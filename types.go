package goshape

import (
	"encoding/json"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Kind enumerates the semantic field types a Shape understands.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBool
	KindList
	KindEnum
)

var kindNames = [...]string{"any", "string", "number", "integer", "bool", "list", "enum"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind resolves a kind name as written in manifests.
func ParseKind(s string) (Kind, bool) {
	i := slices.Index(kindNames[:], strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return KindAny, false
	}
	return Kind(i), true
}

// Type is the semantic type of a field. Elem is set for KindList and Values for
// KindEnum.
type Type struct {
	Kind   Kind
	Elem   *Type
	Values []string
}

func (t Type) String() string {
	switch t.Kind {
	case KindList:
		if t.Elem == nil {
			return "list<any>"
		}
		return "list<" + t.Elem.String() + ">"
	case KindEnum:
		return "enum(" + strings.Join(t.Values, "|") + ")"
	default:
		return t.Kind.String()
	}
}

// Equal reports whether two types describe the same set of values.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		te, oe := t.elem(), o.elem()
		return te.Equal(oe)
	case KindEnum:
		return slices.Equal(t.Values, o.Values)
	}
	return true
}

func (t Type) elem() Type {
	if t.Elem == nil {
		return Type{Kind: KindAny}
	}
	return *t.Elem
}

// Check reports whether v conforms to t. nil never conforms; absence is
// handled by the shape, not the type.
func (t Type) Check(v any) bool {
	if v == nil {
		return false
	}
	switch t.Kind {
	case KindAny:
		return true
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		_, ok := asFloat(v)
		return ok
	case KindInteger:
		f, ok := asFloat(v)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case KindEnum:
		s, ok := v.(string)
		return ok && slices.Contains(t.Values, s)
	case KindList:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		et := t.elem()
		for i := 0; i < rv.Len(); i++ {
			if !et.Check(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return false
}

// asFloat reads any Go numeric kind or a JSON number literal.
func asFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

// Field declares one member of a Shape.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Readonly bool
}

// UnknownPolicy controls how keys not declared by a shape are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys silently.
	UnknownStrict                      // Reject unknown keys with an issue.
)

// Tag names a variant. It is a distinct type so that arbitrary strings are not
// accepted where a variant identity is expected.
type Tag string

// Mode selects how a classifier treats values accepted by several predicates.
type Mode int

const (
	FirstMatch Mode = iota // The first matching predicate wins.
	Strict                 // More than one match is an AmbiguousVariantError.
)

// ParseMode resolves a mode name as written in manifests and config.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_match", "first-match", "permissive":
		return FirstMatch, true
	case "strict":
		return Strict, true
	}
	return FirstMatch, false
}
