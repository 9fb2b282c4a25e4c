package goshape

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// shape key. Priority: goshape:"name=..." > json tag name > field name; "-"
// disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("goshape"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// ShapeOf derives a shape from the exported top-level fields of struct T.
// The goshape tag accepts "required", "readonly" and "enum=a|b|c" options.
func ShapeOf[T any]() (*Shape, error) {
	rt := reflect.TypeFor[T]()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("goshape.ShapeOf: %s is not a struct", rt)
	}
	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "" || name == "-" {
			continue
		}
		f := Field{Name: name, Type: typeOfGo(sf.Type)}
		for _, opt := range strings.Split(sf.Tag.Get("goshape"), ",") {
			opt = strings.TrimSpace(opt)
			switch {
			case opt == "required":
				f.Required = true
			case opt == "readonly":
				f.Readonly = true
			case strings.HasPrefix(opt, "enum="):
				f.Type = Type{Kind: KindEnum, Values: strings.Split(strings.TrimPrefix(opt, "enum="), "|")}
			}
		}
		fields = append(fields, f)
	}
	return NewShape(rt.Name(), fields...)
}

func typeOfGo(t reflect.Type) Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return Type{Kind: KindString}
	case reflect.Bool:
		return Type{Kind: KindBool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Type{Kind: KindInteger}
	case reflect.Float32, reflect.Float64:
		return Type{Kind: KindNumber}
	case reflect.Slice, reflect.Array:
		et := typeOfGo(t.Elem())
		return Type{Kind: KindList, Elem: &et}
	}
	return Type{Kind: KindAny}
}

// FieldName returns the shape key for a top-level field of T selected by
// selector, so that Pick and Omit call sites break at compile time when the
// field is renamed or removed:
//
//	goshape.FieldName(func(u *User) *string { return &u.Email }) // "email"
func FieldName[T any, F any](selector func(*T) *F) string {
	if selector == nil {
		panic("goshape.FieldName: selector must not be nil")
	}
	var zero T
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	ft := reflect.TypeFor[F]()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Type != ft {
			continue
		}
		// a nested field at offset 0 shares its parent's address; the type
		// check above tells them apart
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				panic("goshape.FieldName: selected field is disabled")
			}
			return name
		}
	}
	panic("goshape.FieldName: selector must return address of a top-level field")
}
