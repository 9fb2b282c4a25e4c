package dsl

import goshape "github.com/reoring/goshape"

func Any() goshape.Type     { return goshape.Type{Kind: goshape.KindAny} }
func String() goshape.Type  { return goshape.Type{Kind: goshape.KindString} }
func Number() goshape.Type  { return goshape.Type{Kind: goshape.KindNumber} }
func Integer() goshape.Type { return goshape.Type{Kind: goshape.KindInteger} }
func Bool() goshape.Type    { return goshape.Type{Kind: goshape.KindBool} }

// List returns a list type whose elements must conform to elem.
func List(elem goshape.Type) goshape.Type {
	return goshape.Type{Kind: goshape.KindList, Elem: &elem}
}

// Enum returns a string type restricted to values.
func Enum(values ...string) goshape.Type {
	return goshape.Type{Kind: goshape.KindEnum, Values: append([]string(nil), values...)}
}
