package goshape

// Opt holds a value or nothing. The zero Opt is None.
type Opt[T any] struct {
	v  T
	ok bool
}

// Some wraps v.
func Some[T any](v T) Opt[T] { return Opt[T]{v: v, ok: true} }

// None returns an empty Opt.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the value and whether it was present.
func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

func (o Opt[T]) IsSome() bool { return o.ok }

func (o Opt[T]) IsNone() bool { return !o.ok }

// OrElse returns the value, or d when empty.
func (o Opt[T]) OrElse(d T) T {
	if o.ok {
		return o.v
	}
	return d
}
