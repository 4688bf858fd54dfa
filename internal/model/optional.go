package model

// Optional is a value that may be absent.
//
// Callers decide the default at the point of use:
//
//	street := textAt(fields, 0).OrElse("")
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrElse returns the value, or def when it is absent.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
