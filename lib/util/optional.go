package util

type Opt[T any] struct {
	hasValue bool
	value    T
}

func Some[T any](t T) Opt[T] {
	return Opt[T]{true, t}
}
func None[T any]() Opt[T] {
	return Opt[T]{hasValue: false}
}

// FromPtr treats a nil pointer as None and anything else as Some of the
// pointed-at value.
func FromPtr[T any](p *T) Opt[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (self Opt[T]) GetOr(def T) T {
	if self.hasValue {
		return self.value
	}
	return def
}

func (self Opt[T]) Ptr() *T {
	if self.hasValue {
		return &self.value
	}
	return nil
}
