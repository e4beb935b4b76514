package util

type EqualFunc[T comparable] func(l, r T) bool

func StrictEqual[T comparable](l, r T) bool {
	return l == r
}
