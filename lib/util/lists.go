package util

func Contains[S ~[]T, T comparable](list S, target T) bool {
	return IndexOf(list, target) >= 0
}

func IndexOf[S ~[]T, T comparable](list S, target T) int {
	return IndexOfFunc(list, target, StrictEqual[T])
}

func IndexOfFunc[S ~[]T, T comparable](list S, target T, eq EqualFunc[T]) int {
	for i, el := range list {
		if eq(el, target) {
			return i
		}
	}
	return -1
}

func Map[S ~[]T, T, U any](slice S, f func(T) U) []U {
	out := make([]U, len(slice))
	for i, t := range slice {
		out[i] = f(t)
	}
	return out
}

func MapErr[S ~[]T, T, U any](slice S, f func(T) (U, error)) ([]U, error) {
	out := make([]U, len(slice))
	for i, t := range slice {
		u, err := f(t)
		out[i] = u
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
