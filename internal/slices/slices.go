package slices

// Map turns a []T1 to a []T2 using a mapping function.
// This works with slices of any type.
func Map[T1, T2 any](s []T1, fun func(T1) T2) []T2 {
	if s == nil {
		return nil
	}
	r := make([]T2, len(s))
	for i, t := range s {
		r[i] = fun(t)
	}
	return r
}
