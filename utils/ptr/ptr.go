package ptr

// PointTo creates a typed pointer to whatever is handed in.
func PointTo[T any](t T) *T {
	return &t
}

// GetSafeDeref returns the dereferenced value or the zero value of T if
// the pointer is nil.
func GetSafeDeref[T any](ptr *T) T {
	var res T
	if ptr != nil {
		res = *ptr
	}

	return res
}
