package types

// GrowSlice returns s extended to length newCap, keeping its contents. A
// slice already at least that long is returned unchanged.
func GrowSlice[T any](s []T, newCap int) []T {
	if len(s) >= newCap {
		return s
	}
	bigger := make([]T, newCap)
	copy(bigger, s)
	return bigger
}
