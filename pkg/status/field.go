package status

// Field holds a telemetry value that may be unavailable. The zero value is
// "absent". It replaces blanket error swallowing around individual fetches:
// each field is either present with a value or explicitly missing, and the
// renderer decides what "Unavailable" looks like.
type Field[T any] struct {
	Value T
	Valid bool
}

// Avail wraps a present value.
func Avail[T any](v T) Field[T] {
	return Field[T]{Value: v, Valid: true}
}
