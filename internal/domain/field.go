package domain

// FieldState is the presence state of an optional payload field.
type FieldState uint8

const (
	// Absent means the key was not in the payload; the column is left alone.
	Absent FieldState = iota
	// Null means the key was present with an explicit JSON null; the column is cleared.
	Null
	// Set means the key was present with a value.
	Set
)

func (s FieldState) String() string {
	switch s {
	case Null:
		return "null"
	case Set:
		return "set"
	default:
		return "absent"
	}
}

// Field is a tri-state optional value. The zero value is Absent.
type Field[T any] struct {
	state FieldState
	value T
}

// Value returns a Field in the Set state holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{state: Set, value: v}
}

// NullField returns a Field in the Null state.
func NullField[T any]() Field[T] {
	return Field[T]{state: Null}
}

func (f Field[T]) State() FieldState { return f.state }
func (f Field[T]) IsAbsent() bool    { return f.state == Absent }
func (f Field[T]) IsNull() bool      { return f.state == Null }
func (f Field[T]) IsSet() bool       { return f.state == Set }

// Get returns the held value and whether the field is Set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == Set
}

// Ptr returns a pointer to the value when Set, nil otherwise.
// Used when a create payload maps onto a nullable Record column.
func (f Field[T]) Ptr() *T {
	if f.state != Set {
		return nil
	}
	v := f.value
	return &v
}
