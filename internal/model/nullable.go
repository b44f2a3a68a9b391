package model

import (
	"bytes"
	"encoding/json"
)

// Nullable is a field that can be unset, explicitly null, or hold a value.
// The zero value is unset. When used as a struct field, encoding/json leaves it
// unset if the key is absent and calls UnmarshalJSON for both null and values.
type Nullable[T any] struct {
	set   bool
	null  bool
	value T
}

func Value[T any](v T) Nullable[T] {
	return Nullable[T]{set: true, value: v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

func (n Nullable[T]) Specified() bool { return n.set }

func (n Nullable[T]) IsNull() bool { return n.set && n.null }

// Get returns the value and true only when a non-null value was provided.
func (n Nullable[T]) Get() (T, bool) {
	if !n.set || n.null {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Ptr returns nil for unset or null, otherwise a pointer to a copy of the value.
func (n Nullable[T]) Ptr() *T {
	v, ok := n.Get()
	if !ok {
		return nil
	}
	return &v
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.null = true
		var zero T
		n.value = zero
		return nil
	}
	n.null = false
	return json.Unmarshal(data, &n.value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.set || n.null {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
