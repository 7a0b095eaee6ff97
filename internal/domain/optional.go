package domain

import "encoding/json"

// Optional is a patch field that distinguishes three states: absent (leave
// the current value alone), set to a value, and explicitly cleared. A plain
// pointer cannot express the difference between "absent" and "cleared", and
// that difference decides whether an update keeps or drops a task's
// description or due date.
//
// The zero Optional is absent.
type Optional[T any] struct {
	present bool
	valid   bool
	value   T
}

// Some returns an Optional carrying the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{present: true, valid: true, value: v}
}

// Null returns an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Present reports whether the field was supplied at all, whether with a
// value or as an explicit clear.
func (o Optional[T]) Present() bool {
	return o.present
}

// Valid reports whether the field carries a value (present and not cleared).
func (o Optional[T]) Valid() bool {
	return o.present && o.valid
}

// Value returns the carried value and whether one is carried.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.Valid()
}

// UnmarshalJSON implements json.Unmarshaler. encoding/json only invokes it
// when the key is present in the document, so a missing key leaves the
// Optional absent, a JSON null marks an explicit clear, and anything else
// decodes into the value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		o.valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

// MarshalJSON implements json.Marshaler. Absent and cleared fields encode
// as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
