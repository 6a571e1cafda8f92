package mapper

import (
	"bytes"
	"encoding/json"
)

// Unknown is how an absent upstream value is rendered
const Unknown = "unknown"

// Field is an upstream value that may be absent. Absent values marshal as
// "unknown" instead of a zero that could pass for real data.
type Field[T any] struct {
	Value T
	Known bool
}

// Known wraps v as a present value
func Known[T any](v T) Field[T] { return Field[T]{Value: v, Known: true} }

// Get returns the value and whether upstream sent it
func (f Field[T]) Get() (T, bool) { return f.Value, f.Known }

// Or returns the value, or def when unknown
func (f Field[T]) Or(def T) T {
	if f.Known {
		return f.Value
	}
	return def
}

// MarshalJSON implements json.Marshaler
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Known {
		return json.Marshal(Unknown)
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON implements json.Unmarshaler; null stays unknown
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Field[T]{Value: v, Known: true}
	return nil
}

// Price is a decimal amount kept exactly as upstream sent it.
// Numbers and strings are both accepted; nothing is parsed into floating point.
type Price string

// UnmarshalJSON implements json.Unmarshaler
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
	default:
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return err
		}
		*p = Price(n.String())
	}
	return nil
}

// String returns the raw amount
func (p Price) String() string { return string(p) }
