package entity

import (
	"bytes"
	"encoding/json"
)

// Optional tells a member that was never sent apart from one sent as null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some is an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
