// Package models defines the core data structures for principals, fleet
// entities and the partial-update payloads applied to them.
package models

import "encoding/json"

// Page selects a window of rows for list endpoints.
type Page struct {
	// Offset is the number of rows to skip.
	Offset int
	// Limit is the maximum number of rows to return.
	Limit int
}

// Token is the login response body.
type Token struct {
	// AccessToken is the signed bearer token.
	AccessToken string `json:"access_token"`
	// TokenType is always "bearer".
	TokenType string `json:"token_type"`
}

// set copies src into dst when the field was present in the update payload.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Nullable is a patch field for a nullable column. Set records that the key
// was present in the payload, so an explicit null clears the column while an
// absent key leaves it alone.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a present field holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a present field holding null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON marks the field present, including for a literal null.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// setNullable overwrites a nullable column when the field was present.
func setNullable[T any](dst **T, src Nullable[T]) {
	if !src.Set {
		return
	}
	if src.Value == nil {
		*dst = nil
		return
	}
	v := *src.Value
	*dst = &v
}
