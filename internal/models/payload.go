// Package models contains the catalog payloads exchanged with the catalog
// service and the entities persisted by the local catalog stub.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ID is an identifier assigned by the catalog service. It holds the raw JSON
// token so numeric and string ids are sent back exactly as they were received.
type ID string

// MarshalJSON writes the raw token, or null for the zero ID.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

// UnmarshalJSON keeps the raw token. Objects and arrays are rejected.
func (id *ID) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*id = ""
		return nil
	}
	if !json.Valid(raw) || raw[0] == '{' || raw[0] == '[' {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = ID(raw)
	return nil
}

// IsZero reports whether the id was never assigned.
func (id ID) IsZero() bool {
	return id == ""
}

// String returns the id without JSON quoting.
func (id ID) String() string {
	var s string
	if err := json.Unmarshal([]byte(id), &s); err == nil {
		return s
	}
	return string(id)
}

// Uint parses the id as a positive integer key.
func (id ID) Uint() (uint, error) {
	if id.IsZero() {
		return 0, errors.New("empty id")
	}
	v, err := strconv.ParseUint(id.String(), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("id %s is not a positive integer", id)
	}
	return uint(v), nil
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required"`
}

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=500"`
}

// CreateProductRequest is the body of POST /products. CategoryIDs holds the
// primary category first. The catalogid rule accepts positive integer ids.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=150"`
	Price       Price  `json:"price" validate:"gt=0"`
	Description string `json:"description" validate:"max=500"`
	UserID      ID     `json:"userId" validate:"required,catalogid"`
	CategoryIDs []ID   `json:"categoryIds" validate:"min=1,dive,catalogid"`
}

// CreatedResponse is the part of a creation response the seeder relies on.
type CreatedResponse struct {
	ID ID `json:"id"`
}
