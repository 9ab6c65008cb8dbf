package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Store errors.
var (
	ErrEmptyID      = errors.New("id is required")
	ErrDuplicateID  = errors.New("record with this id already exists")
	ErrNotFound     = errors.New("record not found")
	ErrMissingField = errors.New("missing required field")
	ErrCorrupt      = errors.New("data file is malformed")
)

// RequireFields checks that every named field is present and non-null in a
// JSON object. Records call it from UnmarshalJSON before applying defaults.
func RequireFields(data []byte, names ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, name := range names {
		raw, ok := obj[name]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}
