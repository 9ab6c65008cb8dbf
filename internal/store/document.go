package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// decodeDocument parses a {"<field>": [...]} document into raw records.
// An empty object yields no records. Any other object must carry field as
// an array, so a file written for another collection is never mistaken for
// an empty one.
func decodeDocument(data []byte, field string) ([]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrCorrupt)
	}
	raw, ok := doc[field]
	if !ok {
		if len(doc) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: no %q field", ErrCorrupt, field)
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, fmt.Errorf("%w: field %q is null", ErrCorrupt, field)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrCorrupt, field, err)
	}
	return items, nil
}

// encodeDocument renders records as an indented {"<field>": [...]} document.
func encodeDocument[T any](field string, records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{field: records}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", field, err)
	}
	return append(data, '\n'), nil
}

// writeFileAtomic replaces path with data using temp file + rename, creating
// the parent directory if needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Create temp file in same directory for atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(0644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
