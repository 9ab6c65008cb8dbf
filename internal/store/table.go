// Package store implements an id-keyed record table persisted as a single
// JSON document. The whole document is read when the table is opened and
// rewritten after every successful mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Record is implemented by the value types kept in a Table.
// Clone must return a copy that shares no mutable state with the receiver.
type Record[T any] interface {
	Key() string
	Clone() T
}

// Option configures a Table.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for load and persist diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Table holds records of one type in insertion order.
type Table[T Record[T]] struct {
	path   string
	field  string
	order  []string
	rows   map[string]T
	logger *zap.Logger
}

// Open loads the table stored at path under the given document field.
// A missing file yields an empty table. A file that cannot be read or parsed
// is reported as an error and left untouched on disk.
func Open[T Record[T]](path, field string, opts ...Option) (*Table[T], error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[T]{
		path:   path,
		field:  field,
		rows:   make(map[string]T),
		logger: o.logger.With(zap.String("table", field)),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.logger.Debug("data file not found, starting empty", zap.String("path", path))
			return t, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	items, err := decodeDocument(data, field)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	for i, raw := range items {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("loading %s: %w: %s record %d: %w", path, ErrCorrupt, field, i, err)
		}
		key := rec.Key()
		if key == "" {
			return nil, fmt.Errorf("loading %s: %w: %s record %d: %w", path, ErrCorrupt, field, i, ErrEmptyID)
		}
		if _, dup := t.rows[key]; dup {
			return nil, fmt.Errorf("loading %s: %w: duplicate id %q", path, ErrCorrupt, key)
		}
		t.rows[key] = rec
		t.order = append(t.order, key)
	}

	t.logger.Debug("loaded data file", zap.String("path", path), zap.Int("records", len(t.order)))
	return t, nil
}

// Path returns the backing file path.
func (t *Table[T]) Path() string {
	return t.path
}

// Len returns the number of records.
func (t *Table[T]) Len() int {
	return len(t.order)
}

// Add inserts rec and persists the table.
// Returns ErrDuplicateID without writing if the key already exists.
func (t *Table[T]) Add(rec T) error {
	key := rec.Key()
	if key == "" {
		return ErrEmptyID
	}
	if _, exists := t.rows[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, key)
	}

	t.rows[key] = rec.Clone()
	t.order = append(t.order, key)

	if err := t.persist(); err != nil {
		delete(t.rows, key)
		t.order = t.order[:len(t.order)-1]
		return err
	}
	return nil
}

// Get returns a copy of the record with the given key.
func (t *Table[T]) Get(key string) (T, bool) {
	rec, ok := t.rows[key]
	if !ok {
		var zero T
		return zero, false
	}
	return rec.Clone(), true
}

// List returns copies of all records in insertion order.
func (t *Table[T]) List() []T {
	return t.Filter(func(T) bool { return true })
}

// Filter returns copies of the records matching keep, in insertion order.
func (t *Table[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, key := range t.order {
		rec := t.rows[key]
		if keep(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Update applies fn to a copy of the record and persists the result.
// fn reports whether it changed anything; if not, nothing is written.
// Returns ErrNotFound without writing if the key is absent.
func (t *Table[T]) Update(key string, fn func(*T) bool) error {
	prev, ok := t.rows[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	next := prev.Clone()
	if !fn(&next) {
		t.logger.Debug("update left record unchanged", zap.String("id", key))
		return nil
	}

	t.rows[key] = next
	if err := t.persist(); err != nil {
		t.rows[key] = prev
		return err
	}
	return nil
}

// persist rewrites the backing file with every record in insertion order.
func (t *Table[T]) persist() error {
	records := make([]T, 0, len(t.order))
	for _, key := range t.order {
		records = append(records, t.rows[key])
	}

	data, err := encodeDocument(t.field, records)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(t.path, data); err != nil {
		t.logger.Error("failed to persist data file", zap.String("path", t.path), zap.Error(err))
		return fmt.Errorf("saving %s: %w", t.path, err)
	}

	t.logger.Debug("persisted data file", zap.String("path", t.path), zap.Int("records", len(records)))
	return nil
}
