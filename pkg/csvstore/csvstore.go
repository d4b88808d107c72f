// Package csvstore implements a file-backed keyed-record store.
//
// A Table holds records of one shape in a single CSV file with a fixed
// header. Load reads the whole file; Save rewrites it atomically by
// writing to a temp file and renaming it over the original, so a failed
// write never corrupts the previous contents. There is no cross-process
// locking: the store assumes a single operator.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Codec converts between a record and its CSV row. Decode must accept
// rows produced by Encode, fields in header order.
type Codec[T any] struct {
	Header []string
	Key    func(T) string
	Encode func(T) []string
	Decode func([]string) (T, error)
}

// Table is one CSV file holding records keyed by a unique field.
type Table[T any] struct {
	path  string
	codec Codec[T]
}

// New returns a table backed by the CSV file at path. The file is
// created lazily on the first Save.
func New[T any](path string, codec Codec[T]) *Table[T] {
	return &Table[T]{path: path, codec: codec}
}

// Load reads every record in file order. A missing file is an empty table.
func (t *Table[T]) Load() ([]T, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// First row is the header.
	records := make([]T, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record, err := t.codec.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.path, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// Save rewrites the whole table with the given records.
func (t *Table[T]) Save(records []T) error {
	dir := filepath.Dir(t.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)

	if err := w.Write(t.codec.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}

	for _, record := range records {
		if err := w.Write(t.codec.Encode(record)); err != nil {
			tmp.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", t.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("replace %s: %w", t.path, err)
	}

	return nil
}

// Append adds one record at the end of the table.
func (t *Table[T]) Append(record T) error {
	records, err := t.Load()
	if err != nil {
		return err
	}

	return t.Save(append(records, record))
}

// Get returns the first record whose key matches.
func (t *Table[T]) Get(key string) (T, bool, error) {
	var zero T

	records, err := t.Load()
	if err != nil {
		return zero, false, err
	}

	for _, record := range records {
		if t.codec.Key(record) == key {
			return record, true, nil
		}
	}

	return zero, false, nil
}
