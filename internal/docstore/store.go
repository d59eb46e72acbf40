package docstore

import (
	"encoding/json"
	"log/slog"
	"math/big"
	"os"
	"sort"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/pkg/fileutil"
)

// Document is a structured document with an object at the top level.
type Document map[string]any

// Read loads the document at path and reports why it could not be loaded.
// A missing file is not an error and yields an empty document.
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return Document{}, errors.Wrapf(err, "reading %s", path)
	}

	doc, err := Decode(FormatFor(path), data)
	if err != nil {
		return Document{}, errors.Wrapf(err, "decoding %s", path)
	}
	return doc, nil
}

// Load returns the document at path. Missing, unreadable, or corrupt
// documents load as empty; the cause is logged at debug level only.
func Load(path string) Document {
	doc, err := Read(path)
	if err != nil {
		slog.Debug("treating document as empty", "path", path, "error", err)
		return Document{}
	}
	return doc
}

// Save writes doc to path, creating parent directories. Output is
// deterministic for a given document. The file is replaced atomically.
func Save(path string, doc Document) error {
	data, err := Encode(FormatFor(path), doc)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return fileutil.WriteFile(path, data)
}

// Object returns the object stored under key, creating an empty one when
// the key is absent or holds a non-object value.
func (d Document) Object(key string) map[string]any {
	switch v := d[key].(type) {
	case map[string]any:
		return v
	case Document:
		return v
	}
	m := map[string]any{}
	d[key] = m
	return m
}

// Keys returns the document's top-level keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Canonical returns the canonical JSON encoding of v: object keys sorted,
// numbers in their shortest form. Two values are structurally identical
// exactly when their canonical encodings are equal.
func Canonical(v any) []byte {
	b, err := json.Marshal(canonicalNumbers(normalize(v)))
	if err != nil {
		return nil
	}
	return b
}

// canonicalNumbers rewrites json.Number values so that 1, 1.0, and a YAML
// int 1 compare equal. Integers keep every digit; only non-integral values
// go through float64.
func canonicalNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = canonicalNumbers(item)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = canonicalNumbers(item)
		}
		return a
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if b, ok := new(big.Int).SetString(val.String(), 10); ok {
			return b
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return val
	}
}
