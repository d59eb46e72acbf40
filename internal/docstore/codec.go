package docstore

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/vibery/internal/errors"
)

// Format identifies a document serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor returns the format implied by path's extension. Unknown
// extensions are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses data as a document in format f. The top level must be an
// object; an empty input decodes to an empty document.
func Decode(f Format, data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}

	var raw map[string]any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parsing YAML")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parsing TOML")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "parsing JSON")
		}
		if dec.More() {
			return nil, errors.New("parsing JSON: trailing data after document")
		}
	}

	if raw == nil {
		return Document{}, nil
	}
	return Document(normalize(raw).(map[string]any)), nil
}

// Encode serializes doc in format f with sorted keys and a trailing newline.
// JSON uses two-space indentation and does not HTML-escape strings, so hook
// commands containing && or > stay readable.
func Encode(f Format, doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}

	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(plain(map[string]any(doc))); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		out, err := toml.Marshal(plain(map[string]any(doc)))
		if err != nil {
			return nil, errors.Wrap(err, "encoding TOML")
		}
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		return out, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any(doc)); err != nil {
			return nil, errors.Wrap(err, "encoding JSON")
		}
		return buf.Bytes(), nil
	}
}

// normalize converts decoder output into JSON-compatible shapes: nested
// Documents and map[any]any become map[string]any.
func normalize(v any) any {
	switch val := v.(type) {
	case Document:
		return normalize(map[string]any(val))
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalize(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[toKey(k)] = normalize(item)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = normalize(item)
		}
		return a
	default:
		return val
	}
}

// plain is normalize plus conversion of json.Number to int64 or float64,
// which the YAML and TOML encoders require.
func plain(v any) any {
	switch val := normalize(v).(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = plain(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = plain(item)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return val
	}
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	b, err := json.Marshal(k)
	if err != nil {
		return ""
	}
	return strings.Trim(string(b), `"`)
}
