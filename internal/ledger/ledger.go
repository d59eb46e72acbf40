// Package ledger persists the record of installed kits and the provenance
// of every file they deployed.
//
// The ledger lives in the project's metadata document under the
// "vibery_kits" key. Other top-level keys of that document are preserved
// across saves. The ledger is the only authority consulted when a kit is
// removed: files it does not list are never touched.
package ledger

import (
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/thoreinstein/vibery/internal/docstore"
	"github.com/thoreinstein/vibery/internal/errors"
)

// Key is the metadata document key holding installed-kit entries.
const Key = "vibery_kits"

// OwnershipKit marks a file as owned by the kit that deployed it. Only
// kit-owned files are deleted on uninstall.
const OwnershipKit = "kit"

// FileRecord is the provenance of one deployed file.
type FileRecord struct {
	// Path is relative to the category root the file was deployed into.
	Path string `json:"path"`

	// Checksum is the content fingerprint at deploy time.
	Checksum string `json:"checksum"`

	// Ownership is OwnershipKit for files the kit may remove.
	Ownership string `json:"ownership"`

	// Kit is the id of the owning kit.
	Kit string `json:"kit"`

	// Category is the deployment category (agents, commands, skills).
	// Records written by older installers leave it empty.
	Category string `json:"category,omitempty"`
}

// KitOwned reports whether the record may be deleted on uninstall.
func (r FileRecord) KitOwned() bool {
	return r.Ownership == OwnershipKit
}

// Entry describes one installed kit.
type Entry struct {
	Version     string       `json:"version"`
	InstalledAt string       `json:"installedAt"`
	Files       []FileRecord `json:"files"`
}

// Ledger is the in-memory view of the metadata document.
type Ledger struct {
	path    string
	doc     docstore.Document
	entries map[string]Entry

	// opaque holds entries that could not be decoded. They are written
	// back verbatim until their id is replaced or deleted.
	opaque map[string]any
}

// Load reads the ledger stored at path. A missing or corrupt document
// yields an empty ledger. Scalar fields are decoded leniently, so a numeric
// version reads as its decimal text. Entries that still cannot be decoded
// are hidden from callers but preserved on Save.
func Load(path string) (*Ledger, error) {
	doc := docstore.Load(path)
	l := &Ledger{
		path:    path,
		doc:     doc,
		entries: map[string]Entry{},
		opaque:  map[string]any{},
	}

	raw, ok := doc[Key].(map[string]any)
	if !ok {
		if _, present := doc[Key]; present {
			slog.Debug("ignoring malformed ledger", "path", path, "key", Key)
		}
		return l, nil
	}

	for id, v := range raw {
		entry, err := decodeEntry(v)
		if err != nil {
			slog.Debug("preserving undecodable ledger entry", "path", path, "kit", id, "error", err)
			l.opaque[id] = v
			continue
		}
		l.entries[id] = entry
	}
	return l, nil
}

// Path returns the location of the metadata document.
func (l *Ledger) Path() string {
	return l.path
}

// Get returns the entry for kit id.
func (l *Ledger) Get(id string) (Entry, bool) {
	e, ok := l.entries[id]
	return e, ok
}

// Put replaces the entry for kit id.
func (l *Ledger) Put(id string, e Entry) {
	if e.Files == nil {
		e.Files = []FileRecord{}
	}
	l.entries[id] = e
	delete(l.opaque, id)
}

// Delete removes the entry for kit id. Deleting an absent id is a no-op.
func (l *Ledger) Delete(id string) {
	delete(l.entries, id)
	delete(l.opaque, id)
}

// IDs returns the installed kit ids in sorted order.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Save writes the ledger back into its metadata document.
func (l *Ledger) Save() error {
	kits := make(map[string]any, len(l.entries)+len(l.opaque))
	for id, v := range l.opaque {
		kits[id] = v
	}
	for id, e := range l.entries {
		v, err := encodeEntry(e)
		if err != nil {
			return errors.Wrapf(err, "encoding ledger entry %q", id)
		}
		kits[id] = v
	}
	l.doc[Key] = kits

	if err := docstore.Save(l.path, l.doc); err != nil {
		return errors.Wrap(err, "saving ledger")
	}
	return nil
}

// decodeEntry converts a generic document value into an Entry. Scalar
// fields of any type are accepted; a non-object entry, a files value that
// is not a list, or a file record that is not an object is an error.
func decodeEntry(v any) (Entry, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Entry{}, errors.Newf("entry is %T, not an object", v)
	}

	e := Entry{
		Version:     scalar(m["version"]),
		InstalledAt: scalar(m["installedAt"]),
		Files:       []FileRecord{},
	}

	switch files := m["files"].(type) {
	case nil:
	case []any:
		for i, item := range files {
			rec, ok := item.(map[string]any)
			if !ok {
				return Entry{}, errors.Newf("file record %d is %T, not an object", i, item)
			}
			e.Files = append(e.Files, FileRecord{
				Path:      scalar(rec["path"]),
				Checksum:  scalar(rec["checksum"]),
				Ownership: scalar(rec["ownership"]),
				Kit:       scalar(rec["kit"]),
				Category:  scalar(rec["category"]),
			})
		}
	default:
		return Entry{}, errors.Newf("files is %T, not a list", files)
	}
	return e, nil
}

// scalar renders a document value as text. Strings are returned as is and
// other values by their canonical encoding.
func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return string(docstore.Canonical(val))
	}
}

func encodeEntry(e Entry) (any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
