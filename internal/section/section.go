// Package section manages marker-delimited kit regions in the shared
// project documentation file.
//
// A region for kit <id> starts with "<!-- VIBERY-KIT:<id>:" and ends with
// "<!-- /VIBERY-KIT:<id> -->". The kit's prepend content carries both
// markers; this package only looks for them. A document holds at most one
// region per kit.
package section

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/report"
	"github.com/thoreinstein/vibery/pkg/fileutil"
)

// StartMarker returns the prefix that opens the region for kit id.
func StartMarker(id string) string {
	return "<!-- VIBERY-KIT:" + id + ":"
}

// EndMarker returns the line that closes the region for kit id.
func EndMarker(id string) string {
	return "<!-- /VIBERY-KIT:" + id + " -->"
}

// Insert prepends content to doc unless doc already contains the start
// marker for id. It reports whether doc changed.
func Insert(doc, id, content string) (string, bool) {
	if strings.Contains(doc, StartMarker(id)) {
		return doc, false
	}
	return content + doc, true
}

// Remove deletes the region for id: from the first start marker through the
// first end marker after it, plus any newlines that immediately follow. It
// reports whether doc changed; a missing marker leaves doc untouched.
func Remove(doc, id string) (string, bool) {
	start := strings.Index(doc, StartMarker(id))
	if start < 0 {
		return doc, false
	}
	endMarker := EndMarker(id)
	rel := strings.Index(doc[start:], endMarker)
	if rel < 0 {
		return doc, false
	}
	end := start + rel + len(endMarker)
	return doc[:start] + strings.TrimLeft(doc[end:], "\n"), true
}

// Manager applies section edits to a documentation file.
type Manager struct {
	Path string
}

// NewManager returns a Manager for the document at path.
func NewManager(path string) *Manager {
	return &Manager{Path: path}
}

// InsertSection prepends content for kit id when its region is absent. A
// missing document is treated as empty. It reports whether the region was
// (or in preview, would be) inserted.
func (m *Manager) InsertSection(id, content string, preview bool, rep *report.Reporter) (bool, error) {
	if rep == nil {
		rep = report.Discard()
	}

	doc, _, err := m.read()
	if err != nil {
		return false, err
	}

	updated, changed := Insert(doc, id, content)
	if !changed {
		rep.Warn("Kit already in %s, skipping prepend", filepath.Base(m.Path))
		return false, nil
	}
	if preview {
		rep.Dry("Prepend to %s", filepath.Base(m.Path))
		return true, nil
	}
	if err := fileutil.WriteFile(m.Path, []byte(updated)); err != nil {
		return false, errors.Wrapf(err, "writing %s", m.Path)
	}
	rep.Step("+ %s prepended", filepath.Base(m.Path))
	return true, nil
}

// RemoveSection deletes the region for kit id. A missing document or region
// is a no-op. It reports whether the region was (or in preview, would be)
// removed.
func (m *Manager) RemoveSection(id string, preview bool, rep *report.Reporter) (bool, error) {
	if rep == nil {
		rep = report.Discard()
	}

	doc, exists, err := m.read()
	if err != nil || !exists {
		return false, err
	}

	updated, changed := Remove(doc, id)
	if !changed {
		return false, nil
	}
	if preview {
		rep.Dry("Remove %s section", filepath.Base(m.Path))
		return true, nil
	}
	if err := fileutil.WriteFile(m.Path, []byte(updated)); err != nil {
		return false, errors.Wrapf(err, "writing %s", m.Path)
	}
	rep.Step("- %s section removed", filepath.Base(m.Path))
	return true, nil
}

func (m *Manager) read() (string, bool, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading %s", m.Path)
	}
	return string(data), true, nil
}
