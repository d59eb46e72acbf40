package installer

import (
	"path/filepath"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/fingerprint"
	"github.com/thoreinstein/vibery/internal/ledger"
)

// FileState describes a recorded file relative to its recorded fingerprint.
type FileState string

const (
	// StateOK means the file matches its recorded fingerprint.
	StateOK FileState = "ok"
	// StateModified means the file changed since it was deployed.
	StateModified FileState = "modified"
	// StateMissing means the file no longer exists.
	StateMissing FileState = "missing"
)

// FileStatus is the state of one recorded file.
type FileStatus struct {
	Path     string    `json:"path"`
	Category string    `json:"category,omitempty"`
	State    FileState `json:"state"`
	KitOwned bool      `json:"kitOwned"`
}

// KitStatus is the state of every file recorded for one kit.
type KitStatus struct {
	ID      string       `json:"id"`
	Version string       `json:"version"`
	Files   []FileStatus `json:"files"`
}

// Drifted reports whether any recorded file is modified or missing.
func (s KitStatus) Drifted() bool {
	for _, f := range s.Files {
		if f.State != StateOK {
			return true
		}
	}
	return false
}

// Status compares the files recorded for kit id against the workspace. It
// returns ErrKitNotInstalled when the ledger has no entry for id. Nothing
// is written.
func (i *Installer) Status(id string) (*KitStatus, error) {
	l, err := ledger.Load(i.ws.MetadataPath())
	if err != nil {
		return nil, err
	}
	entry, ok := l.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrKitNotInstalled, "kit %q", id)
	}

	st := &KitStatus{ID: id, Version: entry.Version, Files: make([]FileStatus, 0, len(entry.Files))}
	for _, rec := range entry.Files {
		fs := FileStatus{Path: rec.Path, Category: rec.Category, KitOwned: rec.KitOwned()}

		if !filepath.IsLocal(filepath.FromSlash(rec.Path)) {
			fs.State = StateMissing
			st.Files = append(st.Files, fs)
			continue
		}

		_, dst, found := i.resolve(rec)
		fs.Path = i.ws.Rel(dst)
		switch {
		case !found:
			fs.State = StateMissing
		case fingerprint.File(dst) != rec.Checksum:
			fs.State = StateModified
		default:
			fs.State = StateOK
		}
		st.Files = append(st.Files, fs)
	}
	return st, nil
}
