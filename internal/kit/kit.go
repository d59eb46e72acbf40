// Package kit discovers kit bundles in a kit source directory and reads
// their manifests.
//
// A kit is a directory <root>/<id> holding a manifest (kit.json, or
// kit.yaml, kit.yml, kit.toml) and any of the optional subdirectories
// agents/, commands/, skills/, hooks/, mcps/, plus CLAUDE.md.prepend.
package kit

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/vibery/internal/docstore"
	"github.com/thoreinstein/vibery/internal/errors"
)

// ErrKitNotFound is returned when no manifest exists for a kit id.
var ErrKitNotFound = errors.ErrKitNotFound

// DefaultVersion is used when a manifest does not declare a version.
const DefaultVersion = "0.0.0"

// Kit subdirectory and file names.
const (
	HooksDirName    = "hooks"
	MCPsDirName     = "mcps"
	PrependFileName = "CLAUDE.md.prepend"
)

// ManifestNames lists the accepted manifest file names in lookup order.
var ManifestNames = []string{"kit.json", "kit.yaml", "kit.yml", "kit.toml"}

// Manifest is the kit's self-description.
type Manifest struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Kit is a resolved kit bundle.
type Kit struct {
	Manifest Manifest

	// Dir is the kit's directory.
	Dir string
}

// SubDir returns the path of a kit subdirectory such as "commands".
func (k *Kit) SubDir(name string) string {
	return filepath.Join(k.Dir, name)
}

// PrependPath returns the path of the kit's documentation fragment.
func (k *Kit) PrependPath() string {
	return filepath.Join(k.Dir, PrependFileName)
}

// Prepend returns the kit's documentation fragment. A kit without one
// returns "" and no error.
func (k *Kit) Prepend() (string, error) {
	data, err := os.ReadFile(k.PrependPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading %s", PrependFileName)
	}
	return string(data), nil
}

// Source is a directory of kits.
type Source struct {
	Root string
}

// NewSource returns a Source rooted at root.
func NewSource(root string) *Source {
	return &Source{Root: root}
}

// Dir returns the directory kit id would live in.
func (s *Source) Dir(id string) string {
	return filepath.Join(s.Root, id)
}

// Load resolves kit id. It returns ErrKitNotFound when the kit directory
// holds no manifest or id does not name a direct child of the root.
func (s *Source) Load(id string) (*Kit, error) {
	if !validID(id) {
		return nil, errors.Wrapf(ErrKitNotFound, "kit %q", id)
	}

	dir := s.Dir(id)
	m, err := readManifest(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "kit %q", id)
	}
	if m.ID == "" {
		m.ID = id
	}
	return &Kit{Manifest: m, Dir: dir}, nil
}

// List returns the manifests of every kit under the root, sorted by id. A
// missing root yields an empty list. Directories without a manifest and
// hidden directories are ignored.
func (s *Source) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Manifest{}, nil
		}
		return nil, errors.Wrapf(err, "reading kit directory %s", s.Root)
	}

	manifests := []Manifest{}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		k, err := s.Load(e.Name())
		if err != nil {
			if errors.Is(err, ErrKitNotFound) {
				continue
			}
			return nil, err
		}
		manifests = append(manifests, k.Manifest)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].ID < manifests[j].ID
	})
	return manifests, nil
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

// readManifest reads the first manifest found in dir.
func readManifest(dir string) (Manifest, error) {
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Manifest{}, errors.Wrapf(err, "reading %s", name)
		}

		doc, err := docstore.Decode(docstore.FormatFor(name), data)
		if err != nil {
			slog.Debug("treating manifest as empty", "path", path, "error", err)
			doc = docstore.Document{}
		}
		return manifestFrom(doc), nil
	}
	return Manifest{}, ErrKitNotFound
}

func manifestFrom(doc docstore.Document) Manifest {
	m := Manifest{
		ID:          stringField(doc, "id"),
		Version:     stringField(doc, "version"),
		Description: stringField(doc, "description"),
	}
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	return m
}

// stringField returns doc[key] as a string. Other scalars, such as an
// unquoted YAML "version: 2", are rendered in canonical JSON form.
func stringField(doc docstore.Document, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return strings.TrimSpace(string(docstore.Canonical(v)))
	}
}
