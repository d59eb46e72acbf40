// Package installer installs and uninstalls kits into a project workspace.
//
// Install deploys a kit's files, merges its hook and MCP fragments into the
// shared configuration documents, inserts its documentation section, and
// records everything in the metadata ledger. Uninstall reverses an install
// using only what the ledger recorded; the kit's source files are never
// consulted, so a kit can be removed after its source is gone.
//
// Preview mode runs the same steps and reports what would change without
// writing to any destination artifact.
package installer

import (
	"log/slog"
	"time"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/kit"
	"github.com/thoreinstein/vibery/internal/ledger"
	"github.com/thoreinstein/vibery/internal/report"
	"github.com/thoreinstein/vibery/internal/section"
	"github.com/thoreinstein/vibery/internal/workspace"
)

// Sentinel errors, re-exported for callers that only import installer.
var (
	ErrKitNotFound     = errors.ErrKitNotFound
	ErrKitNotInstalled = errors.ErrKitNotInstalled
)

// Installer reconciles kits against one workspace.
type Installer struct {
	ws     *workspace.Workspace
	src    *kit.Source
	rep    *report.Reporter
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Installer.
type Option func(*Installer)

// WithReporter sets where progress lines are written.
func WithReporter(r *report.Reporter) Option {
	return func(i *Installer) {
		i.rep = r
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// WithClock sets the timestamp source for ledger entries.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		i.now = now
	}
}

// New creates an Installer for ws drawing kits from src.
func New(ws *workspace.Workspace, src *kit.Source, opts ...Option) *Installer {
	i := &Installer{
		ws:     ws,
		src:    src,
		rep:    report.Discard(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// InstalledKit is one row of the ledger listing.
type InstalledKit struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	InstalledAt string `json:"installedAt"`
	Files       int    `json:"files"`
}

// Installed lists the kits recorded in the ledger, sorted by id.
func (i *Installer) Installed() ([]InstalledKit, error) {
	l, err := ledger.Load(i.ws.MetadataPath())
	if err != nil {
		return nil, err
	}

	kits := make([]InstalledKit, 0, len(l.IDs()))
	for _, id := range l.IDs() {
		e, _ := l.Get(id)
		kits = append(kits, InstalledKit{
			ID:          id,
			Version:     e.Version,
			InstalledAt: e.InstalledAt,
			Files:       len(e.Files),
		})
	}
	return kits, nil
}

// Available lists the kits the source offers, sorted by id.
func (i *Installer) Available() ([]kit.Manifest, error) {
	return i.src.List()
}

func (i *Installer) sections() *section.Manager {
	return section.NewManager(i.ws.DocPath())
}

func (i *Installer) timestamp() string {
	return i.now().UTC().Format(time.RFC3339)
}
