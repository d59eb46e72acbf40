package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/ledger"
	"github.com/thoreinstein/vibery/internal/workspace"
)

// UninstallResult describes one uninstall. Paths are relative to the
// workspace root.
type UninstallResult struct {
	KitID   string
	Version string

	// Removed lists kit-owned files that were (or in preview, would be)
	// deleted.
	Removed []string

	// Skipped lists files the ledger marks as not owned by the kit.
	Skipped []string

	// Missing lists recorded files that no longer exist.
	Missing []string

	// SectionRemoved reports whether the documentation section was removed.
	SectionRemoved bool

	Preview bool
}

// Uninstall removes kit id from the workspace using the ledger's records.
// It returns ErrKitNotInstalled when the ledger has no entry for id. When
// preview is true nothing is written.
func (i *Installer) Uninstall(ctx context.Context, id string, preview bool) (*UninstallResult, error) {
	l, err := ledger.Load(i.ws.MetadataPath())
	if err != nil {
		return nil, err
	}
	entry, ok := l.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrKitNotInstalled, "kit %q", id)
	}

	res := &UninstallResult{KitID: id, Version: entry.Version, Preview: preview}
	if preview {
		i.rep.Header("[DRY RUN] Uninstalling %s...", id)
	} else {
		i.rep.Header("Uninstalling %s...", id)
	}

	for _, rec := range entry.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := i.removeRecord(rec, preview, res); err != nil {
			return nil, err
		}
	}

	res.SectionRemoved, err = i.sections().RemoveSection(id, preview, i.rep)
	if err != nil {
		return nil, errors.Wrap(err, "updating documentation")
	}

	if preview {
		i.rep.Success("Dry run complete for %s (%d files)", id, len(res.Removed))
		return res, nil
	}

	l.Delete(id)
	if err := l.Save(); err != nil {
		return nil, err
	}

	i.rep.Success("Uninstalled %s (%d files removed)", id, len(res.Removed))
	return res, nil
}

func (i *Installer) removeRecord(rec ledger.FileRecord, preview bool, res *UninstallResult) error {
	rel := filepath.FromSlash(rec.Path)
	if !filepath.IsLocal(rel) {
		i.rep.Warn("Skipping path outside the workspace: %s", rec.Path)
		res.Skipped = append(res.Skipped, rec.Path)
		return nil
	}

	root, dst, found := i.resolve(rec)
	display := i.ws.Rel(dst)
	if !rec.KitOwned() {
		i.rep.Warn("Skipping user-modified: %s", display)
		res.Skipped = append(res.Skipped, display)
		return nil
	}

	if !found {
		i.logger.Debug("recorded file already removed", "kit", res.KitID, "path", rec.Path)
		res.Missing = append(res.Missing, display)
		return nil
	}

	if preview {
		i.rep.Dry("Remove %s", display)
		res.Removed = append(res.Removed, display)
		return nil
	}

	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", display)
	}
	i.rep.Step("- %s", display)
	res.Removed = append(res.Removed, display)
	pruneEmptyDirs(filepath.Dir(dst), root)
	return nil
}

// resolve returns the category root and destination path of rec, and
// whether the file exists. Records without a known category come from
// older ledgers; their destination is found by probing each category in
// deploy order.
func (i *Installer) resolve(rec ledger.FileRecord) (root, dst string, found bool) {
	rel := filepath.FromSlash(rec.Path)
	if workspace.IsCategory(rec.Category) {
		root = i.ws.CategoryDir(rec.Category)
		dst = filepath.Join(root, rel)
		return root, dst, fileExists(dst)
	}

	for _, cat := range workspace.Categories {
		candidate := filepath.Join(i.ws.CategoryDir(cat), rel)
		if fileExists(candidate) {
			i.logger.Debug("resolved legacy record by probing", "path", rec.Path, "category", cat)
			return i.ws.CategoryDir(cat), candidate, true
		}
	}
	root = i.ws.CategoryDir(workspace.Categories[0])
	return root, filepath.Join(root, rel), false
}

// pruneEmptyDirs removes dir and its parents while they are empty, stopping
// before root.
func pruneEmptyDirs(dir, root string) {
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
