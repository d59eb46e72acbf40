package installer

import (
	"context"
	"os"

	"github.com/thoreinstein/vibery/internal/deploy"
	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/kit"
	"github.com/thoreinstein/vibery/internal/ledger"
	"github.com/thoreinstein/vibery/internal/merge"
	"github.com/thoreinstein/vibery/internal/paths"
	"github.com/thoreinstein/vibery/internal/workspace"
)

// InstallResult describes one install.
type InstallResult struct {
	Kit kit.Manifest

	// Change classifies the install against a previously installed version.
	Change kit.Change

	// PreviousVersion is the version recorded before this install, if any.
	PreviousVersion string

	// Files lists provenance records for every deployed file.
	Files []ledger.FileRecord

	Hooks merge.Result
	MCPs  merge.Result

	// SectionInserted reports whether a documentation section was added.
	SectionInserted bool

	Preview bool
}

// Install installs kit id into the workspace. When preview is true nothing
// is written and the ledger is left unchanged.
//
// Re-installing a kit replaces its ledger entry wholesale. Files that an
// earlier version deployed and the new version no longer ships are left in
// place and drop out of the ledger.
func (i *Installer) Install(ctx context.Context, id string, preview bool) (*InstallResult, error) {
	k, err := i.src.Load(id)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Load(i.ws.MetadataPath())
	if err != nil {
		return nil, err
	}

	res := &InstallResult{Kit: k.Manifest, Preview: preview, Files: []ledger.FileRecord{}}
	if prev, ok := l.Get(id); ok {
		res.PreviousVersion = prev.Version
	}
	res.Change = kit.Classify(res.PreviousVersion, k.Manifest.Version)

	if preview {
		i.rep.Header("[DRY RUN] Installing %s v%s...", id, k.Manifest.Version)
	} else {
		i.rep.Header("Installing %s v%s...", id, k.Manifest.Version)
	}
	if res.Change != kit.ChangeInstall {
		i.rep.Step("%s: %s -> %s", res.Change, res.PreviousVersion, k.Manifest.Version)
	}
	i.logger.Debug("resolved kit", "kit", id, "dir", k.Dir, "version", k.Manifest.Version, "change", res.Change)

	if !preview {
		if err := paths.EnsureDir(i.ws.ClaudeDir(), paths.DefaultDirPerm); err != nil {
			return nil, errors.Wrap(err, "creating workspace directory")
		}
	}

	for _, cat := range workspace.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := deploy.Deploy(ctx, deploy.Request{
			Source:      k.SubDir(cat),
			Dest:        i.ws.CategoryDir(cat),
			KitID:       id,
			Category:    cat,
			Preview:     preview,
			DisplayRoot: i.ws.Root,
			Reporter:    i.rep,
			Logger:      i.logger,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "deploying %s", cat)
		}
		res.Files = append(res.Files, records...)
	}

	res.Hooks, err = merge.MergeHooks(ctx, k.SubDir(kit.HooksDirName), i.ws.SettingsPath(), preview, i.rep)
	if err != nil {
		return nil, errors.Wrap(err, "merging hooks")
	}
	res.MCPs, err = merge.MergeMCPs(ctx, k.SubDir(kit.MCPsDirName), i.ws.MCPPath(), preview, i.rep)
	if err != nil {
		return nil, errors.Wrap(err, "merging MCP servers")
	}

	content, err := k.Prepend()
	if err != nil {
		return nil, err
	}
	if content != "" {
		res.SectionInserted, err = i.sections().InsertSection(id, content, preview, i.rep)
		if err != nil {
			return nil, errors.Wrap(err, "updating documentation")
		}
	}

	if preview {
		i.rep.Success("Dry run complete for %s (%d files)", id, len(res.Files))
		return res, nil
	}

	l.Put(id, ledger.Entry{
		Version:     k.Manifest.Version,
		InstalledAt: i.timestamp(),
		Files:       res.Files,
	})
	if err := l.Save(); err != nil {
		return nil, err
	}

	i.rep.Success("Installed %s v%s (%d files)", id, k.Manifest.Version, len(res.Files))
	return res, nil
}

// InstallAll installs every kit in ids in order. A failing kit is reported
// and the remaining kits are still installed; the returned error joins the
// failures.
func (i *Installer) InstallAll(ctx context.Context, ids []string, preview bool) error {
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := i.Install(ctx, id, preview); err != nil {
			i.rep.Fail("%s: %v", id, err)
			i.logger.Debug("kit install failed", "kit", id, "error", err)
			errs = append(errs, errors.Wrapf(err, "installing %q", id))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// fileExists reports whether path names an existing non-directory entry.
func fileExists(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && !info.IsDir()
}
