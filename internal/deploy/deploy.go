// Package deploy copies a kit's file-bearing subdirectories into the
// workspace and records the provenance of every file.
package deploy

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/fingerprint"
	"github.com/thoreinstein/vibery/internal/ledger"
	"github.com/thoreinstein/vibery/internal/report"
)

// Request describes one category deployment.
type Request struct {
	// Source is the kit subdirectory to deploy, e.g. <kit>/commands.
	Source string

	// Dest is the category root in the workspace, e.g. .claude/commands.
	Dest string

	// KitID is recorded as the owner of every deployed file.
	KitID string

	// Category is recorded on every file so uninstall can find it again.
	Category string

	// Preview reports what would be copied without writing anything.
	Preview bool

	// DisplayRoot, when set, is the directory destination paths are
	// reported relative to.
	DisplayRoot string

	// Reporter receives progress lines. Nil discards them.
	Reporter *report.Reporter

	// Logger receives debug output. Nil uses slog.Default.
	Logger *slog.Logger
}

// Deploy copies every regular file under req.Source into req.Dest,
// preserving relative paths, permissions, and modification times. Files
// whose own name starts with a dot are skipped; directories are always
// descended. It returns one provenance record per file in walk order. A
// missing source directory deploys nothing.
func Deploy(ctx context.Context, req Request) ([]ledger.FileRecord, error) {
	rep := req.Reporter
	if rep == nil {
		rep = report.Discard()
	}
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}

	records := []ledger.FileRecord{}

	info, err := os.Stat(req.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return nil, errors.Wrapf(err, "reading %s", req.Source)
	}
	if !info.IsDir() {
		return nil, errors.Newf("deploy source %s is not a directory", req.Source)
	}

	err = filepath.WalkDir(req.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == req.Source {
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			logger.Debug("skipping hidden file", "path", path)
			return nil
		}
		if !d.Type().IsRegular() {
			logger.Debug("skipping non-regular file", "path", path, "type", d.Type().String())
			return nil
		}

		rel, err := filepath.Rel(req.Source, path)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", path)
		}
		dst := filepath.Join(req.Dest, rel)

		var checksum string
		if req.Preview {
			checksum = fingerprint.File(path)
			rep.Dry("%s -> %s", filepath.ToSlash(rel), display(req.DisplayRoot, dst))
		} else {
			checksum, err = copyFile(path, dst)
			if err != nil {
				return errors.Wrapf(err, "deploying %s", rel)
			}
			rep.Step("+ %s", filepath.ToSlash(rel))
		}

		records = append(records, ledger.FileRecord{
			Path:      filepath.ToSlash(rel),
			Checksum:  checksum,
			Ownership: ledger.OwnershipKit,
			Kit:       req.KitID,
			Category:  req.Category,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// copyFile copies src to dst, creating parent directories, and returns the
// fingerprint of the copied bytes. The source's permission bits and
// modification time are applied to dst.
func copyFile(src, dst string) (string, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", errors.Wrap(err, "stat source file")
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "creating destination directory")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return "", errors.Wrap(err, "creating destination file")
	}

	// Fingerprint while copying.
	h := fingerprint.New()
	n, err := io.Copy(io.MultiWriter(dstFile, h), srcFile)
	if err != nil {
		dstFile.Close()
		return "", errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return "", errors.Wrap(err, "setting permissions")
	}
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return "", errors.Wrap(err, "setting modification time")
	}

	return fingerprint.FromHash(h, n), nil
}

func display(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
