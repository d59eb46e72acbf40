package merge

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/vibery/internal/docstore"
	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/report"
)

// Result summarizes a file-level merge.
type Result struct {
	// Fragments lists the fragment files read, sorted by name.
	Fragments []string

	// Hooks lists appended hook handlers. Empty for MCP merges.
	Hooks []HookAddition

	// Servers lists added MCP server names. Empty for hook merges.
	Servers []string

	// Saved reports whether the target document was written.
	Saved bool
}

// Added returns the number of hook handlers or servers added.
func (r Result) Added() int {
	return len(r.Hooks) + len(r.Servers)
}

// MergeHooks folds every *.json fragment in hooksDir into the settings
// document at settingsPath. A missing hooksDir is a no-op. In preview mode
// nothing is written.
func MergeHooks(ctx context.Context, hooksDir, settingsPath string, preview bool, rep *report.Reporter) (Result, error) {
	if rep == nil {
		rep = report.Discard()
	}
	return mergeDir(ctx, hooksDir, settingsPath, preview, func(target, fragment docstore.Document, res *Result) {
		for _, a := range Hooks(target, fragment) {
			res.Hooks = append(res.Hooks, a)
			if preview {
				rep.Dry("hook: %s", a.Event)
			} else {
				rep.Step("+ hook: %s", a.Event)
			}
		}
	})
}

// MergeMCPs folds every *.json fragment in mcpsDir into the MCP
// configuration document at mcpPath. A missing mcpsDir is a no-op. In
// preview mode nothing is written.
func MergeMCPs(ctx context.Context, mcpsDir, mcpPath string, preview bool, rep *report.Reporter) (Result, error) {
	if rep == nil {
		rep = report.Discard()
	}
	return mergeDir(ctx, mcpsDir, mcpPath, preview, func(target, fragment docstore.Document, res *Result) {
		for _, name := range MCPs(target, fragment) {
			res.Servers = append(res.Servers, name)
			if preview {
				rep.Dry("mcp: %s", name)
			} else {
				rep.Step("+ mcp: %s", name)
			}
		}
	})
}

type foldFunc func(target, fragment docstore.Document, res *Result)

func mergeDir(ctx context.Context, dir, targetPath string, preview bool, fold foldFunc) (Result, error) {
	fragments, err := listFragments(dir)
	if err != nil {
		return Result{}, err
	}
	if fragments == nil {
		return Result{}, nil
	}

	res := Result{Fragments: fragments}
	target := docstore.Load(targetPath)
	for _, path := range fragments {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		fold(target, docstore.Load(path), &res)
	}

	if preview {
		return res, nil
	}
	if err := docstore.Save(targetPath, target); err != nil {
		return res, errors.Wrapf(err, "saving %s", targetPath)
	}
	res.Saved = true
	return res, nil
}

// listFragments returns the *.json files directly inside dir, sorted. It
// returns nil when dir does not exist.
func listFragments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	paths := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
