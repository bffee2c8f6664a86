package project

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"verdict/internal/source"
	"verdict/internal/suppress"
	"verdict/internal/syntax"
)

// BundleSuffix marks analyzer input files on disk.
const BundleSuffix = ".tree.json"

// bundleJSON is the on-disk analyzer input: the original source text,
// the syntax tree a front end produced for it, and any inline
// suppression regions the front end extracted from comments.
type bundleJSON struct {
	Path         string            `json:"path"`
	Source       string            `json:"source"`
	Tree         json.RawMessage   `json:"tree"`
	Suppressions []suppressionJSON `json:"suppressions,omitempty"`
}

type suppressionJSON struct {
	ID    string `json:"id"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// LoadBundle reads one input file, registers its source text in fs,
// indexes its suppression regions and returns the decoded tree.
func LoadBundle(fsSet *source.FileSet, regions *suppress.Regions, path string) (*syntax.Tree, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bundle bundleJSON
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}
	if len(bundle.Tree) == 0 {
		return nil, fmt.Errorf("input %s: missing tree", path)
	}

	declared := bundle.Path
	if declared == "" {
		declared = strings.TrimSuffix(path, BundleSuffix)
	}
	fileID := fsSet.Add(declared, []byte(bundle.Source), 0)
	// the tree and suppressions determine results too, so the file's
	// digest covers the whole bundle, not just its source text
	fsSet.SetHash(fileID, sha256.Sum256(data))

	tree, err := syntax.DecodeJSON(bundle.Tree, fileID)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}

	if regions != nil {
		for _, s := range bundle.Suppressions {
			if s.ID == "" {
				s.ID = suppress.Wildcard
			}
			regions.Add(suppress.Region{
				ID:   s.ID,
				Span: source.Span{File: fileID, Start: s.Start, End: s.End},
			})
		}
	}
	return tree, nil
}

// CollectBundles expands paths into a sorted list of input files.
// Directories are walked recursively for *.tree.json entries; explicit
// file arguments are taken as-is.
func CollectBundles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, BundleSuffix) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}
