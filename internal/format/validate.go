package format

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"viewcast/internal/diagnostic"
)

// Validate checks that the directory matches its declared layout:
//   - every singleton file field matches exactly one path
//   - every collection field matches at least one path
//   - every matched file passes its format's content check
//   - no file is left unmatched and no directory is empty
//
// Fields are processed in declaration order and a file consumed by an
// earlier field is not offered to later ones; a later field that also
// matches it is reported as ambiguous. All structural problems are reported
// together in a *diagnostic.StructuralError; filesystem failures are returned
// as they occur. The directory must not be mutated concurrently.
func (di *DirectoryInstance) Validate() error {
	err := validateDirectory(di.format, di.Path())
	runtime.KeepAlive(di)

	return err
}

func validateDirectory(d *DirectoryFormat, root string) error {
	var diags diagnostic.Diagnostics

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("validate %s: %w", d.name, err)
	}

	if !info.IsDir() {
		diags.AddError(diagnostic.CodeNotADirectory, "expected a directory", d.name, root)
		return diagnostic.NewStructuralError(d.name, root, diags)
	}

	listing, err := listTree(root)
	if err != nil {
		return fmt.Errorf("validate %s: %w", d.name, err)
	}

	for _, dir := range listing.emptyDirs {
		diags.AddError(diagnostic.CodeEmptyDirectory, "empty directories are not supported", d.name, dir)
	}

	// consumed maps a path to the field that claimed it.
	consumed := make(map[string]string, len(listing.files))

	for _, f := range d.fields {
		var matched []string

		for _, rel := range listing.files {
			if !f.Match(rel) {
				continue
			}

			if owner, ok := consumed[rel]; ok {
				diags.AddError(diagnostic.CodeAmbiguousFile,
					fmt.Sprintf("file already claimed by field %q", owner), f.name, rel)

				continue
			}

			matched = append(matched, rel)
		}

		if len(matched) == 0 {
			diags.AddError(diagnostic.CodeMissingFile,
				fmt.Sprintf("no file matches %s %q", f.kind, f.pattern), f.name, f.pattern)
		}

		for _, rel := range matched {
			consumed[rel] = f.name

			if err := f.format.check(filepath.Join(root, filepath.FromSlash(rel)), rel, &diags); err != nil {
				return fmt.Errorf("validate %s: %w", d.name, err)
			}
		}
	}

	for _, rel := range listing.files {
		if _, ok := consumed[rel]; !ok {
			diags.AddError(diagnostic.CodeUnrecognizedFile,
				"file is not recognized by any field", d.name, rel)
		}
	}

	if diags.HasErrors() {
		return diagnostic.NewStructuralError(d.name, root, diags)
	}

	return nil
}

type treeListing struct {
	files     []string
	emptyDirs []string
}

// listTree returns the sorted slash-separated relative paths of every
// non-directory entry under root, plus every empty subdirectory.
func listTree(root string) (*treeListing, error) {
	out := &treeListing{}

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			out.files = append(out.files, filepath.ToSlash(rel))
			return nil
		}

		if p == root {
			return nil
		}

		children, err := os.ReadDir(p)
		if err != nil {
			return err
		}

		if len(children) == 0 {
			out.emptyDirs = append(out.emptyDirs, filepath.ToSlash(rel))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out.files)
	sort.Strings(out.emptyDirs)

	return out, nil
}
