package format

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"viewcast/internal/diagnostic"
)

// BoundFile is a singleton file field bound to a directory instance.
type BoundFile struct {
	inst  *DirectoryInstance
	field *Field
}

// Field returns the bound field.
func (b *BoundFile) Field() *Field { return b.field }

// Path returns the absolute path of the file.
func (b *BoundFile) Path() string {
	return filepath.Join(b.inst.Path(), filepath.FromSlash(b.field.pattern))
}

// Set converts view from view type vt into the field's format and places the
// result at the field's path, replacing any previous content.
func (b *BoundFile) Set(view any, vt ViewType) error {
	if err := b.inst.writable("set " + b.field.name); err != nil {
		return err
	}

	return writeMember(b.inst, b.field, view, vt, b.Path())
}

// View reads the file and converts it to view type vt.
func (b *BoundFile) View(vt ViewType) (any, error) {
	conv, err := readConversion(b.inst, b.field, vt)
	if err != nil {
		return nil, err
	}

	return conv(b.Open())
}

// Open returns a read-mode instance over the file.
func (b *BoundFile) Open() *FileInstance {
	fi := OpenFile(b.field.format, b.Path())
	fi.parent = b.inst

	return fi
}

// BoundFileCollection is a file collection field bound to a directory instance.
type BoundFileCollection struct {
	inst  *DirectoryInstance
	field *Field
}

// Field returns the bound field.
func (b *BoundFileCollection) Field() *Field { return b.field }

// Add converts view from view type vt and stores it as a new member at the
// path produced by the field's path maker. Add never overwrites: an existing
// member at that path is an error matching fs.ErrExist.
func (b *BoundFileCollection) Add(view any, vt ViewType, args Args) error {
	return b.put("add", view, vt, args, false)
}

// Set is like Add but replaces a member already present at the produced path.
func (b *BoundFileCollection) Set(view any, vt ViewType, args Args) error {
	return b.put("set", view, vt, args, true)
}

func (b *BoundFileCollection) put(op string, view any, vt ViewType, args Args, overwrite bool) error {
	if err := b.inst.writable(op + " " + b.field.name); err != nil {
		return err
	}

	rel, err := b.field.pathMaker(b.inst, args)
	if err != nil {
		return fmt.Errorf("path maker for %q: %w", b.field.name, err)
	}

	if err := checkMemberPath(b.field, rel); err != nil {
		return err
	}

	dst := filepath.Join(b.inst.Path(), filepath.FromSlash(rel))

	if !overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%s %s/%s: %w", op, b.field.name, rel, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s %s/%s: %w", op, b.field.name, rel, err)
		}
	}

	return writeMember(b.inst, b.field, view, vt, dst)
}

// Paths returns the sorted relative paths currently matching the field.
func (b *BoundFileCollection) Paths() ([]string, error) {
	listing, err := listTree(b.inst.Path())
	runtime.KeepAlive(b.inst)

	if err != nil {
		return nil, err
	}

	var out []string

	for _, rel := range listing.files {
		if b.field.Match(rel) {
			out = append(out, rel)
		}
	}

	return out, nil
}

// View snapshots the members present now, in sorted relative-path order, and
// returns a sequence converting each one to view type vt on demand. Calling
// View again re-scans the directory.
func (b *BoundFileCollection) View(vt ViewType) (*Sequence, error) {
	conv, err := readConversion(b.inst, b.field, vt)
	if err != nil {
		return nil, err
	}

	rels, err := b.Paths()
	if err != nil {
		return nil, err
	}

	return &Sequence{inst: b.inst, rels: rels, format: b.field.format, conv: conv}, nil
}

// Sequence is a finite, restartable sequence of converted collection members.
type Sequence struct {
	inst   *DirectoryInstance
	rels   []string
	format *FileFormat
	conv   Conversion
}

// Len returns the number of members.
func (s *Sequence) Len() int { return len(s.rels) }

// Paths returns the relative member paths in sequence order.
func (s *Sequence) Paths() []string { return append([]string(nil), s.rels...) }

// At converts the i-th member.
func (s *Sequence) At(i int) (any, error) {
	if i < 0 || i >= len(s.rels) {
		return nil, fmt.Errorf("sequence index %d out of range [0,%d)", i, len(s.rels))
	}

	fi := OpenFile(s.format, filepath.Join(s.inst.Path(), filepath.FromSlash(s.rels[i])))
	fi.parent = s.inst

	return s.conv(fi)
}

// All yields every member in order. Each call starts from the first member.
// Iteration stops after the first error.
func (s *Sequence) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for i := range s.rels {
			v, err := s.At(i)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Values converts every member.
func (s *Sequence) Values() ([]any, error) {
	out := make([]any, 0, len(s.rels))

	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Collect converts every member of s and asserts each result to T.
func Collect[T any](s *Sequence) ([]T, error) {
	out := make([]T, 0, s.Len())

	for v, err := range s.All() {
		if err != nil {
			return nil, err
		}

		t, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("%w: sequence member is %T", diagnostic.ErrTypeMismatch, v)
		}

		out = append(out, t)
	}

	return out, nil
}

func checkMemberPath(f *Field, rel string) error {
	switch {
	case rel == "", path.IsAbs(rel), path.Clean(rel) != rel, rel == "..", strings.HasPrefix(rel, "../"):
		return fmt.Errorf("%w: path maker for %q returned invalid path %q",
			diagnostic.ErrConfiguration, f.name, rel)
	case !f.Match(rel):
		return fmt.Errorf("%w: path maker for %q returned %q, which does not match %q",
			diagnostic.ErrConfiguration, f.name, rel, f.pattern)
	}

	return nil
}

func writeMember(inst *DirectoryInstance, f *Field, view any, vt ViewType, dst string) error {
	c, err := inst.converter()
	if err != nil {
		return err
	}

	conv, err := c.Convert(vt, f.format.ViewType())
	if err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}

	out, err := conv(view)
	if err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}

	fi, ok := out.(*FileInstance)
	if !ok {
		return fmt.Errorf("write %s: %w: conversion produced %T", f.name, diagnostic.ErrTypeMismatch, out)
	}

	// dst lies inside inst, which must outlive the move.
	defer runtime.KeepAlive(inst)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}

	if err := fi.relocate(dst); err != nil {
		return fmt.Errorf("write %s: %w", f.name, err)
	}

	return nil
}

func readConversion(inst *DirectoryInstance, f *Field, vt ViewType) (Conversion, error) {
	c, err := inst.converter()
	if err != nil {
		return nil, err
	}

	conv, err := c.Convert(f.format.ViewType(), vt)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", f.name, err)
	}

	return conv, nil
}
