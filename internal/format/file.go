package format

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"viewcast/internal/diagnostic"
	"viewcast/internal/tmppath"
)

// SniffFunc checks that r holds content of a file format. A nil error means
// the content is accepted.
type SniffFunc func(r io.Reader) error

// FileFormat describes a single-file on-disk format.
type FileFormat struct {
	name  string
	sniff SniffFunc
}

// NewFileFormat declares a file format. A nil sniff accepts any content.
func NewFileFormat(name string, sniff SniffFunc) (*FileFormat, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: file format requires a name", diagnostic.ErrConfiguration)
	}

	return &FileFormat{name: name, sniff: sniff}, nil
}

// MustFileFormat is like NewFileFormat but panics on error.
func MustFileFormat(name string, sniff SniffFunc) *FileFormat {
	f, err := NewFileFormat(name, sniff)
	if err != nil {
		panic(err)
	}

	return f
}

// Name returns the format name.
func (f *FileFormat) Name() string { return f.name }

// ViewType returns the file-format view type of f.
func (f *FileFormat) ViewType() ViewType {
	return ViewType{tag: TagFileFormat, file: f}
}

func (f *FileFormat) String() string { return f.name }

// check runs the content check on the file at path. relpath names the file
// in structural errors.
func (f *FileFormat) check(path, relpath string, diags *diagnostic.Diagnostics) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		diags.AddError(diagnostic.CodeInvalidContent, "expected a file, found a directory", f.name, relpath)
		return nil
	}

	if f.sniff == nil {
		return nil
	}

	if err := f.sniff(fh); err != nil {
		diags.AddError(diagnostic.CodeInvalidContent,
			fmt.Sprintf("does not appear to be a %s file: %v", f.name, err), f.name, relpath)
	}

	return nil
}

// FileInstance is a file format bound to a path.
type FileInstance struct {
	format *FileFormat
	path   tmppath.Path
	mode   Mode
	// parent keeps the enclosing directory instance, and so its owned
	// temporary directory, alive while a member file is in use.
	parent *DirectoryInstance
}

// NewFile creates a write-mode instance backed by a new owned temporary file.
func NewFile(f *FileFormat) (*FileInstance, error) {
	p, err := tmppath.NewOutPath(false, "q2-"+f.name+"-")
	if err != nil {
		return nil, err
	}

	return &FileInstance{format: f, path: p, mode: ModeWrite}, nil
}

// OpenFile creates a read-mode instance over an existing file. The file is
// never removed or renamed through the instance.
func OpenFile(f *FileFormat, path string) *FileInstance {
	return &FileInstance{format: f, path: tmppath.NewInPath(path), mode: ModeRead}
}

// AdoptFile creates a read-mode instance over p. When p is an owned
// temporary path the instance takes over its ownership.
func AdoptFile(f *FileFormat, p tmppath.Path) *FileInstance {
	return &FileInstance{format: f, path: p, mode: ModeRead}
}

// Format returns the file format of the instance.
func (fi *FileInstance) Format() *FileFormat { return fi.format }

// Descriptor returns the file format of the instance.
func (fi *FileInstance) Descriptor() Descriptor { return fi.format }

// Path returns the filesystem path of the instance.
func (fi *FileInstance) Path() string { return fi.path.String() }

// Backing returns the path object backing the instance.
func (fi *FileInstance) Backing() tmppath.Path { return fi.path }

// Mode returns the mode the instance was created in.
func (fi *FileInstance) Mode() Mode { return fi.mode }

// Open opens the backing file for reading.
func (fi *FileInstance) Open() (io.ReadCloser, error) {
	fh, err := os.Open(fi.Path())
	runtime.KeepAlive(fi)

	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fi.format.name, err)
	}

	return fh, nil
}

// Create truncates the backing file and opens it for writing. It fails with
// ErrReadOnly on read-mode instances.
func (fi *FileInstance) Create() (io.WriteCloser, error) {
	if fi.mode != ModeWrite {
		return nil, fmt.Errorf("write %s: %w", fi.format.name, diagnostic.ErrReadOnly)
	}

	fh, err := os.Create(fi.Path())
	runtime.KeepAlive(fi)

	if err != nil {
		return nil, fmt.Errorf("create %s: %w", fi.format.name, err)
	}

	return fh, nil
}

// Validate runs the format's content check over the backing file.
func (fi *FileInstance) Validate() error {
	defer runtime.KeepAlive(fi)

	var diags diagnostic.Diagnostics
	if err := fi.format.check(fi.Path(), fi.Path(), &diags); err != nil {
		return err
	}

	if diags.HasErrors() {
		return diagnostic.NewStructuralError(fi.format.name, fi.Path(), diags)
	}

	return nil
}

// Close removes the backing file if the instance owns it.
func (fi *FileInstance) Close() error {
	if out, ok := fi.path.(*tmppath.OutPath); ok {
		return out.Close()
	}

	return nil
}

// relocate places the instance's file at dst. Owned files are renamed,
// borrowed files are copied.
func (fi *FileInstance) relocate(dst string) error {
	if out, ok := fi.path.(*tmppath.OutPath); ok && out.Owned() {
		return out.MoveTo(dst)
	}

	err := copyFile(fi.Path(), dst)
	runtime.KeepAlive(fi)

	return err
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	return nil
}
