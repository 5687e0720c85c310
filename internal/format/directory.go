package format

import (
	"fmt"

	"viewcast/internal/diagnostic"
	"viewcast/internal/tmppath"
)

// DirectoryInstance is a directory format bound to a directory.
//
// A write-mode instance is owned by a single flow of control until it is
// moved or closed; concurrent writers are not supported. Read-mode instances
// may be shared by concurrent readers.
type DirectoryInstance struct {
	format *DirectoryFormat
	path   tmppath.Path
	mode   Mode
	conv   Converter
}

// NewDirectory creates a write-mode instance backed by a new owned temporary
// directory. conv converts the views handed to Set and Add.
func NewDirectory(d *DirectoryFormat, conv Converter) (*DirectoryInstance, error) {
	p, err := tmppath.NewOutPath(true, "q2-"+d.name+"-")
	if err != nil {
		return nil, err
	}

	return &DirectoryInstance{format: d, path: p, mode: ModeWrite, conv: conv}, nil
}

// OpenDirectory creates a read-mode instance over an existing directory.
func OpenDirectory(d *DirectoryFormat, path string, conv Converter) *DirectoryInstance {
	return &DirectoryInstance{format: d, path: tmppath.NewInPath(path), mode: ModeRead, conv: conv}
}

// AdoptDirectory creates a read-mode instance over p, taking over its
// ownership when p is an owned temporary path.
func AdoptDirectory(d *DirectoryFormat, p tmppath.Path, conv Converter) *DirectoryInstance {
	return &DirectoryInstance{format: d, path: p, mode: ModeRead, conv: conv}
}

// Format returns the directory format of the instance.
func (di *DirectoryInstance) Format() *DirectoryFormat { return di.format }

// Descriptor returns the directory format of the instance.
func (di *DirectoryInstance) Descriptor() Descriptor { return di.format }

// Path returns the directory path.
func (di *DirectoryInstance) Path() string { return di.path.String() }

// Backing returns the path object backing the instance.
func (di *DirectoryInstance) Backing() tmppath.Path { return di.path }

// Mode returns the current mode of the instance.
func (di *DirectoryInstance) Mode() Mode { return di.mode }

// Converter returns the converter used by the instance's fields.
func (di *DirectoryInstance) Converter() Converter { return di.conv }

// File binds the singleton file field name to the instance.
func (di *DirectoryInstance) File(name string) (*BoundFile, error) {
	f, ok := di.format.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", diagnostic.ErrConfiguration, di.format.name, name)
	}

	if f.IsCollection() {
		return nil, fmt.Errorf("%w: field %q of %s is a collection", diagnostic.ErrConfiguration, name, di.format.name)
	}

	return &BoundFile{inst: di, field: f}, nil
}

// Collection binds the file collection field name to the instance.
func (di *DirectoryInstance) Collection(name string) (*BoundFileCollection, error) {
	f, ok := di.format.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", diagnostic.ErrConfiguration, di.format.name, name)
	}

	if !f.IsCollection() {
		return nil, fmt.Errorf("%w: field %q of %s is not a collection", diagnostic.ErrConfiguration, name, di.format.name)
	}

	return &BoundFileCollection{inst: di, field: f}, nil
}

// MoveTo renames the owned directory to dst. Afterwards the instance is a
// read-mode view of dst and no longer owns it.
func (di *DirectoryInstance) MoveTo(dst string) error {
	out, ok := di.path.(*tmppath.OutPath)
	if !ok || !out.Owned() {
		return fmt.Errorf("move %s: %w", di.format.name, diagnostic.ErrReadOnly)
	}

	if err := out.MoveTo(dst); err != nil {
		return err
	}

	di.path = tmppath.NewInPath(dst)
	di.mode = ModeRead

	return nil
}

// Close removes the backing directory if the instance owns it.
func (di *DirectoryInstance) Close() error {
	if out, ok := di.path.(*tmppath.OutPath); ok {
		return out.Close()
	}

	return nil
}

func (di *DirectoryInstance) writable(op string) error {
	if di.mode != ModeWrite {
		return fmt.Errorf("%s %s: %w", op, di.format.name, diagnostic.ErrReadOnly)
	}

	return nil
}

func (di *DirectoryInstance) converter() (Converter, error) {
	if di.conv == nil {
		return nil, fmt.Errorf("%w: %s has no converter", diagnostic.ErrConfiguration, di.format.name)
	}

	return di.conv, nil
}
