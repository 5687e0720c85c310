package tmppath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Path is a filesystem location backing a view.
type Path interface {
	// String returns the absolute filesystem path.
	String() string
	// Owned reports whether the holder is responsible for removing the path.
	Owned() bool
}

var (
	rootMu sync.RWMutex
	root   string
)

// SetRoot sets the directory new OutPaths are created under.
// An empty root selects os.TempDir.
func SetRoot(dir string) {
	rootMu.Lock()
	defer rootMu.Unlock()

	root = dir
}

// Root returns the directory new OutPaths are created under.
func Root() string {
	rootMu.RLock()
	defer rootMu.RUnlock()

	if root == "" {
		return os.TempDir()
	}

	return root
}

// InPath is a read-only reference to an existing location.
type InPath struct {
	path string
	// lender keeps a borrowed owned path from being cleaned up while in use.
	lender Path
}

// NewInPath wraps an existing location. The path is made absolute but is not
// checked for existence.
func NewInPath(path string) *InPath {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return &InPath{path: path}
}

// Borrow returns a read-only reference to p. The reference keeps p reachable
// but never removes or renames it.
func Borrow(p Path) *InPath {
	return &InPath{path: p.String(), lender: p}
}

func (p *InPath) String() string { return p.path }

// Owned always returns false.
func (p *InPath) Owned() bool { return false }

// OutPath is an owned temporary file or directory.
type OutPath struct {
	state *ownership
}

type ownership struct {
	mu       sync.Mutex
	path     string
	dir      bool
	released bool
}

// NewOutPath creates a temporary directory (dir=true) or empty file under
// Root. The prefix is used as the name pattern prefix.
func NewOutPath(dir bool, prefix string) (*OutPath, error) {
	var name string

	if dir {
		d, err := os.MkdirTemp(Root(), prefix+"*")
		if err != nil {
			return nil, fmt.Errorf("create temporary directory: %w", err)
		}

		name = d
	} else {
		f, err := os.CreateTemp(Root(), prefix+"*")
		if err != nil {
			return nil, fmt.Errorf("create temporary file: %w", err)
		}

		name = f.Name()

		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("create temporary file: %w", err)
		}
	}

	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}

	out := &OutPath{state: &ownership{path: name, dir: dir}}
	runtime.AddCleanup(out, func(s *ownership) { _ = s.remove() }, out.state)

	return out, nil
}

func (p *OutPath) String() string {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()

	return p.state.path
}

// Owned reports whether the path has not yet been released by MoveTo or Close.
func (p *OutPath) Owned() bool {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()

	return !p.state.released
}

// IsDir reports whether the path was created as a directory.
func (p *OutPath) IsDir() bool { return p.state.dir }

// MoveTo renames the owned location to dst and releases ownership. The
// location is renamed, never copied, so dst must be on the same filesystem.
func (p *OutPath) MoveTo(dst string) error {
	s := p.state

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return fmt.Errorf("move %s: %w", s.path, ErrReleased)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("move %s: %w", s.path, err)
	}

	if err := os.Rename(s.path, dst); err != nil {
		return fmt.Errorf("move %s: %w", s.path, err)
	}

	s.path = dst
	s.released = true

	return nil
}

// Close removes the location unless it was moved. Close is idempotent.
func (p *OutPath) Close() error {
	return p.state.remove()
}

// ErrReleased is returned when an OutPath is used after MoveTo or Close.
var ErrReleased = errors.New("temporary path already released")

func (s *ownership) remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}

	s.released = true

	if err := os.RemoveAll(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}

	return nil
}
