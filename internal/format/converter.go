package format

import (
	"viewcast/internal/common"
	"viewcast/internal/tmppath"
)

// Conversion converts a view into another representation.
type Conversion func(view any) (any, error)

// Converter resolves conversions between view types. Format instances hold
// one so that fields can be written from, and read as, arbitrary views.
type Converter interface {
	Convert(from, to ViewType) (Conversion, error)
}

// Args carries the keyword context handed to a collection's path maker.
type Args map[string]any

// Mode tells whether an instance accepts writes.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// String returns "r" or "w".
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWrite:
		return "w"
	default:
		return common.UnknownStr
	}
}

// Instance is implemented by *FileInstance and *DirectoryInstance.
type Instance interface {
	Descriptor() Descriptor
	Path() string
	Backing() tmppath.Path
	Mode() Mode
	Validate() error
	Close() error
}
