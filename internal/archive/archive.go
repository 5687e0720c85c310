package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"viewcast/internal/diagnostic"
	"viewcast/internal/format"
	"viewcast/internal/tmppath"
)

const (
	// Version is the only archive layout version read and written.
	Version = "0.2.0"

	DataDir = "data"

	versionFile  = "VERSION"
	readmeFile   = "README.md"
	metadataFile = "metadata.yaml"
)

const readme = `# viewcast archive

This archive stores the files of a directory format instance together with
the name of the format and a unique identifier. The files are under data/.
`

var (
	// ErrUnsupportedVersion is returned for archives of another layout version.
	ErrUnsupportedVersion = errors.New("unsupported archive version")
	// ErrInvalidArchive is returned for zip files missing archive entries.
	ErrInvalidArchive = errors.New("invalid archive")
)

// Metadata describes an archived instance.
type Metadata struct {
	UUID   uuid.UUID
	Format string
}

type metadataYAML struct {
	UUID   string `yaml:"uuid"`
	Format string `yaml:"format"`
}

// FormatLookup resolves the format name recorded in an archive.
type FormatLookup func(name string) (format.Descriptor, bool)

// RootDir returns the archive root directory for a zip path.
func RootDir(zipPath string) string {
	base := filepath.Base(zipPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Save validates inst and writes it to zipPath under a new UUID.
func Save(inst *format.DirectoryInstance, zipPath string) (Metadata, error) {
	if err := inst.Validate(); err != nil {
		return Metadata{}, err
	}

	md := Metadata{UUID: uuid.New(), Format: inst.Format().Name()}

	fh, err := os.Create(zipPath)
	if err != nil {
		return Metadata{}, fmt.Errorf("save archive: %w", err)
	}

	err = write(fh, RootDir(zipPath), md, inst.Path())
	runtime.KeepAlive(inst)

	if err != nil {
		_ = fh.Close()
		_ = os.Remove(zipPath)

		return Metadata{}, fmt.Errorf("save archive %s: %w", zipPath, err)
	}

	if err := fh.Close(); err != nil {
		return Metadata{}, fmt.Errorf("save archive %s: %w", zipPath, err)
	}

	return md, nil
}

func write(w io.Writer, root string, md Metadata, dataDir string) error {
	zw := zip.NewWriter(w)

	meta, err := yaml.Marshal(metadataYAML{UUID: md.UUID.String(), Format: md.Format})
	if err != nil {
		return err
	}

	entries := []struct {
		name string
		data []byte
	}{
		{versionFile, []byte(Version + "\n")},
		{readmeFile, []byte(readme)},
		{metadataFile, meta},
	}

	for _, e := range entries {
		if err := writeEntry(zw, path.Join(root, e.name), bytes.NewReader(e.data)); err != nil {
			return err
		}
	}

	err = filepath.WalkDir(dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dataDir, p)
		if err != nil {
			return err
		}

		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()

		return writeEntry(zw, path.Join(root, DataDir, filepath.ToSlash(rel)), src)
	})
	if err != nil {
		return err
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, r io.Reader) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}

	_, err = io.Copy(w, r)

	return err
}

// Peek reads the version and metadata of an archive without extracting it.
func Peek(zipPath string) (Metadata, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return Metadata{}, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	return peek(&zr.Reader, RootDir(zipPath))
}

func peek(zr *zip.Reader, root string) (Metadata, error) {
	version, err := readEntry(zr, path.Join(root, versionFile))
	if err != nil {
		return Metadata{}, err
	}

	if v := strings.TrimRight(string(version), "\n"); v != Version {
		return Metadata{}, fmt.Errorf("%w %q, supported: %q", ErrUnsupportedVersion, v, Version)
	}

	raw, err := readEntry(zr, path.Join(root, metadataFile))
	if err != nil {
		return Metadata{}, err
	}

	var meta metadataYAML
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("%w: metadata: %v", ErrInvalidArchive, err)
	}

	id, err := uuid.Parse(meta.UUID)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: metadata uuid: %v", ErrInvalidArchive, err)
	}

	return Metadata{UUID: id, Format: meta.Format}, nil
}

func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, name, err)
	}
	defer f.Close()

	return io.ReadAll(f)
}

// Load extracts an archive into an owned temporary directory and returns a
// validated read-mode instance of the recorded format. Closing the instance
// removes the extracted files.
func Load(zipPath string, lookup FormatLookup, conv format.Converter) (*format.DirectoryInstance, Metadata, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	root := RootDir(zipPath)

	md, err := peek(&zr.Reader, root)
	if err != nil {
		return nil, Metadata{}, err
	}

	desc, ok := lookup(md.Format)
	if !ok {
		return nil, md, fmt.Errorf("%w: unknown format %q", diagnostic.ErrConfiguration, md.Format)
	}

	df, ok := desc.(*format.DirectoryFormat)
	if !ok {
		return nil, md, fmt.Errorf("%w: %s is not a directory format", diagnostic.ErrConfiguration, md.Format)
	}

	out, err := tmppath.NewOutPath(true, "q2-archive-")
	if err != nil {
		return nil, md, err
	}

	if err := extract(&zr.Reader, path.Join(root, DataDir)+"/", out.String()); err != nil {
		return nil, md, errors.Join(fmt.Errorf("extract %s: %w", zipPath, err), out.Close())
	}

	inst := format.AdoptDirectory(df, out, conv)
	if err := inst.Validate(); err != nil {
		return nil, md, errors.Join(err, inst.Close())
	}

	return inst, md, nil
}

func extract(zr *zip.Reader, prefix, dst string) error {
	for _, f := range zr.File {
		rel, ok := strings.CutPrefix(f.Name, prefix)
		if !ok || rel == "" || strings.HasSuffix(f.Name, "/") {
			continue
		}

		if !filepath.IsLocal(rel) {
			return fmt.Errorf("%w: entry %q escapes the data directory", ErrInvalidArchive, f.Name)
		}

		if err := extractFile(f, filepath.Join(dst, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
