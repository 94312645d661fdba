package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

var _ types.Persister = (*File)(nil)

// ErrUnknownFormat is returned by Load for files written by something else.
var ErrUnknownFormat = errors.New("unrecognized store format")

// File persists the store to a single file at Path.
type File struct {
	Path string
}

// NewFile returns a File persister for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Save writes the whole store, replacing any previous content. The write
// goes through a temp file, fsync and rename so a reader never observes a
// partially written file.
func (f *File) Save(s types.Store) error {
	body, err := json.MarshalIndent(toJSON(s), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	buf.Write(body)
	buf.WriteByte('\n')
	return WriteAtomic(f.Path, buf.Bytes())
}

// Load reads the store. A missing file yields an empty store.
func (f *File) Load() (types.Store, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return types.NewStore(), nil
	}
	if err != nil {
		return types.Store{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	var sj storeJSON
	if err := json.Unmarshal(stripComments(data), &sj); err != nil {
		return types.Store{}, fmt.Errorf("decoding %s: %w", f.Path, err)
	}
	if sj.Format != FormatName {
		return types.Store{}, fmt.Errorf("%w: %q in %s", ErrUnknownFormat, sj.Format, f.Path)
	}
	return fromJSON(sj), nil
}

// stripComments drops leading lines that start with '#'.
func stripComments(data []byte) []byte {
	for len(data) > 0 && data[0] == '#' {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil
		}
		data = data[i+1:]
	}
	return data
}

// WriteAtomic writes data to path using the temp-file, fsync, rename
// pattern. The CLI also uses it to write edited documents back.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
