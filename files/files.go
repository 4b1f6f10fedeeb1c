// files is a package with the filesystem side of saving images:
// directory creation, duplicate lookup and chunked writes.
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ChunkSize is the size of a single write when saving a file.
const ChunkSize = 100_000

var ErrEmpty = errors.New("empty parameter provided")

// Exists reports whether dir contains an entry whose name ends with name+extension.
// A missing directory is not an error, nothing has been saved there yet.
func Exists(dir, name, extension string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: couldn't read directory(name=%s)", err, dir)
	}

	suffix := name + extension
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), suffix) {
			return true, nil
		}
	}

	return false, nil
}

// EnsureDir creates dir and its parents. An existing directory is fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: couldn't create directory(name=%s)", err, dir)
	}
	return nil
}

// Save writes r to dir/filename in ChunkSize pieces, replacing a file with the same name.
// dir must already exist, see EnsureDir.
func Save(dir, filename string, r io.Reader) (int64, error) {
	if filename == "" {
		return 0, fmt.Errorf("%w: filename can not be empty", ErrEmpty)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: couldn't create file(name=%s)", err, path)
	}
	defer file.Close()

	n, err := writeChunks(file, r)
	if err != nil {
		return n, fmt.Errorf("%w: couldn't write file(name=%s)", err, path)
	}

	return n, file.Close()
}

func writeChunks(w io.Writer, r io.Reader) (int64, error) {
	var (
		buf     = make([]byte, ChunkSize)
		written int64
	)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, werr
			}
		}
		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return written, nil
		default:
			return written, err
		}
	}
}
