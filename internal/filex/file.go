// Package filex holds the filesystem side of export and import: a
// directory that envelopes are written to and read from, and atomic file
// writes.
package filex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DownloadsSubdir is the folder created under the downloads directory for
// exported items.
const DownloadsSubdir = "Inventory"

var ErrBadName = errors.New("file name must not contain a path")

// EnsureDir creates dir and its parents if needed.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// WriteFileAtomic writes data to a uuid-named temp file next to path and
// renames it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp := filepath.Join(dir, ".tmp-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// IsTempName reports whether name is a WriteFileAtomic temp file.
func IsTempName(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".tmp-")
}

// Dir is a directory used as an export sink and an import source.
// The zero value resolves refs against the working directory.
type Dir struct {
	Path string
}

func NewDir(path string) Dir {
	return Dir{Path: path}
}

// DownloadsDir is <base>/Inventory.
func DownloadsDir(base string) Dir {
	return Dir{Path: filepath.Join(base, DownloadsSubdir)}
}

// Put writes data as name inside the directory and returns the full path.
func (d Dir) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	path := filepath.Join(d.Path, name)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Get reads ref. Relative refs are taken inside the directory.
func (d Dir) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.resolve(ref))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

func (d Dir) resolve(ref string) string {
	if d.Path == "" || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(d.Path, ref)
}

// MoveInto moves the file at src into dir, keeping its base name. If a file
// with that name already exists a uuid suffix is added. It returns the new
// path.
func MoveInto(src, dir string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	base := filepath.Base(src)
	dst := filepath.Join(dir, base)
	if _, err := os.Stat(dst); err == nil {
		ext := filepath.Ext(base)
		dst = filepath.Join(dir, strings.TrimSuffix(base, ext)+"-"+uuid.NewString()[:8]+ext)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", src, err)
	}
	return dst, nil
}

// File is a sink that writes to one fixed path, whatever name it is given.
type File struct {
	Path string
}

func (f File) Put(ctx context.Context, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := WriteFileAtomic(f.Path, data); err != nil {
		return "", err
	}
	return f.Path, nil
}
