// Package fileapp serves files and file trees as weft apps, with ETag-based
// conditional requests, byte-range responses, and a canonical-path
// containment check guarding the tree root.
package fileapp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sagarc03/weft"
)

// FileInfo is the slice of stat output the responders need: enough to
// derive an ETag and pick a handler.
type FileInfo struct {
	Size    int64
	ModTime int64 // unix nanoseconds
	Inode   uint64
	IsFile  bool
	IsDir   bool
}

// FileSystem is the filesystem collaborator the responders run against.
// The OS implementation is the default; tests substitute their own.
type FileSystem interface {
	Stat(path string) (FileInfo, error)
	// Open opens path for reading, restricted to r when r is non-nil.
	Open(path string, r *weft.ByteRange) (io.ReadCloser, error)
	// Canonical resolves symlinks and dot segments to an absolute path.
	Canonical(path string) (string, error)
	Join(parts ...string) string
}

// OS is the operating-system backed FileSystem.
var OS FileSystem = osFS{}

type osFS struct{}

func (osFS) Stat(path string) (FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Size:    fi.Size(),
		ModTime: fi.ModTime().UnixNano(),
		Inode:   inode(fi),
		IsFile:  fi.Mode().IsRegular(),
		IsDir:   fi.IsDir(),
	}, nil
}

func (osFS) Open(path string, r *weft.ByteRange) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return f, nil
	}
	if _, err := f.Seek(r.Begin, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("seek to range start: %w", err)
	}
	return &sectionReader{Reader: io.LimitReader(f, r.Len()), file: f}, nil
}

func (osFS) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (osFS) Join(parts ...string) string {
	return filepath.Join(parts...)
}

// sectionReader is a range-limited file reader that still closes the
// underlying file.
type sectionReader struct {
	io.Reader
	file *os.File
}

func (s *sectionReader) Close() error { return s.file.Close() }
