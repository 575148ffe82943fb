package fs

import (
	"io"
	"os"
)

// File is the part of *os.File a blob store needs: blobs are written once,
// synced, then read back at offsets.
type File interface {
	io.Writer
	io.ReaderAt
	io.Closer
	Sync() error
	Stat() (os.FileInfo, error)
}

// FileSystem holds the directory operations of an atomic Put (create a
// temp file, rename it over the target) and of listing and deleting blobs.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
}

var _ File = (*os.File)(nil)

// LocalFS forwards to the os package.
type LocalFS struct{}

// OpenFile opens name with os.OpenFile.
func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (LocalFS) Remove(name string) error { return os.Remove(name) }

func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (LocalFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

// Default is the file system of a LocalStore without WithFileSystem.
var Default FileSystem = LocalFS{}
