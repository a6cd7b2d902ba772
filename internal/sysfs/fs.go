// Package sysfs provides an abstraction over file system reads to allow for easier testing.
package sysfs

import "os"

// FileSystem abstracts the read operations used against sysfs nodes and
// fixture files. Tests can replace `FS` with a fake implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type defaultFS struct{}

func (defaultFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// FS is the package-level FileSystem used by code reading sysfs and fixture
// paths. Tests may replace it.
var FS FileSystem = defaultFS{}
