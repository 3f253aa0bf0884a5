package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Filesystem stores each session as <dir>/<id>.json.
//
// Loading an unknown id creates the file with an empty object, so a session
// exists on disk from its first read. Identifiers that are not ValidID never
// touch the filesystem: Load treats them as unknown and Save rejects them.
type Filesystem struct {
	fs   vfs.FileSystem
	opts options
	mu   sync.Mutex
}

// NewFilesystem creates a backend rooted at the configured directory of fs.
// Use osfs.New() in production and memoryfs.New() in tests.
func NewFilesystem(fs vfs.FileSystem, opts ...Option) *Filesystem {
	return &Filesystem{
		fs:   fs,
		opts: buildOptions(opts),
	}
}

// Load reads the session file for id, creating it when missing.
func (f *Filesystem) Load(_ context.Context, id string) (Data, error) {
	if !ValidID(id) {
		return Data{}, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(id)
	b, err := vfs.ReadFile(f.fs, path)
	if err == nil {
		return decode(b)
	}
	if !vfs.IsErrNotExist(err) {
		return nil, errors.Join(ErrLoad, err)
	}

	if err := f.write(path, []byte("{}")); err != nil {
		return nil, err
	}
	return Data{}, nil
}

// Save overwrites the session file for id.
// An id that is not ValidID fails with ErrInvalidID.
func (f *Filesystem) Save(_ context.Context, id string, data Data) error {
	if id == "" {
		return nil
	}
	if !ValidID(id) {
		return ErrInvalidID
	}
	b, err := encode(data)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(f.path(id), b)
}

// NewID returns a fresh identifier.
func (f *Filesystem) NewID() string {
	return f.opts.newID()
}

func (f *Filesystem) path(id string) string {
	return filepath.Join(f.opts.dir, id+".json")
}

func (f *Filesystem) write(path string, b []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Join(ErrSave, err)
	}
	if err := vfs.WriteFile(f.fs, path, b, 0o644); err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}
