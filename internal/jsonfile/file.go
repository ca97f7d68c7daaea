// Package jsonfile stores collections as indented JSON arrays in flat files.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/rpggio/queuedesk/internal/repository"
)

const lockRetryDelay = 10 * time.Millisecond

// File is a whole-collection JSON store. Every read and write takes an
// advisory lock on "<path>.lock" so separate processes sharing the file
// serialize their load-modify-save cycles.
type File[T any] struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFile returns a store backed by path. The file need not exist yet.
func NewFile[T any](path string) *File[T] {
	return &File[T]{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the backing file path.
func (f *File[T]) Path() string {
	return f.path
}

// Load reads the whole collection. A missing or empty file is an empty collection.
func (f *File[T]) Load(ctx context.Context) ([]T, error) {
	var items []T
	err := f.withLock(ctx, true, func() error {
		var err error
		items, err = f.read()
		return err
	})
	return items, err
}

// Save replaces the whole collection.
func (f *File[T]) Save(ctx context.Context, items []T) error {
	return f.withLock(ctx, false, func() error {
		return f.write(items)
	})
}

// Update loads the collection, applies fn and saves the result as one
// critical section. Nothing is written when fn fails.
func (f *File[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	return f.withLock(ctx, false, func() error {
		items, err := f.read()
		if err != nil {
			return err
		}
		items, err = fn(items)
		if err != nil {
			return err
		}
		return f.write(items)
	})
}

func (f *File[T]) withLock(ctx context.Context, shared bool, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return storageError("prepare", f.path, err)
	}

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = f.lock.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = f.lock.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return storageError("lock", f.path, err)
	}
	if !locked {
		return storageError("lock", f.path, errors.New("lock not acquired"))
	}
	defer f.lock.Unlock()

	return fn()
}

func (f *File[T]) read() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, storageError("read", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, storageError("decode", f.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (f *File[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return storageError("encode", f.path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return storageError("write", f.path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return storageError("write", f.path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return storageError("sync", f.path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return storageError("chmod", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return storageError("write", f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return storageError("replace", f.path, err)
	}
	return nil
}

func storageError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", repository.ErrStorage, op, path, err)
}
