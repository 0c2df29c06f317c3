package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content by writing a sibling temp file and
// renaming it into place. Readers see either the old or the new bytes. A
// mode of 0 means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := fill(tmp, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fill writes content to f, sets its mode, flushes it to disk and closes it.
func fill(f *os.File, content []byte, mode os.FileMode) error {
	_, err := f.Write(content)
	if err == nil {
		err = f.Chmod(mode)
	}
	if err == nil {
		err = f.Sync()
	}
	return errors.Join(err, f.Close())
}

// Replace writes content over the file described by info, keeping its
// mode. It returns false without writing when content equals what was
// read, and ErrModified when the file changed on disk in the meantime.
func Replace(ctx context.Context, info *FileInfo, original, content []byte) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if bytes.Equal(original, content) {
		return false, nil
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return false, err
	}
	if modified {
		return false, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode.Perm()); err != nil {
		return false, err
	}
	return true, nil
}
