package state

import (
	"os"
	"path/filepath"

	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/zerr"
)

// writeAtomic writes data to a temp file in the target directory and
// renames it into place, so a concurrent reader never observes a partial
// write.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
