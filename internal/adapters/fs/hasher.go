// Package fs provides filesystem adapters: content hashing and tracked-set
// resolution.
package fs

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/delta/internal/core/domain"
	"go.trai.ch/delta/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentHasher = (*Hasher)(nil)

// Hasher computes sha256 content digests. Digests are memoized by
// (path, mtime, size) so unchanged files are not re-read on every
// detection pass.
type Hasher struct {
	mu   sync.Mutex
	memo map[uint64]string
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{memo: make(map[uint64]string)}
}

// HashFile returns the hex-encoded sha256 digest of the file content.
func (h *Hasher) HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrHashCompute, err), "path", path)
	}

	key := memoKey(path, info.ModTime().UnixNano(), info.Size())

	h.mu.Lock()
	digest, ok := h.memo[key]
	h.mu.Unlock()
	if ok {
		return digest, nil
	}

	digest, err = hashContent(path)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	h.memo[key] = digest
	h.mu.Unlock()

	return digest, nil
}

func hashContent(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrHashCompute, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(errors.Join(domain.ErrHashCompute, err), "path", path)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// memoKey derives the memo key from the stat triple. A file whose mtime or
// size changed gets a new key and is re-hashed.
func memoKey(path string, mtime, size int64) uint64 {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(path)
	_, _ = hasher.Write([]byte{0})
	_ = binary.Write(hasher, binary.LittleEndian, mtime)
	_ = binary.Write(hasher, binary.LittleEndian, size)
	return hasher.Sum64()
}
