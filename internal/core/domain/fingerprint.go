package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// RequestKey is the canonical, structured form of a build request used for
// fingerprinting. Field order is fixed and collections are sorted before
// hashing so key derivation is deterministic regardless of how the request
// was assembled.
type RequestKey struct {
	// Task is the logical task descriptor, e.g. "build" or "ci".
	Task string
	// Targets are the requested build targets.
	Targets []string
	// FileHashes maps tracked file paths to their content digests.
	FileHashes map[string]string
}

// Fingerprint returns the deterministic hash identifying this request.
func (k RequestKey) Fingerprint() string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(k.Task)
	_, _ = hasher.Write([]byte{0})

	targets := make([]string, len(k.Targets))
	copy(targets, k.Targets)
	sort.Strings(targets)
	for _, t := range targets {
		_, _ = hasher.WriteString(t)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	paths := make([]string, 0, len(k.FileHashes))
	for p := range k.FileHashes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		_, _ = hasher.WriteString(p)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(k.FileHashes[p])
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
