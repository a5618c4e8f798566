package ports

import "go.trai.ch/delta/internal/core/domain"

// ContentHasher computes stable per-file content digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	// HashFile returns the hex-encoded 256-bit digest of the file content.
	// An unreadable file yields an error wrapping domain.ErrHashCompute;
	// callers treat such a file as conservatively modified.
	HashFile(path string) (string, error)
}

// FileResolver expands the project's tracked patterns into the concrete
// tracked file set.
type FileResolver interface {
	// Resolve walks the project root and returns every tracked file with
	// its category, in lexical path order.
	Resolve(project *domain.Project) ([]domain.TrackedFile, error)
}
