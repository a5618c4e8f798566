package domain

import "time"

// FileCategory classifies a tracked file for selection policy. Category is
// metadata only; it never alters closure computation.
type FileCategory string

const (
	// CategorySource marks production source files.
	CategorySource FileCategory = "source"
	// CategoryTest marks test files.
	CategoryTest FileCategory = "test"
	// CategoryConfig marks configuration files.
	CategoryConfig FileCategory = "config"
	// CategoryDoc marks documentation files.
	CategoryDoc FileCategory = "doc"
)

// TrackedFile is one file in the tracked set, tagged with its category and
// whether it is a build-wide configuration file. A change to a build-config
// file escalates the run to a full rebuild.
type TrackedFile struct {
	Path        string
	Category    FileCategory
	BuildConfig bool
}

// FileRecord identifies one tracked file's content at a point in time.
type FileRecord struct {
	Path       string       `json:"path"`
	Hash       string       `json:"hash"`
	SizeBytes  int64        `json:"size"`
	Category   FileCategory `json:"category,omitzero"`
	ObservedAt time.Time    `json:"observed_at"`
}

// Baseline is an immutable snapshot of the last known build state. It is
// owned exclusively by the engine and replaced atomically after each
// completed run.
type Baseline struct {
	SchemaVersion int                   `json:"schema_version"`
	CreatedAt     time.Time             `json:"created_at"`
	Files         map[string]FileRecord `json:"files"`
}

// NewBaseline creates an empty baseline stamped with the current schema
// version.
func NewBaseline(now time.Time) *Baseline {
	return &Baseline{
		SchemaVersion: SchemaVersion,
		CreatedAt:     now,
		Files:         make(map[string]FileRecord),
	}
}
