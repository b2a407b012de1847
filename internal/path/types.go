package path

import "time"

// Chunk is one bounded-duration learning unit produced by the
// decomposition pipeline. Chunks are immutable once generated; a path
// is only ever replaced wholesale, never patched chunk by chunk.
type Chunk struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Path is an ordered, owner-scoped sequence of chunks plus a progress
// cursor. CurrentStep ranges over 0..len(Chunks); a value equal to
// len(Chunks) means the path is completed.
type Path struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"`
	Title       string    `json:"title"`
	Chunks      []Chunk   `json:"chunks"`
	SourceDoc   string    `json:"-"`
	HasSource   bool      `json:"has_source"`
	CurrentStep int       `json:"current_step"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is the listing view of a path, without its chunk bodies.
type Summary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ChunkCount  int       `json:"chunk_count"`
	CurrentStep int       `json:"current_step"`
	CreatedAt   time.Time `json:"created_at"`
}
