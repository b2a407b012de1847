package path

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawChunk mirrors the per-element contract with pointer fields so a
// missing key is distinguishable from an empty value.
type rawChunk struct {
	Title     *string   `json:"title"`
	Summary   *string   `json:"summary"`
	KeyPoints *[]string `json:"key_points"`
}

// DecodeChunks parses the backend's raw output into an ordered chunk
// sequence, or fails for the whole batch. The backend is
// nondeterministic, so this is a full untrusted-input parser: the
// top level must be a JSON array, every element must carry a
// non-empty title, a non-empty summary, and key_points as an array of
// non-empty strings, and the element count must honor the 5-15
// contract. Element order is preserved exactly.
func DecodeChunks(raw string) ([]Chunk, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, decodeErrorf("output is not a JSON array: %v", err)
	}

	if len(elements) < MinChunks || len(elements) > MaxChunks {
		return nil, decodeErrorf("chunk count %d outside bounds [%d,%d]", len(elements), MinChunks, MaxChunks)
	}

	chunks := make([]Chunk, 0, len(elements))
	for i, elem := range elements {
		var rc rawChunk
		if err := json.Unmarshal(elem, &rc); err != nil {
			return nil, decodeErrorf("element %d: %v", i, err)
		}
		if rc.Title == nil || strings.TrimSpace(*rc.Title) == "" {
			return nil, decodeErrorf("element %d: missing or empty title", i)
		}
		if rc.Summary == nil || strings.TrimSpace(*rc.Summary) == "" {
			return nil, decodeErrorf("element %d: missing or empty summary", i)
		}
		if rc.KeyPoints == nil {
			return nil, decodeErrorf("element %d: missing key_points", i)
		}
		for j, kp := range *rc.KeyPoints {
			if strings.TrimSpace(kp) == "" {
				return nil, decodeErrorf("element %d: empty key point at index %d", i, j)
			}
		}

		chunks = append(chunks, Chunk{
			Title:     *rc.Title,
			Summary:   *rc.Summary,
			KeyPoints: *rc.KeyPoints,
		})
	}

	return chunks, nil
}

// decodeErrorf builds an error classified under ErrDecode so callers
// can map the whole family with errors.Is.
func decodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}

// stripCodeFence removes a surrounding markdown code fence if the
// backend wrapped its JSON in one, a common completion-model habit.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
