package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// validChunksJSON builds a well-formed backend response with n chunks.
func validChunksJSON(n int) string {
	chunks := make([]Chunk, 0, n)
	for i := 0; i < n; i++ {
		chunks = append(chunks, Chunk{
			Title:     fmt.Sprintf("Chunk %d", i),
			Summary:   fmt.Sprintf("Summary of chunk %d.", i),
			KeyPoints: []string{fmt.Sprintf("point %d.1", i), fmt.Sprintf("point %d.2", i)},
		})
	}
	b, _ := json.Marshal(chunks)
	return string(b)
}

func TestDecodeChunks_Valid(t *testing.T) {
	chunks, err := DecodeChunks(validChunksJSON(7))
	if err != nil {
		t.Fatalf("DecodeChunks() unexpected error: %v", err)
	}
	if len(chunks) != 7 {
		t.Fatalf("DecodeChunks() returned %d chunks, want 7", len(chunks))
	}
}

func TestDecodeChunks_OrderPreserved(t *testing.T) {
	chunks, err := DecodeChunks(validChunksJSON(9))
	if err != nil {
		t.Fatalf("DecodeChunks() unexpected error: %v", err)
	}
	for i, c := range chunks {
		if want := fmt.Sprintf("Chunk %d", i); c.Title != want {
			t.Errorf("chunk %d title = %q, want %q (order not preserved)", i, c.Title, want)
		}
	}
}

func TestDecodeChunks_CodeFence(t *testing.T) {
	raw := "```json\n" + validChunksJSON(5) + "\n```"
	chunks, err := DecodeChunks(raw)
	if err != nil {
		t.Fatalf("DecodeChunks() unexpected error for fenced output: %v", err)
	}
	if len(chunks) != 5 {
		t.Errorf("DecodeChunks() returned %d chunks, want 5", len(chunks))
	}
}

func TestDecodeChunks_CountBounds(t *testing.T) {
	tests := []struct {
		count   int
		wantErr bool
	}{
		{count: 4, wantErr: true},
		{count: 5, wantErr: false},
		{count: 15, wantErr: false},
		{count: 16, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("count_%d", tt.count), func(t *testing.T) {
			chunks, err := DecodeChunks(validChunksJSON(tt.count))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeChunks() expected error for count %d, got %d chunks", tt.count, len(chunks))
				}
				if !errors.Is(err, ErrDecode) {
					t.Errorf("DecodeChunks() error = %v, want ErrDecode", err)
				}
			} else if err != nil {
				t.Fatalf("DecodeChunks() unexpected error for count %d: %v", tt.count, err)
			}
		})
	}
}

func TestDecodeChunks_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "refusal prose",
			raw:  "Sorry, I can't do that.",
		},
		{
			name: "object top level",
			raw:  `{"chunks": []}`,
		},
		{
			name: "empty input",
			raw:  "",
		},
		{
			name: "element not an object",
			raw:  `["a", "b", "c", "d", "e"]`,
		},
		{
			name: "missing title",
			raw:  `[` + strings.Repeat(`{"summary":"s.","key_points":["k"]},`, 4) + `{"summary":"s.","key_points":["k"]}]`,
		},
		{
			name: "empty title",
			raw:  `[` + strings.Repeat(`{"title":"  ","summary":"s.","key_points":["k"]},`, 4) + `{"title":"t","summary":"s.","key_points":["k"]}]`,
		},
		{
			name: "missing summary",
			raw:  `[` + strings.Repeat(`{"title":"t","key_points":["k"]},`, 4) + `{"title":"t","key_points":["k"]}]`,
		},
		{
			name: "missing key_points",
			raw:  `[` + strings.Repeat(`{"title":"t","summary":"s."},`, 4) + `{"title":"t","summary":"s."}]`,
		},
		{
			name: "mistyped title",
			raw:  `[` + strings.Repeat(`{"title":42,"summary":"s.","key_points":["k"]},`, 4) + `{"title":42,"summary":"s.","key_points":["k"]}]`,
		},
		{
			name: "non-string key point",
			raw:  `[` + strings.Repeat(`{"title":"t","summary":"s.","key_points":[1,2]},`, 4) + `{"title":"t","summary":"s.","key_points":[1,2]}]`,
		},
		{
			name: "empty-string key point",
			raw:  `[` + strings.Repeat(`{"title":"t","summary":"s.","key_points":[""]},`, 4) + `{"title":"t","summary":"s.","key_points":[""]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := DecodeChunks(tt.raw)
			if err == nil {
				t.Fatalf("DecodeChunks() expected error, got %d chunks", len(chunks))
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeChunks() error = %v, want ErrDecode", err)
			}
			if chunks != nil {
				t.Errorf("DecodeChunks() returned chunks alongside error")
			}
		})
	}
}

func TestDecodeChunks_EmptyKeyPointsSequence(t *testing.T) {
	raw := `[` + strings.Repeat(`{"title":"t","summary":"s.","key_points":[]},`, 4) + `{"title":"t","summary":"s.","key_points":[]}]`
	chunks, err := DecodeChunks(raw)
	if err != nil {
		t.Fatalf("DecodeChunks() unexpected error: %v", err)
	}
	if len(chunks) != 5 {
		t.Fatalf("DecodeChunks() returned %d chunks, want 5", len(chunks))
	}
	if len(chunks[0].KeyPoints) != 0 {
		t.Errorf("expected empty key_points sequence, got %v", chunks[0].KeyPoints)
	}
}
