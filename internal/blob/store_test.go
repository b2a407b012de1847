package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestFSStore_SaveAndOpen(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() unexpected error: %v", err)
	}
	ctx := context.Background()

	data := []byte("%PDF-1.4 test content")
	key, err := store.Save(ctx, "user-a", "notes.pdf", data)
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "user-a/") {
		t.Errorf("key = %q, want owner-scoped prefix", key)
	}
	if !strings.HasSuffix(key, "-notes.pdf") {
		t.Errorf("key = %q, want original filename suffix", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer func() {
		_ = rc.Close()
	}()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read blob: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("blob content = %q, want %q", got, data)
	}
}

func TestFSStore_SaveUniqueKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() unexpected error: %v", err)
	}
	ctx := context.Background()

	k1, err := store.Save(ctx, "user-a", "notes.pdf", []byte("one"))
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	k2, err := store.Save(ctx, "user-a", "notes.pdf", []byte("two"))
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Errorf("two saves of the same filename produced the same key %q", k1)
	}
}

func TestFSStore_Save_RequiresOwner(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() unexpected error: %v", err)
	}

	if _, err := store.Save(context.Background(), "", "notes.pdf", []byte("x")); err == nil {
		t.Error("Save() accepted an empty owner")
	}
}

func TestFSStore_Open_RejectsTraversal(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore() unexpected error: %v", err)
	}

	keys := []string{
		"../etc/passwd",
		"user-a/../../etc/passwd",
		"/etc/passwd",
		"",
	}
	for _, key := range keys {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Errorf("Open(%q) accepted a key outside the store root", key)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "notes.pdf", want: "notes.pdf"},
		{in: "my lecture (1).pdf", want: "my_lecture__1_.pdf"},
		{in: "../../evil.pdf", want: "evil.pdf"},
		{in: "日本語.pdf", want: "___.pdf"},
		{in: "", want: "document.pdf"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
