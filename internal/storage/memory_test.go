package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, "photos/1/ingredient/a b.png", Upload{
		Filename:    "a b.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}

	r, contentType, err := store.Get("photos/1/ingredient/a b.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "png-bytes" || contentType != "image/png" {
		t.Errorf("Get = %q (%s)", data, contentType)
	}

	if got := store.URL("photos/1/ingredient/a b.png"); got != "/blobs/photos/1/ingredient/a%20b.png" {
		t.Errorf("URL = %q", got)
	}

	if err := store.Delete(ctx, "photos/1/ingredient/a b.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := store.Get("photos/1/ingredient/a b.png"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("Get after delete err = %v, want ErrBlobNotFound", err)
	}
	// Deleting twice is fine.
	if err := store.Delete(ctx, "photos/1/ingredient/a b.png"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestCleanURL(t *testing.T) {
	tests := map[string]string{
		"https://cdn.example.com/photos/x.png":        "https://cdn.example.com/photos/x.png",
		"https://cdn.example.com/photos/my photo.png": "https://cdn.example.com/photos/my%20photo.png",
	}
	for in, want := range tests {
		if got := CleanURL(in); got != want {
			t.Errorf("CleanURL(%q) = %q, want %q", in, got, want)
		}
	}
}
