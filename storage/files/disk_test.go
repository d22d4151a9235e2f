package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func Test_diskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewDiskStore(): %v", err)
	}

	content := []byte("lorem ipsum")
	uf, err := store.Save(context.Background(), "owner123", "notes/../cv.pdf", "application/pdf", "7bit", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save(): %v", err)
	}

	// the generated name embeds the owner and strips any path component
	if !strings.HasPrefix(uf.Filename, "owner123-") || !strings.HasSuffix(uf.Filename, "-cv.pdf") {
		t.Errorf("Filename = %v", uf.Filename)
	}
	if strings.ContainsAny(uf.Filename, "/\\") {
		t.Errorf("Filename contains a path separator: %v", uf.Filename)
	}
	if uf.URL != "/uploads/"+uf.Filename {
		t.Errorf("URL = %v", uf.URL)
	}
	if uf.Mimetype != "application/pdf" || uf.Encoding != "7bit" {
		t.Errorf("Mimetype = %v; Encoding = %v", uf.Mimetype, uf.Encoding)
	}

	stored, err := os.ReadFile(filepath.Join(dir, uf.Filename))
	if err != nil {
		t.Fatalf("os.ReadFile(): %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("stored content = %q; want %q", stored, content)
	}
}

func Test_diskStore_Save_uniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewDiskStore(): %v", err)
	}

	// names have millisecond resolution; space the writes out
	names := make(map[string]bool)
	for i := 0; i < 3; i++ {
		uf, err := store.Save(context.Background(), "owner123", "cv.pdf", "application/pdf", "7bit", strings.NewReader("lol"))
		if err != nil {
			t.Fatalf("Save(): %v", err)
		}
		names[uf.Filename] = true
		time.Sleep(2 * time.Millisecond)
	}
	if len(names) != 3 {
		t.Errorf("got %d unique names; want 3", len(names))
	}
}
