package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	return ls, dir
}

func TestSaveAndReadBack(t *testing.T) {
	ls, dir := newTestStorage(t)

	url, err := ls.Save("doc.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/uploads/doc.pdf" {
		t.Fatalf("unexpected URL: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "doc.pdf"))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	ls, _ := newTestStorage(t)

	for _, key := range []string{"", "../escape", "a/b"} {
		if _, err := ls.Save(key, strings.NewReader("x")); err == nil {
			t.Fatalf("key %q: expected error", key)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ls, dir := newTestStorage(t)

	if _, err := ls.Save("doc.pdf", strings.NewReader("content")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := ls.Delete("doc.pdf"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.pdf")); !os.IsNotExist(err) {
		t.Fatal("file should be gone")
	}

	// Deleting again must not error
	if err := ls.Delete("doc.pdf"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if err := ls.Delete(""); err != nil {
		t.Fatalf("empty key Delete failed: %v", err)
	}
}

func TestListKeysSkipsTempFiles(t *testing.T) {
	ls, dir := newTestStorage(t)

	if _, err := ls.Save("a.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Simulate an in-flight upload
	if err := os.WriteFile(filepath.Join(dir, tempPrefix+"123"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	objects, err := ls.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys failed: %v", err)
	}
	if len(objects) != 1 || objects[0].Key != "a.png" {
		t.Fatalf("unexpected objects: %v", objects)
	}
	if age := time.Since(objects[0].ModTime); age < 0 || age > time.Minute {
		t.Fatalf("implausible modification time: %v", objects[0].ModTime)
	}
}

func TestURLFor(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	if got := ls.URLFor("k.png"); got != "/uploads/k.png" {
		t.Fatalf("unexpected URL: %q", got)
	}
}
