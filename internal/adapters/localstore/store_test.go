package localstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Options{Dir: t.TempDir(), PublicPath: "/uploads"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestStore_Save_WritesFileWithGeneratedName(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save(context.Background(), "photo.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("expected lowercased extension, got %q", name)
	}
	if strings.Contains(name, "photo") {
		t.Errorf("object name should not leak original name: %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestStore_Save_RejectsUnsupportedType(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(context.Background(), "script.sh", strings.NewReader("#!/bin/sh")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := s.Save(context.Background(), "noext", strings.NewReader("x")); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestStore_PublicURL(t *testing.T) {
	s := newTestStore(t)
	if got := s.PublicURL("abc.png"); got != "/uploads/abc.png" {
		t.Errorf("PublicURL = %q", got)
	}
}

func TestNew_RequiresDir(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error for empty dir")
	}
}
