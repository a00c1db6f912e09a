package conduit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"loom/internal/services"
)

func TestCreateMakesFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.y4m")
	if err := Create(path); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !IsFIFO(path) {
		t.Fatalf("expected %q to be a FIFO", path)
	}
}

func TestCreateRejectsExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := Create(path)
	if err == nil {
		t.Fatal("expected error for existing path")
	}
	if !errors.Is(err, services.ErrResourceCreation) {
		t.Fatalf("expected resource creation marker, got %v", err)
	}
}

func TestCreateRejectsEmptyPath(t *testing.T) {
	if err := Create(""); !errors.Is(err, services.ErrResourceCreation) {
		t.Fatalf("expected resource creation marker, got %v", err)
	}
}

func TestIsFIFOOnRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if IsFIFO(path) {
		t.Fatal("regular file reported as FIFO")
	}
	if IsFIFO(filepath.Join(t.TempDir(), "missing")) {
		t.Fatal("missing path reported as FIFO")
	}
}

func TestUnlinkedConduitDoesNotLinger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe")
	if err := Create(path); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("expected conduit gone, stat err = %v", err)
	}
}
