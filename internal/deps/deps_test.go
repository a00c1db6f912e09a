package deps

import (
	"os"
	"path/filepath"
	"testing"

	"loom/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	testsupport.WriteScript(t, present, "exit 0")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %s", results[2].Detail)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	ok := CheckDirectoryAccess("Work directory", dir)
	if !ok.Available {
		t.Fatalf("expected accessible directory, got %#v", ok)
	}

	missing := CheckDirectoryAccess("Work directory", filepath.Join(dir, "nope"))
	if missing.Available {
		t.Fatal("expected missing directory to fail")
	}
	if missing.Detail != "does not exist" {
		t.Fatalf("unexpected detail: %s", missing.Detail)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := CheckDirectoryAccess("Work directory", file)
	if notDir.Available {
		t.Fatal("expected plain file to fail the directory check")
	}
}

func TestCheckAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	results := CheckAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %#v", results)
	}

	cfg.Tools.Encoder = "clearly-not-present-binary"
	if !Failed(CheckAll(cfg)) {
		t.Fatal("expected missing encoder to fail the check")
	}
}
