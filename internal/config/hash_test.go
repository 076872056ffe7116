package config

import (
	"os"
	"path/filepath"
	"testing"
)

// lockableConfig writes a config file and an external content table into a
// temp dir and returns a Config pointing at both.
func lockableConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "dongerhook.yaml")
	if err := os.WriteFile(cfgPath, []byte("content:\n  path: dongers.yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	contentPath := filepath.Join(dir, "dongers.yaml")
	if err := os.WriteFile(contentPath, []byte("cat:\n  - '(=^･ω･^=)'\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	cfg.SourcePath = cfgPath
	cfg.Content.Path = contentPath
	return cfg
}

func TestLockDryRun(t *testing.T) {
	cfg := lockableConfig(t)

	report, err := Lock(cfg, true)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	if report.Written {
		t.Fatal("report.Written = true, want false in dry-run")
	}
	if len(report.Files) != 2 {
		t.Fatalf("len(report.Files) = %d, want 2", len(report.Files))
	}
	if report.Files[0].Key != "dongerhook.yaml" || report.Files[1].Key != "dongers.yaml" {
		t.Errorf("keys = %q, %q", report.Files[0].Key, report.Files[1].Key)
	}
	for _, f := range report.Files {
		if len(f.Hash) != 64 {
			t.Errorf("hash for %s has %d chars, want 64", f.Key, len(f.Hash))
		}
	}
	if _, err := os.Stat(cfg.ChecksumPath()); !os.IsNotExist(err) {
		t.Fatal(".checksums should not be written in dry-run mode")
	}
}

func TestLockWritesManifest(t *testing.T) {
	cfg := lockableConfig(t)

	report, err := Lock(cfg, false)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	if !report.Written {
		t.Fatal("report.Written = false, want true")
	}

	info, err := os.Stat(report.ChecksumPath)
	if err != nil {
		t.Fatalf(".checksums not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	manifest, err := LoadChecksums(report.ChecksumPath)
	if err != nil {
		t.Fatalf("LoadChecksums() failed: %v", err)
	}
	if manifest.Version != 1 {
		t.Errorf("version = %d, want 1", manifest.Version)
	}
	for _, f := range report.Files {
		if manifest.Hashes[f.Key] != f.Hash {
			t.Errorf("manifest hash for %s = %q, want %q", f.Key, manifest.Hashes[f.Key], f.Hash)
		}
	}
}

func TestLockWithoutSourcePath(t *testing.T) {
	if _, err := Lock(Defaults(), false); err == nil {
		t.Fatal("Lock() without a config file should fail")
	}
}

func TestComputeBlake3HashStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("¯\\_(ツ)_/¯"), 0o600); err != nil {
		t.Fatal(err)
	}
	a, err := ComputeBlake3Hash(path)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ComputeBlake3Hash(path)
	if a != b {
		t.Errorf("hash not stable: %s vs %s", a, b)
	}

	if _, err := ComputeBlake3Hash(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadChecksumsRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), ChecksumFile)
	if err := os.WriteFile(path, []byte("version: 2\nhashes: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadChecksums(path); err == nil {
		t.Fatal("expected error for version 2")
	}
}
