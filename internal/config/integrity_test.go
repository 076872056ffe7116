package config

import (
	"os"
	"strings"
	"testing"
)

func TestVerifyIntegrityAllValid(t *testing.T) {
	cfg := lockableConfig(t)
	if _, err := Lock(cfg, false); err != nil {
		t.Fatal(err)
	}

	result, err := VerifyIntegrity(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Errorf("expected Passed=true, got errors: %v", result.Errors)
	}
	if result.Checked != 2 {
		t.Errorf("Checked = %d, want 2", result.Checked)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestVerifyIntegrityTamperedContent(t *testing.T) {
	cfg := lockableConfig(t)
	if _, err := Lock(cfg, false); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(cfg.Content.Path, []byte("cat:\n  - 'tampered'\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := VerifyIntegrity(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("expected Passed=false after tampering")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "hash mismatch for dongers.yaml") {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestVerifyIntegrityMissingManifest(t *testing.T) {
	cfg := lockableConfig(t)

	result, err := VerifyIntegrity(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Errorf("missing manifest should not fail: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "config lock") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestVerifyIntegrityUnlistedAndStale(t *testing.T) {
	cfg := lockableConfig(t)
	contentPath := cfg.Content.Path

	// Lock with only the config file, then point at the content table.
	cfg.Content.Path = ""
	if _, err := Lock(cfg, false); err != nil {
		t.Fatal(err)
	}
	cfg.Content.Path = contentPath

	result, err := VerifyIntegrity(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Passed {
		t.Fatal("unlisted file should fail")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "not in") {
		t.Errorf("errors = %v", result.Errors)
	}

	// Re-lock with both, then drop the content table: the entry is stale.
	if _, err := Lock(cfg, false); err != nil {
		t.Fatal(err)
	}
	cfg.Content.Path = ""
	result, err = VerifyIntegrity(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed {
		t.Errorf("stale entry should only warn: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "dongers.yaml") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestVerifyIntegrityNoConfigFile(t *testing.T) {
	result, err := VerifyIntegrity(Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Passed || result.Checked != 0 {
		t.Errorf("result = %+v", result)
	}
}
