package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ChecksumFile is written next to the config file by 'dongerhook config lock'.
const ChecksumFile = ".checksums"

// ChecksumManifest records the expected BLAKE3 hash of each protected file,
// keyed by path relative to the config directory.
type ChecksumManifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	Hashes      map[string]string `yaml:"hashes"`
}

// HashUpdateFileResult captures checksum generation outcome for one file.
type HashUpdateFileResult struct {
	Key  string
	Path string
	Hash string
}

// HashUpdateReport captures checksum generation details.
type HashUpdateReport struct {
	ChecksumPath string
	Written      bool
	Files        []HashUpdateFileResult
}

// ComputeBlake3Hash computes the BLAKE3 hash of a file.
func ComputeBlake3Hash(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// ChecksumPath is where the manifest for this config lives, or "" when the
// config was not read from a file.
func (c *Config) ChecksumPath() string {
	if c.SourcePath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(c.SourcePath), ChecksumFile)
}

// IntegrityFiles lists the files whose contents decide runtime behavior:
// the config file itself and an external content table.
func (c *Config) IntegrityFiles() []string {
	var files []string
	if c.SourcePath != "" {
		files = append(files, c.SourcePath)
	}
	if c.Content.Path != "" {
		files = append(files, c.Content.Path)
	}
	return files
}

func (c *Config) manifestKey(path string) string {
	rel, err := filepath.Rel(filepath.Dir(c.SourcePath), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Lock hashes IntegrityFiles and writes the manifest.
// When dryRun is true, it computes hashes and returns report details without writing files.
func Lock(c *Config, dryRun bool) (*HashUpdateReport, error) {
	if c.SourcePath == "" {
		return nil, fmt.Errorf("no config file to lock; pass --config")
	}

	manifest := ChecksumManifest{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Hashes:      make(map[string]string),
	}
	report := &HashUpdateReport{ChecksumPath: c.ChecksumPath()}

	for _, path := range c.IntegrityFiles() {
		hash, err := ComputeBlake3Hash(path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", path, err)
		}
		key := c.manifestKey(path)
		manifest.Hashes[key] = hash
		report.Files = append(report.Files, HashUpdateFileResult{Key: key, Path: path, Hash: hash})
	}

	if dryRun {
		return report, nil
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checksums: %w", err)
	}

	// Write with restrictive permissions (contains expected hashes)
	if err := os.WriteFile(report.ChecksumPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write checksums: %w", err)
	}
	report.Written = true

	return report, nil
}

// LoadChecksums reads a manifest file.
func LoadChecksums(checksumPath string) (*ChecksumManifest, error) {
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("checksums file not found (run 'dongerhook config lock')")
		}
		return nil, fmt.Errorf("failed to read checksums: %w", err)
	}

	var manifest ChecksumManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse checksums: %w", err)
	}

	if manifest.Version != 1 {
		return nil, fmt.Errorf("unsupported checksums version: %d", manifest.Version)
	}

	return &manifest, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
