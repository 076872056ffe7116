package config

import (
	"fmt"
	"os"
)

// IntegrityResult collects the outcome of an integrity check.
type IntegrityResult struct {
	Passed   bool
	Checked  int
	Warnings []string
	Errors   []string
}

// VerifyIntegrity checks IntegrityFiles against the .checksums manifest.
// A missing manifest is a warning; a mismatch or an unlisted file fails.
func VerifyIntegrity(c *Config) (*IntegrityResult, error) {
	result := &IntegrityResult{Passed: true}
	if c.SourcePath == "" {
		return result, nil
	}

	checksumPath := c.ChecksumPath()
	if _, err := os.Stat(checksumPath); os.IsNotExist(err) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no %s manifest found at %s; run 'dongerhook config lock' to enable integrity verification", ChecksumFile, checksumPath))
		return result, nil
	}

	manifest, err := LoadChecksums(checksumPath)
	if err != nil {
		return nil, err
	}

	current := make(map[string]bool)
	for _, path := range c.IntegrityFiles() {
		key := c.manifestKey(path)
		current[key] = true

		expectedHash, inManifest := manifest.Hashes[key]
		if !inManifest {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("file %s not in %s manifest", key, ChecksumFile))
			continue
		}

		actualHash, err := ComputeBlake3Hash(path)
		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("failed to hash %s: %v", key, err))
			continue
		}
		result.Checked++

		if actualHash != expectedHash {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("hash mismatch for %s (expected %s, got %s)", key, expectedHash, actualHash))
		}
	}

	for _, key := range sortedKeys(manifest.Hashes) {
		if !current[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s lists %s, which is no longer referenced by the config", ChecksumFile, key))
		}
	}

	return result, nil
}
