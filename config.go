package bok

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backends for a ledger directory.
const (
	// BackendFile stores objects as one gzip file per hash and HEAD as
	// a plain file.
	BackendFile = "file"
	// BackendBadger stores objects and HEAD in badger databases.
	BackendBadger = "badger"
)

// Config holds the configuration for a ledger. This is used to create or
// open a ledger at a location.
type Config struct {
	// Path is the ledger directory.
	Path string
	// Backend selects the storage backend for new ledgers. When opening
	// an existing ledger the manifest takes precedence.
	Backend string
	// Hasher computes entry hashes for new ledgers. When opening an
	// existing ledger the manifest takes precedence.
	Hasher Hasher
}

// DefaultConfig returns a sane set of default configurations. The
// default hash function used is SHA-256 with the file backend.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:    path,
		Backend: BackendFile,
		Hasher:  &SHA256Hasher{},
	}
}

// manifestVersion is the current on-disk manifest format.
const manifestVersion = 1

const manifestFile = "config.yml"

// manifest is the persisted description of a ledger directory. It
// records how hashes were computed and which backend holds the objects
// so Open can reconstruct the same stack.
type manifest struct {
	Version   int    `yaml:"version"`
	Algorithm string `yaml:"algorithm"`
	Backend   string `yaml:"backend"`
}

func writeManifest(cfg *Config) error {
	m := manifest{
		Version:   manifestVersion,
		Algorithm: cfg.Hasher.Algorithm(),
		Backend:   cfg.Backend,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.Path, manifestFile), data, 0o644)
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(filepath.Join(path, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading ledger manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing ledger manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	switch m.Backend {
	case BackendFile, BackendBadger:
	default:
		return nil, fmt.Errorf("unsupported backend: %q", m.Backend)
	}
	return &m, nil
}
