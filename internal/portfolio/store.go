package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Read loads the state file without creating it. Callers that only display
// state (the dashboard) use this to avoid racing the writer.
func Read(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var p Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	if p.Positions == nil {
		p.Positions = []Position{}
	}
	return &p, nil
}

// Load reads the state file, creating and persisting a fresh portfolio with
// the given initial capital when the file does not exist yet.
func Load(path string, initialCapital float64) (*Portfolio, error) {
	p, err := Read(path)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	p = New(initialCapital)
	if err := Save(path, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save replaces the state file atomically: the new state is written to a
// temp file in the same directory and renamed over the old one, so a crash
// mid-write never leaves a partially-written file behind.
func Save(path string, p *Portfolio) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".portfolio-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
