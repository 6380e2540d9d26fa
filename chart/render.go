package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Renderer consumes a finished chart description. The contract is
// destroy-before-recreate: every render fully replaces the previous
// drawing for that symbol.
type Renderer interface {
	Render(symbol string, cfg Config) error
}

// FileRenderer writes one JSON chart description per symbol. Each render
// rewrites the whole file.
type FileRenderer struct {
	Dir string
}

var _ Renderer = (*FileRenderer)(nil)

func (r *FileRenderer) Render(symbol string, cfg Config) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chart config: %w", err)
	}

	name := strings.ToLower(symbol) + ".json"
	if err := os.WriteFile(filepath.Join(r.Dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	return nil
}
