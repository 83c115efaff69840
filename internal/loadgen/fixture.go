package loadgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
	yamlIndent          = 2
)

// WritePopulation encodes p as YAML.
func WritePopulation(w io.Writer, p Population) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode population: %w", err)
	}
	return enc.Close()
}

// ReadPopulation decodes a YAML population.
func ReadPopulation(r io.Reader) (Population, error) {
	var p Population
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return Population{}, fmt.Errorf("decode population: %w", err)
	}
	return p, nil
}

// SavePopulation writes p to path, creating parent directories.
func SavePopulation(ctx context.Context, path string, p Population) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close file", logger.Error(err))
		}
	}()

	if err := WritePopulation(file, p); err != nil {
		return err
	}
	logger.Get().Info(ctx, "population saved", logger.String("path", path), logger.Int("users", len(p.Users)))
	return nil
}

// LoadPopulation reads a population fixture from path.
func LoadPopulation(path string) (Population, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Population{}, fmt.Errorf("failed to open population: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadPopulation(file)
}
