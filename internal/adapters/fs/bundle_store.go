package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
	"gopkg.in/yaml.v3"
)

// BundleStoreAdapter persists the session bundle as JSON, or as YAML when
// the path ends in .yaml or .yml
type BundleStoreAdapter struct {
	path string
	log  *slog.Logger
}

// NewBundleStoreAdapter creates a new bundle store for the configured bundle path
func NewBundleStoreAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *BundleStoreAdapter {
	return &BundleStoreAdapter{
		path: cfg.BundlePath,
		log:  log.With("component", "BundleStoreAdapter"),
	}
}

func (s *BundleStoreAdapter) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the bundle file. A missing file is an empty bundle.
func (s *BundleStoreAdapter) Load(ctx context.Context) (*models.BundleFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no bundle file yet", "path", s.path)
		return &models.BundleFile{Version: models.BundleFileVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}

	var file models.BundleFile
	if s.isYAML() {
		err = yaml.Unmarshal(data, &file)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundle file %s: %w", s.path, err)
	}
	if file.Version == 0 {
		file.Version = models.BundleFileVersion
	}

	s.log.Debug("loaded bundle", "path", s.path, "calls", len(file.Calls))
	return &file, nil
}

// Save writes the bundle file atomically
func (s *BundleStoreAdapter) Save(ctx context.Context, file *models.BundleFile) error {
	if file.Calls == nil {
		file.Calls = []models.BundleRecord{}
	}

	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(file)
	} else {
		data, err = json.MarshalIndent(file, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.log.Debug("saved bundle", "path", s.path, "calls", len(file.Calls))
	return nil
}

// GetPath returns the path to the bundle file
func (s *BundleStoreAdapter) GetPath() string {
	return s.path
}

// writeFileAtomic writes data to a temporary file next to path and renames it
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.BundleRepository = (*BundleStoreAdapter)(nil)
