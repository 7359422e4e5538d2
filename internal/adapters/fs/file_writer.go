package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
	"gopkg.in/yaml.v3"
)

// FileWriterAdapter writes exported batches to files or standard output
type FileWriterAdapter struct {
	stdout io.Writer
}

// NewFileWriterAdapter creates a new file writer adapter
func NewFileWriterAdapter() *FileWriterAdapter {
	return &FileWriterAdapter{stdout: os.Stdout}
}

// WriteBatch encodes batch in format and writes it to path
func (f *FileWriterAdapter) WriteBatch(ctx context.Context, path string, format usecase.ExportFormat, batch *models.SafeBatch) error {
	data, err := EncodeBatch(format, batch)
	if err != nil {
		return err
	}

	if path == "-" {
		_, err := f.stdout.Write(data)
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	return nil
}

// EncodeBatch renders a batch as JSON or YAML
func EncodeBatch(format usecase.ExportFormat, batch *models.SafeBatch) ([]byte, error) {
	switch format {
	case usecase.ExportFormatJSON, "":
		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal batch: %w", err)
		}
		return append(data, '\n'), nil
	case usecase.ExportFormatYAML:
		data, err := yaml.Marshal(batch)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal batch: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// Ensure the adapter implements the interface
var _ usecase.BatchWriter = (*FileWriterAdapter)(nil)
