package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// DefaultBatchName names exported batches when no name is given
const DefaultBatchName = "ztx bundle"

// ExportBundleParams contains parameters for exporting the bundle
type ExportBundleParams struct {
	Name        string
	Description string
	MultiSend   bool
	// Output is the destination file; empty skips writing, "-" is stdout
	Output string
	Format ExportFormat
	// CreatedAt stamps the batch, defaulting to now
	CreatedAt time.Time
}

// ExportBundleResult contains the exported batch
type ExportBundleResult struct {
	Batch  *models.SafeBatch
	Output string
	Format ExportFormat
}

// ExportBundle renders the bundle as a Safe Transaction Builder batch
type ExportBundle struct {
	config  *config.RuntimeConfig
	flatten *FlattenBundle
	writer  BatchWriter
}

// NewExportBundle creates a new ExportBundle use case
func NewExportBundle(cfg *config.RuntimeConfig, flatten *FlattenBundle, writer BatchWriter) *ExportBundle {
	return &ExportBundle{config: cfg, flatten: flatten, writer: writer}
}

// Run executes the export bundle use case
func (uc *ExportBundle) Run(ctx context.Context, params ExportBundleParams) (*ExportBundleResult, error) {
	format := params.Format
	switch format {
	case "":
		format = ExportFormatJSON
	case ExportFormatJSON, ExportFormatYAML:
	default:
		return nil, fmt.Errorf("unknown export format %q (json, yaml)", params.Format)
	}

	flat, err := uc.flatten.Run(ctx, FlattenBundleParams{MultiSend: params.MultiSend})
	if err != nil {
		return nil, err
	}

	name := params.Name
	if name == "" {
		name = DefaultBatchName
	}
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	batch := models.NewSafeBatch(name, uc.config.Account, uc.config.ChainID, createdAt, flat.Dispatch())
	batch.Meta.Description = params.Description

	if params.Output != "" {
		if err := uc.writer.WriteBatch(ctx, params.Output, format, batch); err != nil {
			return nil, err
		}
	}
	return &ExportBundleResult{Batch: batch, Output: params.Output, Format: format}, nil
}
