package usecase

import (
	"context"

	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// InterfaceLoader loads contract interfaces (JSON ABI, build artifacts or
// human readable signature lists)
type InterfaceLoader interface {
	LoadInterface(ctx context.Context, ref string) (*abi.Interface, error)
}

// BundleRepository persists the session bundle
type BundleRepository interface {
	// Load returns the stored bundle file, or an empty one when nothing is stored yet
	Load(ctx context.Context) (*models.BundleFile, error)
	Save(ctx context.Context, file *models.BundleFile) error
	GetPath() string
}

// LocalConfigStore handles local config persistence
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// FunctionSelector lets the user pick one function interactively
type FunctionSelector interface {
	SelectFunction(ctx context.Context, functions []abi.FunctionSignature) (abi.FunctionSignature, error)
}

// ArgumentPrompter asks for the arguments of a function interactively.
// current holds the values supplied so far, one per input, possibly invalid.
type ArgumentPrompter interface {
	PromptArguments(ctx context.Context, fn abi.FunctionSignature, current []abi.Raw) ([]abi.Raw, error)
}

// BundleReorderer lets the user reorder the bundle interactively and
// returns the new id order
type BundleReorderer interface {
	Reorder(ctx context.Context, calls []models.PendingCall) ([]string, error)
}

// BatchWriter writes an exported batch to path, "-" meaning standard output
type BatchWriter interface {
	WriteBatch(ctx context.Context, path string, format ExportFormat, batch *models.SafeBatch) error
}

// ExportFormat is the encoding of an exported batch
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
