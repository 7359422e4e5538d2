package abi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// ForgeOutDir is where forge writes build artifacts
const ForgeOutDir = "out"

// InterfaceLoaderAdapter loads contract interfaces from files. A ref is a
// path (relative to the project root or the working directory), or a bare
// contract name looked up in the forge artifacts.
type InterfaceLoaderAdapter struct {
	projectRoot string
	log         *slog.Logger

	mu    sync.Mutex
	cache map[string]*abi.Interface
}

// NewInterfaceLoaderAdapter creates a new interface loader
func NewInterfaceLoaderAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *InterfaceLoaderAdapter {
	return &InterfaceLoaderAdapter{
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "InterfaceLoaderAdapter"),
		cache:       map[string]*abi.Interface{},
	}
}

// LoadInterface reads and parses the interface named by ref
func (l *InterfaceLoaderAdapter) LoadInterface(ctx context.Context, ref string) (*abi.Interface, error) {
	path, err := l.resolvePath(ref)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if iface, ok := l.cache[path]; ok {
		return iface, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface: %w", err)
	}

	iface, err := abi.ParseInterface(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.log.Debug("loaded interface", "path", path, "functions", len(iface.Functions))
	l.cache[path] = iface
	return iface, nil
}

// resolvePath maps ref to an existing file
func (l *InterfaceLoaderAdapter) resolvePath(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("no interface given")
	}

	var candidates []string
	if filepath.IsAbs(ref) {
		candidates = append(candidates, ref)
	} else {
		candidates = append(candidates, ref, filepath.Join(l.projectRoot, ref))
	}
	if isContractName(ref) {
		candidates = append(candidates, filepath.Join(l.projectRoot, ForgeOutDir, ref+".sol", ref+".json"))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("interface %q not found (tried %s)", ref, strings.Join(candidates, ", "))
}

// isContractName reports whether ref looks like a bare contract name
func isContractName(ref string) bool {
	if ref == "" || strings.ContainsAny(ref, `/\.`) {
		return false
	}
	for _, r := range ref {
		if !(r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// Ensure the adapter implements the interface
var _ usecase.InterfaceLoader = (*InterfaceLoaderAdapter)(nil)
