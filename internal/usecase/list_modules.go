package usecase

import (
	"context"

	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
)

// ModuleSummary describes one catalog entry on the current chain
type ModuleSummary struct {
	Name        string
	Description string
	Kind        string
	ReadMore    string
	Params      []config.ModuleParam
	// Supported is false when the module cannot be planned on the chain
	Supported bool
	Problem   string
}

// ListModulesResult contains the module catalog
type ListModulesResult struct {
	Modules []ModuleSummary
	ChainID uint64
	Source  string
}

// ListModules lists the module types of the catalog
type ListModules struct {
	config *config.RuntimeConfig
}

// NewListModules creates a new ListModules use case
func NewListModules(cfg *config.RuntimeConfig) *ListModules {
	return &ListModules{config: cfg}
}

// Run executes the list modules use case
func (uc *ListModules) Run(ctx context.Context) (*ListModulesResult, error) {
	catalog := uc.config.Modules
	result := &ListModulesResult{
		ChainID: uc.config.ChainID,
		Source:  uc.config.ModuleSource,
	}

	for _, name := range catalog.Names() {
		mc, _ := catalog.Lookup(name)
		summary := ModuleSummary{
			Name:        name,
			Description: mc.Description,
			Kind:        mc.Kind,
			ReadMore:    mc.ReadMore,
			Params:      mc.Params,
			Supported:   true,
		}
		if _, err := modules.Resolve(catalog, name, uc.config.ChainID); err != nil {
			summary.Supported = false
			summary.Problem = err.Error()
		}
		result.Modules = append(result.Modules, summary)
	}
	return result, nil
}
