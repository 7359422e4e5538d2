package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// AddCallParams contains parameters for queueing a call
type AddCallParams struct {
	InterfaceRef string // interface file; optional when Function is a full signature
	Function     string // name or signature, empty to select interactively
	Args         []string
	To           string // defaults to the module address, then the account
	ID           string // generated from the function name when empty
	Module       *models.ModuleRef
	Interactive  bool
}

// ReplaceCallParams contains parameters for editing a queued call
type ReplaceCallParams struct {
	ID   string
	Args []string // empty keeps the current arguments
	To   string   // empty keeps the current target
	// Interactive prompts for the arguments starting from the current ones
	Interactive bool
}

// ReorderBundleParams contains parameters for reordering the bundle
type ReorderBundleParams struct {
	IDs         []string
	Interactive bool
}

// BundleEntry is a queued call together with its current validity
type BundleEntry struct {
	Call     models.PendingCall
	Valid    bool
	Problems []string
}

// BundleResult describes the bundle after an operation
type BundleResult struct {
	Entries []BundleEntry
	Path    string
	// Call is the call that was added or replaced, if any
	Call *models.PendingCall
	// Removed lists the ids that were present and removed
	Removed []string
}

// ManageBundle adds, removes, replaces and reorders the pending calls of the
// session bundle. Every operation loads the stored bundle, revalidates it and
// persists it again.
type ManageBundle struct {
	config    *config.RuntimeConfig
	repo      BundleRepository
	ids       *models.IDGenerator
	functions functionResolver
	prompter  ArgumentPrompter
	reorderer BundleReorderer
}

// NewManageBundle creates a new ManageBundle use case
func NewManageBundle(
	cfg *config.RuntimeConfig,
	repo BundleRepository,
	ids *models.IDGenerator,
	loader InterfaceLoader,
	selector FunctionSelector,
	prompter ArgumentPrompter,
	reorderer BundleReorderer,
) *ManageBundle {
	return &ManageBundle{
		config:    cfg,
		repo:      repo,
		ids:       ids,
		functions: functionResolver{loader: loader, selector: selector},
		prompter:  prompter,
		reorderer: reorderer,
	}
}

// Add queues a call at the end of the bundle
func (uc *ManageBundle) Add(ctx context.Context, params AddCallParams) (*BundleResult, error) {
	fn, err := uc.functions.resolve(ctx, params.InterfaceRef, params.Function, params.Interactive)
	if err != nil {
		return nil, err
	}

	raws, err := parseArgs(fn, params.Args)
	if err != nil {
		return nil, err
	}
	values, err := bindArgs(ctx, fn, raws, uc.prompterFor(params.Interactive))
	if err != nil {
		return nil, err
	}

	to, err := resolveTarget(params.To, params.Module, uc.config.Account)
	if err != nil {
		return nil, err
	}

	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	added, err := bundle.Add(models.PendingCall{
		ID:       params.ID,
		Function: fn,
		Args:     values,
		To:       to,
		Module:   params.Module,
	})
	if err != nil {
		return nil, err
	}

	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}
	return uc.result(bundle, &added), nil
}

// Remove drops the calls with the given ids. Unknown ids are ignored.
func (uc *ManageBundle) Remove(ctx context.Context, ids []string) (*BundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, id := range ids {
		if _, ok := bundle.Get(id); ok {
			removed = append(removed, id)
		}
		bundle.Remove(id)
	}

	if len(removed) > 0 {
		if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
			return nil, err
		}
	}

	result := uc.result(bundle, nil)
	result.Removed = removed
	return result, nil
}

// Replace swaps a queued call for an edited version under the same id and
// at the same position
func (uc *ManageBundle) Replace(ctx context.Context, params ReplaceCallParams) (*BundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	current, ok := bundle.Get(params.ID)
	if !ok {
		return nil, &domain.CallNotFoundError{ID: params.ID}
	}

	raws := rawsOf(current.Args)
	if len(params.Args) > 0 {
		if raws, err = parseArgs(current.Function, params.Args); err != nil {
			return nil, err
		}
	} else if !params.Interactive {
		return nil, fmt.Errorf("no arguments given for %s", params.ID)
	}

	values, err := uc.rebind(ctx, current, raws, params.Interactive)
	if err != nil {
		return nil, err
	}

	to := current.To
	if params.To != "" {
		if to, err = resolveTarget(params.To, nil, uc.config.Account); err != nil {
			return nil, err
		}
	}

	replaced, err := bundle.Replace(params.ID, models.PendingCall{
		Function: current.Function,
		Args:     values,
		To:       to,
		Module:   current.Module,
	})
	if err != nil {
		return nil, err
	}

	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}
	return uc.result(bundle, &replaced), nil
}

// rebind validates the replacement arguments. Interactive edits always go
// through the prompter, starting from raws.
func (uc *ManageBundle) rebind(ctx context.Context, call models.PendingCall, raws []abi.Raw, interactive bool) ([]abi.ParamValue, error) {
	if interactive && uc.prompter != nil {
		prompted, err := uc.prompter.PromptArguments(ctx, call.Function, raws)
		if err != nil {
			return nil, err
		}
		raws = prompted
	}
	return bindArgs(ctx, call.Function, raws, nil)
}

// Reorder puts the bundle in a new execution order. The order must name
// every queued call exactly once.
func (uc *ManageBundle) Reorder(ctx context.Context, params ReorderBundleParams) (*BundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	ids := params.IDs
	if params.Interactive && uc.reorderer != nil {
		if ids, err = uc.reorderer.Reorder(ctx, bundle.Calls()); err != nil {
			return nil, err
		}
	}

	if err := bundle.Reorder(ids); err != nil {
		return nil, err
	}

	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}
	return uc.result(bundle, nil), nil
}

// List returns the queued calls in execution order
func (uc *ManageBundle) List(ctx context.Context) (*BundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}
	return uc.result(bundle, nil), nil
}

// Clear drops every queued call
func (uc *ManageBundle) Clear(ctx context.Context) (*BundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	removed := bundle.IDs()
	bundle.Clear()
	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}

	result := uc.result(bundle, nil)
	result.Removed = removed
	return result, nil
}

func (uc *ManageBundle) prompterFor(interactive bool) ArgumentPrompter {
	if !interactive {
		return nil
	}
	return uc.prompter
}

func (uc *ManageBundle) result(bundle *models.TransactionBundle, call *models.PendingCall) *BundleResult {
	return &BundleResult{
		Entries: entriesOf(bundle),
		Path:    uc.repo.GetPath(),
		Call:    call,
	}
}

func entriesOf(bundle *models.TransactionBundle) []BundleEntry {
	calls := bundle.Calls()
	entries := make([]BundleEntry, len(calls))
	for i, c := range calls {
		entries[i] = BundleEntry{
			Call:     c,
			Valid:    c.Valid(),
			Problems: argumentProblems(c.Function, c.Args),
		}
	}
	return entries
}
