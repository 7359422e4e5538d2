package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
)

// PlanModuleParams contains parameters for planning a module deployment
type PlanModuleParams struct {
	ModuleType string
	// Config holds the raw parameter literals by name
	Config map[string]string
	// AddToBundle queues the plan calls in the session bundle
	AddToBundle bool
}

// PlanModuleResult contains the deployment plan
type PlanModuleResult struct {
	Plan  *models.ModuleDeploymentPlan
	Spec  modules.Spec
	State models.PlanState
	// Added lists the bundle entries created for the plan
	Added      []models.PendingCall
	BundlePath string
}

// PlanModule validates a module configuration and plans the calls that
// deploy and enable the module on the account
type PlanModule struct {
	config   *config.RuntimeConfig
	planner  *modules.Planner
	session  *modules.Session
	repo     BundleRepository
	ids      *models.IDGenerator
	progress ProgressSink
}

// NewPlanModule creates a new PlanModule use case
func NewPlanModule(
	cfg *config.RuntimeConfig,
	planner *modules.Planner,
	repo BundleRepository,
	ids *models.IDGenerator,
	progress ProgressSink,
) *PlanModule {
	return &PlanModule{
		config:   cfg,
		planner:  planner,
		session:  modules.NewSession(planner),
		repo:     repo,
		ids:      ids,
		progress: progress,
	}
}

// Run executes the plan module use case
func (uc *PlanModule) Run(ctx context.Context, params PlanModuleParams) (*PlanModuleResult, error) {
	if !uc.config.HasAccount() {
		return nil, fmt.Errorf("module plans need the account address: %w", domain.ErrNoAccount)
	}

	spec, err := uc.planner.Spec(params.ModuleType, uc.config.ChainID)
	if err != nil {
		return nil, err
	}

	req := modules.Request{
		ModuleType: params.ModuleType,
		Account:    uc.config.Account,
		ChainID:    uc.config.ChainID,
		Config:     make(map[string]abi.Raw, len(params.Config)),
	}
	for name, literal := range params.Config {
		raw, err := abi.ParseRaw(literal)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		req.Config[name] = raw
	}

	if spec.Kind == models.ModuleKindFactory {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "plan",
			Message: fmt.Sprintf("Planning %s module on chain %d...", spec.Name, req.ChainID),
			Spinner: true,
		})
	}
	plan, err := uc.session.Plan(ctx, req)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "plan"})
	if err != nil {
		return nil, err
	}

	result := &PlanModuleResult{
		Plan:  plan,
		Spec:  spec,
		State: uc.session.State(),
	}
	if !params.AddToBundle {
		return result, nil
	}

	if result.Added, err = uc.queue(ctx, modules.PendingCalls(plan)); err != nil {
		return nil, err
	}
	result.BundlePath = uc.repo.GetPath()
	return result, nil
}

// Session exposes the planning session state, for callers that plan repeatedly
func (uc *PlanModule) Session() *modules.Session {
	return uc.session
}

func (uc *PlanModule) queue(ctx context.Context, calls []models.PendingCall) ([]models.PendingCall, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	added := make([]models.PendingCall, 0, len(calls))
	for _, c := range calls {
		pc, err := bundle.Add(c)
		if err != nil {
			return nil, err
		}
		added = append(added, pc)
	}

	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}
	return added, nil
}
