package modules

import (
	"context"

	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// Session drives one module planning flow:
//
//	Unconfigured -> Validating -> Planned | Rejected
//
// A Planned session returns the cached plan for a request with the same key
// without planning again. Any other request starts a new validation.
type Session struct {
	planner *Planner
	state   models.PlanState
	key     string
	plan    *models.ModuleDeploymentPlan
	err     error
}

// NewSession creates an unconfigured session.
func NewSession(planner *Planner) *Session {
	return &Session{planner: planner, state: models.PlanStateUnconfigured}
}

// State returns the current state
func (s *Session) State() models.PlanState {
	return s.state
}

// Err returns the validation failure of a rejected session
func (s *Session) Err() error {
	if s.state != models.PlanStateRejected {
		return nil
	}
	return s.err
}

// Plan returns the plan for req, moving the session to Planned or Rejected.
func (s *Session) Plan(ctx context.Context, req Request) (*models.ModuleDeploymentPlan, error) {
	key := req.Key()
	if s.state == models.PlanStatePlanned && s.key == key {
		return s.plan, nil
	}

	s.state = models.PlanStateValidating
	s.key = key
	s.plan, s.err = nil, nil

	plan, err := s.planner.Plan(ctx, req)
	if err != nil {
		s.state = models.PlanStateRejected
		s.err = err
		return nil, err
	}

	s.state = models.PlanStatePlanned
	s.plan = plan
	return plan, nil
}

// Reset returns the session to Unconfigured
func (s *Session) Reset() {
	s.state = models.PlanStateUnconfigured
	s.key = ""
	s.plan = nil
	s.err = nil
}
