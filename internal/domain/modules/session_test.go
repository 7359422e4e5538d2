package modules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	checker := new(MockCodeChecker)
	session := NewSession(NewPlanner(testCatalog(), checker))
	assert.Equal(t, models.PlanStateUnconfigured, session.State())

	t.Run("rejected carries the validation failure", func(t *testing.T) {
		_, err := session.Plan(ctx, Request{ModuleType: "exit", Account: account, ChainID: 1,
			Config: map[string]abi.Raw{"tokenContract": abi.Text("nope")}})
		require.Error(t, err)
		assert.Equal(t, models.PlanStateRejected, session.State())
		assert.ErrorIs(t, session.Err(), domain.ErrInvalidConfiguration)
	})

	var planned *models.ModuleDeploymentPlan
	t.Run("planned", func(t *testing.T) {
		checker.On("HasCode", ctx, predictedExit(t)).Return(false, nil).Once()

		plan, err := session.Plan(ctx, exitRequest(account, 1))
		require.NoError(t, err)
		assert.Equal(t, models.PlanStatePlanned, session.State())
		assert.NoError(t, session.Err())
		planned = plan
	})

	t.Run("identical request reuses the plan", func(t *testing.T) {
		again, err := session.Plan(ctx, exitRequest(account, 1))
		require.NoError(t, err)
		assert.Same(t, planned, again)
		checker.AssertNumberOfCalls(t, "HasCode", 1)
	})

	t.Run("reset", func(t *testing.T) {
		session.Reset()
		assert.Equal(t, models.PlanStateUnconfigured, session.State())
		assert.NoError(t, session.Err())
	})
}

func predictedExit(t *testing.T) interface{} {
	t.Helper()
	plan, err := NewPlanner(testCatalog(), nil).Plan(context.Background(), exitRequest(account, 1))
	require.NoError(t, err)
	return plan.PredictedAddress
}
