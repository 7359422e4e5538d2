package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// loadBundle reads the stored bundle and rebuilds it, revalidating every
// persisted literal against the signature stored with it
func loadBundle(ctx context.Context, repo BundleRepository, ids *models.IDGenerator) (*models.TransactionBundle, error) {
	file, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle: %w", err)
	}
	if file == nil {
		return models.NewTransactionBundle(ids), nil
	}
	if file.Version > models.BundleFileVersion {
		return nil, fmt.Errorf("bundle %s has version %d, this ztx supports up to %d", repo.GetPath(), file.Version, models.BundleFileVersion)
	}

	bundle, err := models.DeserializeBundle(file.Calls, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", repo.GetPath(), err)
	}
	return bundle, nil
}

// saveBundle persists the bundle under the session account and chain
func saveBundle(ctx context.Context, repo BundleRepository, cfg *config.RuntimeConfig, bundle *models.TransactionBundle) error {
	file := &models.BundleFile{
		Version: models.BundleFileVersion,
		Account: cfg.Account,
		ChainID: cfg.ChainID,
		Calls:   bundle.Serialize(),
	}
	if err := repo.Save(ctx, file); err != nil {
		return fmt.Errorf("failed to save bundle: %w", err)
	}
	return nil
}
