package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
)

// lookupTimeout bounds a single code lookup
const lookupTimeout = 10 * time.Second

// CheckerAdapter looks up contract code through an RPC endpoint. It connects
// on first use. Without an RPC URL every address is reported empty.
type CheckerAdapter struct {
	rpcURL  string
	chainID uint64
	log     *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *CheckerAdapter {
	return &CheckerAdapter{
		rpcURL:  cfg.RPCURL,
		chainID: cfg.ChainID,
		log:     log.With("component", "CheckerAdapter"),
	}
}

// connect establishes the connection and verifies the chain id
func (c *CheckerAdapter) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.chainID != 0 && networkChainID.Uint64() != c.chainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.chainID, networkChainID.Uint64())
	}

	c.client = client
	return client, nil
}

// HasCode reports whether contract code exists at address
func (c *CheckerAdapter) HasCode(ctx context.Context, address common.Address) (bool, error) {
	if c.rpcURL == "" {
		c.log.Debug("no rpc url configured, assuming empty address", "address", address.Hex())
		return false, nil
	}

	client, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}

	c.log.Debug("code lookup", "address", address.Hex(), "size", len(code))
	return len(code) > 0, nil
}

// Close releases the RPC connection
func (c *CheckerAdapter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// Ensure the adapter implements the interface
var _ modules.CodeChecker = (*CheckerAdapter)(nil)
