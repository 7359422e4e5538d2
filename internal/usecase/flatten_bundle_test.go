package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

func storedTransfers(calls ...string) *memoryBundleRepo {
	file := &models.BundleFile{Version: models.BundleFileVersion}
	for _, amount := range calls {
		file.Calls = append(file.Calls, models.BundleRecord{
			ID:        "transfer_" + amount,
			Signature: "transfer(address to, uint256 amount)",
			To:        testToken,
			Args:      []abi.Raw{abi.Text(testTarget.Hex()), abi.Text(amount)},
		})
	}
	return &memoryBundleRepo{file: file}
}

func TestFlattenBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("calls in order", func(t *testing.T) {
		repo := storedTransfers("1", "2")
		uc := usecase.NewFlattenBundle(testRuntime(), repo, models.NewIDGenerator(fixedClock))

		result, err := uc.Run(ctx, usecase.FlattenBundleParams{})
		require.NoError(t, err)
		require.Len(t, result.Calls, 2)
		assert.Nil(t, result.Packed)
		assert.Equal(t, []string{"transfer_1", "transfer_2"}, result.IDs)
		assert.Equal(t, testToken, result.Calls[0].To)
		assert.Equal(t, common.LeftPadBytes([]byte{2}, 32), []byte(result.Calls[1].Data[4+32:]))
		assert.Equal(t, result.Calls, result.Dispatch())
	})

	t.Run("multisend packing", func(t *testing.T) {
		repo := storedTransfers("1", "2")
		uc := usecase.NewFlattenBundle(testRuntime(), repo, models.NewIDGenerator(fixedClock))

		result, err := uc.Run(ctx, usecase.FlattenBundleParams{MultiSend: true})
		require.NoError(t, err)
		require.NotNil(t, result.Packed)
		assert.Equal(t, testMultiSnd, result.MultiSend)
		assert.Equal(t, testMultiSnd, result.Packed.To)
		assert.Equal(t, models.OperationDelegateCall, result.Packed.Operation)
		assert.Len(t, result.Dispatch(), 1)
	})

	t.Run("multisend needs a configured contract", func(t *testing.T) {
		cfg := testRuntime()
		cfg.Modules.MultiSend = ""
		uc := usecase.NewFlattenBundle(cfg, storedTransfers("1"), models.NewIDGenerator(fixedClock))

		_, err := uc.Run(ctx, usecase.FlattenBundleParams{MultiSend: true})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("empty bundle cannot be packed", func(t *testing.T) {
		uc := usecase.NewFlattenBundle(testRuntime(), &memoryBundleRepo{}, models.NewIDGenerator(fixedClock))

		result, err := uc.Run(ctx, usecase.FlattenBundleParams{})
		require.NoError(t, err)
		assert.Empty(t, result.Calls)

		_, err = uc.Run(ctx, usecase.FlattenBundleParams{MultiSend: true})
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("one invalid call fails the whole bundle", func(t *testing.T) {
		repo := storedTransfers("1", "not-a-number", "3")
		uc := usecase.NewFlattenBundle(testRuntime(), repo, models.NewIDGenerator(fixedClock))

		result, err := uc.Run(ctx, usecase.FlattenBundleParams{})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrEncoding)
		assert.ErrorContains(t, err, "transfer_not-a-number")
	})
}

// MockBatchWriter is a mock implementation of BatchWriter
type MockBatchWriter struct {
	mock.Mock
}

func (m *MockBatchWriter) WriteBatch(ctx context.Context, path string, format usecase.ExportFormat, batch *models.SafeBatch) error {
	return m.Called(ctx, path, format, batch).Error(0)
}

func TestExportBundle(t *testing.T) {
	ctx := context.Background()
	createdAt := time.UnixMilli(1700000000500)
	cfg := testRuntime()
	flatten := usecase.NewFlattenBundle(cfg, storedTransfers("1", "2"), models.NewIDGenerator(fixedClock))

	t.Run("one transaction per call", func(t *testing.T) {
		writer := new(MockBatchWriter)
		uc := usecase.NewExportBundle(cfg, flatten, writer)

		result, err := uc.Run(ctx, usecase.ExportBundleParams{CreatedAt: createdAt, Description: "pay twice"})
		require.NoError(t, err)
		batch := result.Batch

		assert.Equal(t, usecase.ExportFormatJSON, result.Format)
		assert.Equal(t, usecase.DefaultBatchName, batch.Meta.Name)
		assert.Equal(t, "pay twice", batch.Meta.Description)
		assert.Equal(t, "1", batch.ChainID)
		assert.Equal(t, createdAt.UnixMilli(), batch.CreatedAt)
		assert.Equal(t, testAccount.Hex(), batch.Meta.CreatedFromSafeAddress)
		require.Len(t, batch.Transactions, 2)
		assert.Equal(t, testToken.Hex(), batch.Transactions[0].To)
		assert.Equal(t, "0", batch.Transactions[0].Value)
		writer.AssertNotCalled(t, "WriteBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("packed and written", func(t *testing.T) {
		writer := new(MockBatchWriter)
		writer.On("WriteBatch", mock.Anything, "batch.yaml", usecase.ExportFormatYAML, mock.Anything).Return(nil)
		uc := usecase.NewExportBundle(cfg, flatten, writer)

		result, err := uc.Run(ctx, usecase.ExportBundleParams{
			Name:      "packed",
			MultiSend: true,
			Output:    "batch.yaml",
			Format:    usecase.ExportFormatYAML,
			CreatedAt: createdAt,
		})
		require.NoError(t, err)
		require.Len(t, result.Batch.Transactions, 1)
		assert.Equal(t, testMultiSnd.Hex(), result.Batch.Transactions[0].To)
		assert.Equal(t, uint8(models.OperationDelegateCall), result.Batch.Transactions[0].Operation)
		writer.AssertExpectations(t)
	})

	t.Run("unknown format", func(t *testing.T) {
		uc := usecase.NewExportBundle(cfg, flatten, new(MockBatchWriter))

		_, err := uc.Run(ctx, usecase.ExportBundleParams{Format: "csv"})
		assert.ErrorContains(t, err, "unknown export format")
	})
}
