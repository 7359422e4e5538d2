package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

func testEntries(t *testing.T) []usecase.BundleEntry {
	t.Helper()
	fn, err := abi.ParseSignature("function transfer(address to, uint256 amount)")
	require.NoError(t, err)
	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	good, _ := abi.ValidateAll(fn.Inputs, []abi.Raw{abi.Text(to.Hex()), abi.Text("5")})
	bad, _ := abi.ValidateAll(fn.Inputs, []abi.Raw{abi.Text("0x12"), abi.Text("5")})

	return []usecase.BundleEntry{
		{Call: models.PendingCall{ID: "transfer_1", Function: fn, Args: good, To: to}, Valid: true},
		{
			Call:     models.PendingCall{ID: "transfer_2", Function: fn, Args: bad, To: to, Module: &models.ModuleRef{Type: "exit", Address: to}},
			Problems: []string{"to: invalid address"},
		},
	}
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError("failed to load: no account configured"), "No account configured")
	assert.Contains(t, FormatError("unknown config key: x\nAvailable keys: account"), "Available keys: account")
}

func TestTruncateHex(t *testing.T) {
	assert.Equal(t, "0x1234", truncateHex("0x1234", 10))
	assert.Equal(t, "0x12...ef", truncateHex("0x1234567890abcdef", 9))
}

func TestModuleTitle(t *testing.T) {
	assert.Equal(t, "Exit", moduleTitle("exit"))
	assert.Equal(t, "Reality Eth", moduleTitle("reality-eth"))
}

func TestBundleRenderer(t *testing.T) {
	result := &usecase.BundleResult{Entries: testEntries(t), Path: "/project/.ztx/bundle.json"}

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewBundleRenderer(&out, false).Render(result))

		text := out.String()
		assert.Contains(t, text, "transfer_1")
		assert.Contains(t, text, "✓ valid")
		assert.Contains(t, text, "✗ 1 problem(s)")
		assert.Contains(t, text, "[exit]")
		assert.Contains(t, text, "transfer_2: to: invalid address")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewBundleRenderer(&out, true).Render(result))

		var decoded struct {
			Path  string `json:"path"`
			Calls []struct {
				ID        string `json:"id"`
				Signature string `json:"signature"`
				Valid     bool   `json:"valid"`
			} `json:"calls"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "/project/.ztx/bundle.json", decoded.Path)
		require.Len(t, decoded.Calls, 2)
		assert.True(t, decoded.Calls[0].Valid)
		assert.False(t, decoded.Calls[1].Valid)
		assert.Contains(t, decoded.Calls[0].Signature, "transfer(address to, uint256 amount)")
	})

	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewBundleRenderer(&out, false).Render(&usecase.BundleResult{}))
		assert.Contains(t, out.String(), "Bundle is empty")
	})
}

func TestExportRenderer(t *testing.T) {
	batch := &models.SafeBatch{ChainID: "100", Transactions: []models.SafeTxData{{To: "0x1"}}}

	var out bytes.Buffer
	require.NoError(t, NewExportRenderer(&out).Render(&usecase.ExportBundleResult{Batch: batch, Output: "-"}))
	assert.Empty(t, out.String())

	require.NoError(t, NewExportRenderer(&out).Render(&usecase.ExportBundleResult{Batch: batch, Output: "batch.json", Format: usecase.ExportFormatJSON}))
	assert.Contains(t, out.String(), "Exported 1 transaction(s) for chain 100")
}
