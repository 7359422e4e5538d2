package models

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// SafeBatchVersion is the Transaction Builder batch file version
const SafeBatchVersion = "1.0"

// SafeBatch is a Safe Transaction Builder batch file
type SafeBatch struct {
	Version      string        `json:"version" yaml:"version"`
	ChainID      string        `json:"chainId" yaml:"chainId"`
	CreatedAt    int64         `json:"createdAt" yaml:"createdAt"`
	Meta         SafeBatchMeta `json:"meta" yaml:"meta"`
	Transactions []SafeTxData  `json:"transactions" yaml:"transactions"`
}

// SafeBatchMeta describes a batch file
type SafeBatchMeta struct {
	Name                    string `json:"name" yaml:"name"`
	Description             string `json:"description,omitempty" yaml:"description,omitempty"`
	TxBuilderVersion        string `json:"txBuilderVersion,omitempty" yaml:"txBuilderVersion,omitempty"`
	CreatedFromSafeAddress  string `json:"createdFromSafeAddress,omitempty" yaml:"createdFromSafeAddress,omitempty"`
	CreatedFromOwnerAddress string `json:"createdFromOwnerAddress,omitempty" yaml:"createdFromOwnerAddress,omitempty"`
}

// SafeTxData represents a single transaction in a Safe batch
type SafeTxData struct {
	To        string `json:"to" yaml:"to"`
	Value     string `json:"value" yaml:"value"`
	Data      string `json:"data" yaml:"data"`
	Operation uint8  `json:"operation" yaml:"operation"` // 0 = Call, 1 = DelegateCall
}

// NewSafeBatch builds a batch from calls in execution order
func NewSafeBatch(name string, account common.Address, chainID uint64, createdAt time.Time, calls []Call) *SafeBatch {
	batch := &SafeBatch{
		Version:   SafeBatchVersion,
		ChainID:   strconv.FormatUint(chainID, 10),
		CreatedAt: createdAt.UnixMilli(),
		Meta:      SafeBatchMeta{Name: name},
		Transactions: lo.Map(calls, func(c Call, _ int) SafeTxData {
			return SafeTxData{
				To:        c.To.Hex(),
				Value:     c.ValueOrZero().String(),
				Data:      c.Data.String(),
				Operation: uint8(c.Operation),
			}
		}),
	}
	if account != (common.Address{}) {
		batch.Meta.CreatedFromSafeAddress = account.Hex()
	}
	return batch
}
