package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// BundleRecord is the persisted form of a pending call. It is self-describing:
// the full signature text is enough to rebuild the call without the interface.
type BundleRecord struct {
	ID        string         `json:"id" yaml:"id"`
	Signature string         `json:"signature" yaml:"signature"`
	To        common.Address `json:"to" yaml:"to"`
	Module    *ModuleRef     `json:"module,omitempty" yaml:"module,omitempty"`
	Args      []abi.Raw      `json:"args" yaml:"args"`
}

// BundleFile is the on-disk layout of a bundle
type BundleFile struct {
	Version int            `json:"version" yaml:"version"`
	Account common.Address `json:"account,omitempty" yaml:"account,omitempty"`
	ChainID uint64         `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Calls   []BundleRecord `json:"calls" yaml:"calls"`
}

// BundleFileVersion is the current BundleFile layout version.
const BundleFileVersion = 1

// Serialize returns the bundle as an ordered record sequence.
func (b *TransactionBundle) Serialize() []BundleRecord {
	return lo.Map(b.calls, func(c PendingCall, _ int) BundleRecord {
		return RecordOf(c)
	})
}

// RecordOf converts a pending call to its persisted form.
func RecordOf(c PendingCall) BundleRecord {
	rec := BundleRecord{
		ID:        c.ID,
		Signature: c.Function.Full(),
		To:        c.To,
		Args:      lo.Map(c.Args, func(v abi.ParamValue, _ int) abi.Raw { return v.Raw() }),
	}
	if c.Module != nil {
		m := *c.Module
		rec.Module = &m
	}
	return rec
}

// DeserializeBundle rebuilds a bundle from records. Each signature is parsed
// from its text and the literals are validated against it, so calls whose
// arguments no longer validate come back with Valid() == false rather than an
// error. Callers holding a live interface should check the signatures against it.
func DeserializeBundle(records []BundleRecord, ids *IDGenerator) (*TransactionBundle, error) {
	bundle := NewTransactionBundle(ids)
	for i, rec := range records {
		fn, err := abi.ParseSignature(rec.Signature)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.ID, err)
		}
		args, _ := abi.ValidateAll(fn.Inputs, rec.Args)

		call := PendingCall{
			ID:       rec.ID,
			Function: fn,
			Args:     args,
			To:       rec.To,
		}
		if rec.Module != nil {
			m := *rec.Module
			call.Module = &m
		}
		if _, err := bundle.Add(call); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return bundle, nil
}
