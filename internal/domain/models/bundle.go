package models

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// ModuleRef identifies the module a pending call belongs to
type ModuleRef struct {
	Type    string         `json:"type" yaml:"type"`
	Address common.Address `json:"address" yaml:"address"`
}

// PendingCall is one queued contract call. Calls are never edited in place:
// an edit is a Replace under the same id.
type PendingCall struct {
	ID       string
	Function abi.FunctionSignature
	Args     []abi.ParamValue
	To       common.Address
	Module   *ModuleRef // nil when the call targets the account directly
}

// Valid reports whether every argument validated against the function inputs.
func (c PendingCall) Valid() bool {
	return abi.AllValid(c.Function.Inputs, c.Args)
}

// IDGenerator produces call ids of the form <prefix>_<unix millis>. Ids
// generated within the same millisecond get a _<n> counter suffix.
type IDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	lastMs  int64
	counter int
}

// NewIDGenerator creates an id generator. A nil clock uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id for prefix.
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms == g.lastMs {
		g.counter++
		return fmt.Sprintf("%s_%d_%d", prefix, ms, g.counter)
	}
	g.lastMs = ms
	g.counter = 0
	return fmt.Sprintf("%s_%d", prefix, ms)
}

// TransactionBundle is the ordered queue of pending calls for one session.
// Execution order is insertion order unless reordered. Ids are unique.
type TransactionBundle struct {
	calls []PendingCall
	ids   *IDGenerator
}

// NewTransactionBundle creates an empty bundle. A nil generator uses the wall clock.
func NewTransactionBundle(ids *IDGenerator) *TransactionBundle {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &TransactionBundle{ids: ids}
}

// Add appends call and returns it with its id. An id is generated from the
// function name when call.ID is empty.
func (b *TransactionBundle) Add(call PendingCall) (PendingCall, error) {
	if call.ID == "" {
		call.ID = b.ids.Next(call.Function.Name)
		for b.indexOf(call.ID) >= 0 {
			call.ID = b.ids.Next(call.Function.Name)
		}
	} else if b.indexOf(call.ID) >= 0 {
		return PendingCall{}, fmt.Errorf("%w: %s", domain.ErrDuplicateID, call.ID)
	}

	b.calls = append(b.calls, call)
	return call, nil
}

// Remove drops the call with id. Removing an absent id is a no-op.
func (b *TransactionBundle) Remove(id string) {
	i := b.indexOf(id)
	if i < 0 {
		return
	}
	b.calls = append(b.calls[:i:i], b.calls[i+1:]...)
}

// Replace swaps the call with id for call, keeping its position and id.
func (b *TransactionBundle) Replace(id string, call PendingCall) (PendingCall, error) {
	i := b.indexOf(id)
	if i < 0 {
		return PendingCall{}, &domain.CallNotFoundError{ID: id}
	}
	call.ID = id
	b.calls[i] = call
	return call, nil
}

// Reorder puts the calls in the order of ids, which must name every current
// call exactly once. On error the bundle is left untouched.
func (b *TransactionBundle) Reorder(ids []string) error {
	current := lo.SliceToMap(b.calls, func(c PendingCall) (string, PendingCall) { return c.ID, c })

	permErr := &domain.PermutationError{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		switch {
		case seen[id]:
			permErr.Duplicates = append(permErr.Duplicates, id)
		case !lo.HasKey(current, id):
			permErr.Unknown = append(permErr.Unknown, id)
		}
		seen[id] = true
	}
	for _, c := range b.calls {
		if !seen[c.ID] {
			permErr.Missing = append(permErr.Missing, c.ID)
		}
	}
	if len(permErr.Missing)+len(permErr.Unknown)+len(permErr.Duplicates) > 0 {
		return permErr
	}

	reordered := make([]PendingCall, len(ids))
	for i, id := range ids {
		reordered[i] = current[id]
	}
	b.calls = reordered
	return nil
}

// Get returns the call with id.
func (b *TransactionBundle) Get(id string) (PendingCall, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return PendingCall{}, false
	}
	return b.calls[i], true
}

// Calls returns a copy of the calls in execution order.
func (b *TransactionBundle) Calls() []PendingCall {
	return append([]PendingCall(nil), b.calls...)
}

// IDs returns the call ids in execution order.
func (b *TransactionBundle) IDs() []string {
	return lo.Map(b.calls, func(c PendingCall, _ int) string { return c.ID })
}

// Len returns the number of queued calls.
func (b *TransactionBundle) Len() int {
	return len(b.calls)
}

// Clear drops every call.
func (b *TransactionBundle) Clear() {
	b.calls = nil
}

// Flatten encodes every call in order. It is all-or-nothing: the first
// encoding failure is returned and no calls are produced.
func (b *TransactionBundle) Flatten() ([]Call, error) {
	out := make([]Call, 0, len(b.calls))
	for _, c := range b.calls {
		data, err := abi.Encode(c.Function, c.Args)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", c.ID, err)
		}
		out = append(out, Call{To: c.To, Value: new(big.Int), Data: data, Operation: OperationCall})
	}
	return out, nil
}

func (b *TransactionBundle) indexOf(id string) int {
	for i, c := range b.calls {
		if c.ID == id {
			return i
		}
	}
	return -1
}
