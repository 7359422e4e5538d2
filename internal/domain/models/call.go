package models

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// Operation is the Safe execution operation of a call
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

func (o Operation) String() string {
	if o == OperationDelegateCall {
		return "DELEGATECALL"
	}
	return "CALL"
}

// Call is an executable (target, calldata) pair handed to the dispatcher
type Call struct {
	To        common.Address `json:"to"`
	Value     *big.Int       `json:"value"`
	Data      hexutil.Bytes  `json:"data"`
	Operation Operation      `json:"operation"`
}

// ValueOrZero returns the call value, treating nil as zero.
func (c Call) ValueOrZero() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}

var multiSendSignature = abi.FunctionSignature{
	Name:       "multiSend",
	Inputs:     []abi.Param{{Name: "transactions", Type: abi.Bytes()}},
	Mutability: abi.Payable,
}

// PackMultiSend folds calls into a single multiSend(bytes) call on the
// MultiSend contract at multiSend. Each call is packed as
// operation (1 byte) | to (20) | value (32) | data length (32) | data.
// The result must be executed with a delegatecall from the account.
func PackMultiSend(multiSend common.Address, calls []Call) (Call, error) {
	if len(calls) == 0 {
		return Call{}, fmt.Errorf("multisend requires at least one call")
	}

	var packed []byte
	for _, c := range calls {
		packed = append(packed, byte(c.Operation))
		packed = append(packed, c.To.Bytes()...)
		packed = append(packed, math.U256Bytes(new(big.Int).Set(c.ValueOrZero()))...)
		packed = append(packed, math.U256Bytes(big.NewInt(int64(len(c.Data))))...)
		packed = append(packed, c.Data...)
	}

	arg, ok := abi.Validate(abi.Bytes(), abi.Text(hexutil.Encode(packed)))
	if !ok {
		return Call{}, fmt.Errorf("failed to pack multisend payload: %s", arg.Problem)
	}
	data, err := abi.Encode(multiSendSignature, []abi.ParamValue{arg})
	if err != nil {
		return Call{}, err
	}

	return Call{
		To:        multiSend,
		Value:     new(big.Int),
		Data:      data,
		Operation: OperationDelegateCall,
	}, nil
}
