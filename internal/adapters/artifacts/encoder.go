package artifacts

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

// PackConstructor ABI encodes constructor arguments given as strings
func PackConstructor(artifact *models.Artifact, args []string) ([]byte, error) {
	values, err := ConvertArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor of %s: %w", artifact.ContractName, err)
	}
	return artifact.ABI.Pack("", values...)
}

// PackCall ABI encodes a method call with arguments given as strings
func PackCall(artifact *models.Artifact, method string, args []string) ([]byte, error) {
	values, err := MethodArgs(artifact, method, args)
	if err != nil {
		return nil, err
	}
	return artifact.ABI.Pack(method, values...)
}

// MethodArgs converts string arguments to the Go values expected by a method
func MethodArgs(artifact *models.Artifact, method string, args []string) ([]interface{}, error) {
	m, ok := artifact.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found in %s ABI", method, artifact.ContractName)
	}
	values, err := ConvertArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return values, nil
}

// ConvertArgs converts strings to the Go values go-ethereum packs for each input type
func ConvertArgs(inputs abi.Arguments, args []string) ([]interface{}, error) {
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}

	values := make([]interface{}, len(inputs))
	for i, input := range inputs {
		v, err := convertArg(input.Type, strings.TrimSpace(args[i]))
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = v
	}
	return values, nil
}

func convertArg(t abi.Type, value string) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		return value, nil

	case abi.AddressTy:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, value)
		}
		return common.HexToAddress(value), nil

	case abi.BoolTy:
		return strconv.ParseBool(value)

	case abi.UintTy, abi.IntTy:
		return convertInteger(t, value)

	case abi.BytesTy:
		return hexutil.Decode(value)

	case abi.FixedBytesTy:
		raw, err := hexutil.Decode(value)
		if err != nil {
			return nil, err
		}
		if len(raw) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, type holds %d", len(raw), t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(raw))
		return arr.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

// convertInteger returns the sized Go integer go-ethereum expects for
// uint8..uint64 / int8..int64 and *big.Int otherwise
func convertInteger(t abi.Type, value string) (interface{}, error) {
	n, ok := new(big.Int).SetString(value, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for unsigned type", value)
	}
	limit := t.Size
	if t.T == abi.IntTy {
		limit--
	}
	if n.BitLen() > limit {
		return nil, fmt.Errorf("value %s overflows %s", value, t.String())
	}

	if t.T == abi.UintTy {
		switch t.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
		return n, nil
	}

	switch t.Size {
	case 8:
		return int8(n.Int64()), nil
	case 16:
		return int16(n.Int64()), nil
	case 32:
		return int32(n.Int64()), nil
	case 64:
		return n.Int64(), nil
	}
	return n, nil
}
