package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zkmochi/mochi-cli/internal/adapters/artifacts"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// DefaultPollInterval is how often receipts are polled while awaiting confirmation
const DefaultPollInterval = time.Second

// backend is the subset of ethclient.Client the ledger needs
type backend interface {
	bind.ContractBackend
	ethereum.TransactionReader
	ethereum.ChainIDReader
}

// Dialer connects to a network's RPC endpoint with go-ethereum's ethclient
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a new ledger dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log.With("component", "ledger")}
}

// Dial establishes a connection and checks the chain ID matches the network
func (d *Dialer) Dial(ctx context.Context, network *config.Network, creds *models.Credentials) (usecase.LedgerClient, error) {
	eth, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.RPCURL, err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		eth.Close()
		return nil, fmt.Errorf("chain ID mismatch on %s: expected %d, got %d", network.Name, network.ChainID, chainID.Uint64())
	}

	d.log.Debug("connected", "network", network.Name, "chain_id", chainID, "account", creds.Address().Hex())
	return newClient(eth, eth.Close, chainID, creds, d.log), nil
}

// Client implements usecase.LedgerClient for one network and one wallet
type Client struct {
	eth          backend
	closer       func()
	chainID      *big.Int
	creds        *models.Credentials
	pollInterval time.Duration
	log          *slog.Logger
}

func newClient(eth backend, closer func(), chainID *big.Int, creds *models.Credentials, log *slog.Logger) *Client {
	return &Client{
		eth:          eth,
		closer:       closer,
		chainID:      chainID,
		creds:        creds,
		pollInterval: DefaultPollInterval,
		log:          log,
	}
}

// EstimateDeployFee estimates gas for the creation transaction at the current gas price
func (c *Client) EstimateDeployFee(ctx context.Context, spec *models.DeploymentSpec) (*models.FeeEstimate, error) {
	if err := c.checkTarget(spec); err != nil {
		return nil, err
	}
	artifact := spec.Artifact()
	packed, err := artifacts.PackConstructor(artifact, spec.ConstructorArgs())
	if err != nil {
		return nil, err
	}

	data := append(append([]byte{}, artifact.Bytecode...), packed...)
	return c.estimate(ctx, ethereum.CallMsg{From: c.creds.Address(), Data: data})
}

// EstimateCallFee estimates gas for a contract call at the current gas price
func (c *Client) EstimateCallFee(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.FeeEstimate, error) {
	to, err := parseAddress(call.To)
	if err != nil {
		return nil, err
	}
	data, err := artifacts.PackCall(abiSource, call.Method, call.Args)
	if err != nil {
		return nil, err
	}
	return c.estimate(ctx, ethereum.CallMsg{From: c.creds.Address(), To: &to, Data: data})
}

func (c *Client) estimate(ctx context.Context, msg ethereum.CallMsg) (*models.FeeEstimate, error) {
	gas, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	return models.NewFeeEstimate(gas, gasPrice), nil
}

// Deploy signs and sends the creation transaction, then waits for its receipt
func (c *Client) Deploy(ctx context.Context, spec *models.DeploymentSpec) (*models.DeploymentResult, error) {
	if err := c.checkTarget(spec); err != nil {
		return nil, err
	}
	artifact := spec.Artifact()
	values, err := artifacts.ConvertArgs(artifact.ABI.Constructor.Inputs, spec.ConstructorArgs())
	if err != nil {
		return nil, err
	}
	packed, err := artifact.ABI.Pack("", values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, c.eth, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}
	c.log.Debug("deployment sent", "tx", tx.Hash().Hex(), "nonce", tx.Nonce())

	receipt, err := c.AwaitConfirmation(ctx, &models.TxHandle{Hash: tx.Hash().Hex(), Nonce: tx.Nonce()})
	if err != nil {
		return nil, err
	}
	if !receipt.Succeeded {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, receipt.TxHash)
	}

	// zkSync derives contract addresses differently; the receipt is authoritative
	contractAddress := address.Hex()
	if receipt.ContractAddress != "" {
		contractAddress = receipt.ContractAddress
	}

	return &models.DeploymentResult{
		ContractAddress:     contractAddress,
		TransactionHash:     receipt.TxHash,
		ConstructorEncoding: hexutil.Encode(packed),
		BlockNumber:         receipt.BlockNumber,
		GasUsed:             receipt.GasUsed,
	}, nil
}

// Submit signs and sends a contract call without waiting for it to be mined
func (c *Client) Submit(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.TxHandle, error) {
	to, err := parseAddress(call.To)
	if err != nil {
		return nil, err
	}
	values, err := artifacts.MethodArgs(abiSource, call.Method, call.Args)
	if err != nil {
		return nil, err
	}

	opts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(to, abiSource.ABI, c.eth, c.eth, c.eth)
	tx, err := contract.Transact(opts, call.Method, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", call.Method, err)
	}
	c.log.Debug("transaction sent", "method", call.Method, "tx", tx.Hash().Hex(), "nonce", tx.Nonce())

	return &models.TxHandle{Hash: tx.Hash().Hex(), Nonce: tx.Nonce()}, nil
}

// AwaitConfirmation polls for the receipt until it exists or ctx ends
func (c *Client) AwaitConfirmation(ctx context.Context, handle *models.TxHandle) (*models.Receipt, error) {
	hash := common.HexToHash(handle.Hash)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			return toReceipt(receipt), nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", handle.Hash, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", handle.Hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// checkTarget rejects a spec built for another chain than the one this session signs for
func (c *Client) checkTarget(spec *models.DeploymentSpec) error {
	network := spec.Network()
	if network == nil || network.ChainID == 0 || network.ChainID == c.chainID.Uint64() {
		return nil
	}
	return fmt.Errorf("deployment targets %s (chain %d) but the session is on chain %d",
		network.Name, network.ChainID, c.chainID.Uint64())
}

// Close releases the RPC connection
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

func (c *Client) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.creds.PrivateKey(), c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

func toReceipt(r *types.Receipt) *models.Receipt {
	out := &models.Receipt{
		TxHash:    r.TxHash.Hex(),
		GasUsed:   r.GasUsed,
		Succeeded: r.Status == types.ReceiptStatusSuccessful,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.ContractAddress != (common.Address{}) {
		out.ContractAddress = r.ContractAddress.Hex()
	}
	return out
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

var (
	_ usecase.LedgerDialer = (*Dialer)(nil)
	_ usecase.LedgerClient = (*Client)(nil)
)
