package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
)

const testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCredentials() *models.Credentials {
	key, err := crypto.HexToECDSA(testKeyHex)
	if err != nil {
		panic(err)
	}
	return models.NewCredentials(key)
}

func testNetwork() *config.Network {
	return &config.Network{
		Name:      "zkSyncTestnet",
		ChainID:   280,
		RPCURL:    "https://zksync2-testnet.zksync.dev",
		L1Network: "goerli",
		VerifyURL: "https://zksync2-testnet-explorer.zksync.dev/contract_verification",
	}
}

func testArtifact() *models.Artifact {
	return &models.Artifact{
		ContractName: "ZkMochi",
		SourceName:   "contracts/ZkMochi.sol",
		ABI:          abi.ABI{Methods: map[string]abi.Method{"mint": {Name: "mint"}}},
		Bytecode:     []byte{0x60, 0x80},
	}
}

// Simple mock implementations for testing

type mockCredentialStore struct {
	creds *models.Credentials
	err   error
}

func (m *mockCredentialStore) Credentials(ctx context.Context) (*models.Credentials, error) {
	return m.creds, m.err
}

type mockArtifactStore struct {
	artifact  *models.Artifact
	err       error
	encodeErr error
}

func (m *mockArtifactStore) LoadArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.artifact, nil
}

func (m *mockArtifactStore) EncodeConstructorArgs(artifact *models.Artifact, args []string) (string, error) {
	return "0x", m.encodeErr
}

type mockDialer struct {
	ledger *mockLedger
	err    error
	calls  int
}

func (m *mockDialer) Dial(ctx context.Context, network *config.Network, creds *models.Credentials) (LedgerClient, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.ledger, nil
}

// mockLedger records every call in order so tests can assert interleaving
type mockLedger struct {
	timeline []string

	estimate    *models.FeeEstimate
	estimateErr error
	deployErr   error
	deployCalls int

	submitErrAt int // 1-based submit call that fails, 0 for never
	awaitErrAt  int
	revertAt    int
	submitCalls int
	awaitCalls  int
	submitted   []*models.ContractCall
	closed      bool

	honorCtx         bool // fail calls whose context is already done
	estimateDeadline bool // the last estimate ran under a deadline
	sendDeadline     bool // some deploy, submit or await ran under a deadline
}

func (m *mockLedger) before(ctx context.Context, estimate bool) error {
	_, hasDeadline := ctx.Deadline()
	if estimate {
		m.estimateDeadline = hasDeadline
	} else if hasDeadline {
		m.sendDeadline = true
	}
	if m.honorCtx {
		return ctx.Err()
	}
	return nil
}

func (m *mockLedger) EstimateDeployFee(ctx context.Context, spec *models.DeploymentSpec) (*models.FeeEstimate, error) {
	m.timeline = append(m.timeline, "estimate-deploy")
	if err := m.before(ctx, true); err != nil {
		return nil, err
	}
	return m.estimate, m.estimateErr
}

func (m *mockLedger) Deploy(ctx context.Context, spec *models.DeploymentSpec) (*models.DeploymentResult, error) {
	m.deployCalls++
	m.timeline = append(m.timeline, "deploy")
	if err := m.before(ctx, false); err != nil {
		return nil, err
	}
	if m.deployErr != nil {
		return nil, m.deployErr
	}
	return &models.DeploymentResult{
		ContractAddress:     "0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0",
		TransactionHash:     "0xdeploy",
		ConstructorEncoding: "0x0020",
		BlockNumber:         7,
	}, nil
}

func (m *mockLedger) EstimateCallFee(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.FeeEstimate, error) {
	m.timeline = append(m.timeline, "estimate-call")
	if err := m.before(ctx, true); err != nil {
		return nil, err
	}
	return m.estimate, m.estimateErr
}

func (m *mockLedger) Submit(ctx context.Context, abiSource *models.Artifact, call *models.ContractCall) (*models.TxHandle, error) {
	m.submitCalls++
	m.timeline = append(m.timeline, fmt.Sprintf("submit-%d", m.submitCalls))
	m.submitted = append(m.submitted, call)
	if err := m.before(ctx, false); err != nil {
		return nil, err
	}
	if m.submitCalls == m.submitErrAt {
		return nil, fmt.Errorf("nonce too low")
	}
	return &models.TxHandle{Hash: fmt.Sprintf("0x%04x", m.submitCalls), Nonce: uint64(m.submitCalls)}, nil
}

func (m *mockLedger) AwaitConfirmation(ctx context.Context, handle *models.TxHandle) (*models.Receipt, error) {
	m.awaitCalls++
	m.timeline = append(m.timeline, fmt.Sprintf("await-%d", m.awaitCalls))
	if err := m.before(ctx, false); err != nil {
		return nil, err
	}
	if m.awaitCalls == m.awaitErrAt {
		return nil, fmt.Errorf("connection reset")
	}
	return &models.Receipt{
		TxHash:      handle.Hash,
		BlockNumber: uint64(100 + m.awaitCalls),
		Succeeded:   m.awaitCalls != m.revertAt,
	}, nil
}

func (m *mockLedger) Close() {
	m.closed = true
}

type mockConfirmer struct {
	answer    bool
	err       error
	messages  []string
	onConfirm func()
}

func (m *mockConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	m.messages = append(m.messages, message)
	if m.onConfirm != nil {
		m.onConfirm()
	}
	return m.answer, m.err
}

type mockVerifier struct {
	id       string
	err      error
	requests []*VerificationRequest
}

func (m *mockVerifier) Verify(ctx context.Context, req *VerificationRequest) (string, error) {
	m.requests = append(m.requests, req)
	return m.id, m.err
}

type memRepository struct {
	records map[string]*models.DeploymentRecord
	saveErr error
	saves   int
}

func newMemRepository(records ...*models.DeploymentRecord) *memRepository {
	r := &memRepository{records: make(map[string]*models.DeploymentRecord)}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (m *memRepository) GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *memRepository) ListDeployments(ctx context.Context) ([]*models.DeploymentRecord, error) {
	out := make([]*models.DeploymentRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memRepository) SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[record.ID] = record
	return nil
}

type mockResolver struct {
	networks map[string]*config.Network
}

func (m *mockResolver) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(m.networks))
	for name := range m.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *mockResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	n, ok := m.networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, name)
	}
	return n, nil
}

// mockChecker answers by RPC URL
type mockChecker struct {
	chainIDs map[string]uint64
	code     map[string]bool // rpcURL + address
	err      error
	calls    int
}

func (m *mockChecker) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.chainIDs[rpcURL], nil
}

func (m *mockChecker) CodeExists(ctx context.Context, rpcURL, address string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.code[rpcURL+address], nil
}

func fixedEstimate() *models.FeeEstimate {
	// 2,000,000 gas at 0.25 gwei = 0.0005 ETH
	return models.NewFeeEstimate(2_000_000, big.NewInt(250_000_000))
}
