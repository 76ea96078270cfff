package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

const mochiSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.17;

import "erc721a/contracts/ERC721A.sol";
import {Strings} from "./utils/Strings.sol";

contract ZkMochi is ERC721A {}
`

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func testProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSource(t, root, "contracts/ZkMochi.sol", mochiSource)
	writeSource(t, root, "contracts/utils/Strings.sol", "library Strings {}\n")
	writeSource(t, root, "node_modules/erc721a/contracts/ERC721A.sol", "import './IERC721A.sol';\ncontract ERC721A {}\n")
	writeSource(t, root, "node_modules/erc721a/contracts/IERC721A.sol", "interface IERC721A {}\n")
	return root
}

// fakeExplorer serves the contract_verification API with a scripted status sequence
type fakeExplorer struct {
	mu        sync.Mutex
	statuses  []ExplorerStatus
	polls     int
	submitted *ExplorerRequest
}

func (f *fakeExplorer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /contract_verification", func(w http.ResponseWriter, r *http.Request) {
		var req ExplorerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.submitted = &req
		f.mu.Unlock()
		_, _ = io.WriteString(w, "42")
	})
	mux.HandleFunc("GET /contract_verification/42", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status := f.statuses[min(f.polls, len(f.statuses)-1)]
		f.polls++
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(status)
	})
	return mux
}

func newTestVerifier(t *testing.T, explorer *fakeExplorer) (*Verifier, *usecase.VerificationRequest) {
	t.Helper()
	srv := httptest.NewServer(explorer.handler(t))
	t.Cleanup(srv.Close)

	cfg := &config.RuntimeConfig{
		ProjectRoot: testProject(t),
		MochiFile: &config.MochiFile{Compiler: config.CompilerConfig{
			SolcVersion:   "0.8.17",
			ZksolcVersion: "1.3.5",
		}},
	}
	v := NewVerifier(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	v.pollInterval = time.Millisecond
	v.maxPolls = 5

	return v, &usecase.VerificationRequest{
		Network:             &config.Network{Name: "zkSyncTestnet", VerifyURL: srv.URL + "/contract_verification"},
		Address:             "0x2F31ac0C3C4BC1ed24bDEBFEF33c3F2a756fA9b0",
		FullyQualifiedName:  "contracts/ZkMochi.sol:ZkMochi",
		SourceName:          "contracts/ZkMochi.sol",
		ConstructorArgs:     []string{"ipfs://QmBase/"},
		ConstructorEncoding: "0x0020",
	}
}

func TestVerifier_Success(t *testing.T) {
	explorer := &fakeExplorer{statuses: []ExplorerStatus{
		{Status: StatusQueued},
		{Status: StatusInProgress},
		{Status: StatusSuccessful},
	}}
	v, req := newTestVerifier(t, explorer)

	id, err := v.Verify(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, 3, explorer.polls)

	sent := explorer.submitted
	require.NotNil(t, sent)
	assert.Equal(t, "contracts/ZkMochi.sol:ZkMochi", sent.ContractName)
	assert.Equal(t, req.Address, sent.ContractAddress)
	assert.Equal(t, "0x0020", sent.ConstructorArguments)
	assert.Equal(t, "solidity-standard-json-input", sent.CodeFormat)
	assert.Equal(t, "0.8.17", sent.CompilerSolcVersion)
	assert.Equal(t, "v1.3.5", sent.CompilerZksolcVersion)
	assert.True(t, sent.OptimizationUsed)

	var input standardJSONInput
	require.NoError(t, json.Unmarshal(sent.SourceCode, &input))
	assert.Len(t, input.Sources, 4)
	assert.Contains(t, input.Sources, "erc721a/contracts/IERC721A.sol")
	assert.Contains(t, input.Sources, "contracts/utils/Strings.sol")
}

func TestVerifier_Failed(t *testing.T) {
	explorer := &fakeExplorer{statuses: []ExplorerStatus{
		{Status: StatusFailed, Error: "bytecode mismatch", CompilationErrors: []string{"missing ERC721A"}},
	}}
	v, req := newTestVerifier(t, explorer)

	id, err := v.Verify(context.Background(), req)

	assert.Equal(t, "42", id)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	assert.Contains(t, err.Error(), "bytecode mismatch missing ERC721A")
}

func TestVerifier_GivesUpAfterMaxPolls(t *testing.T) {
	explorer := &fakeExplorer{statuses: []ExplorerStatus{{Status: StatusInProgress}}}
	v, req := newTestVerifier(t, explorer)

	_, err := v.Verify(context.Background(), req)

	assert.ErrorContains(t, err, "still in_progress after 5 checks")
}

func TestVerifier_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "contract not deployed", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	v, req := newTestVerifier(t, &fakeExplorer{statuses: []ExplorerStatus{{}}})
	req.Network.VerifyURL = srv.URL

	_, err := v.Verify(context.Background(), req)

	assert.ErrorContains(t, err, "explorer returned 400: contract not deployed")
}

func TestVerifier_MissingSource(t *testing.T) {
	v, req := newTestVerifier(t, &fakeExplorer{statuses: []ExplorerStatus{{}}})
	req.SourceName = "contracts/Missing.sol"

	_, err := v.Verify(context.Background(), req)

	assert.ErrorContains(t, err, "source contracts/Missing.sol not found")
}

func TestExplorerStatus_Terminal(t *testing.T) {
	assert.True(t, (&ExplorerStatus{Status: StatusSuccessful}).Terminal())
	assert.True(t, (&ExplorerStatus{Status: StatusFailed}).Terminal())
	assert.False(t, (&ExplorerStatus{Status: StatusQueued}).Terminal())
	assert.False(t, (&ExplorerStatus{Status: StatusInProgress}).Terminal())
	assert.False(t, (&ExplorerStatus{Status: "unknown"}).Terminal())
}

func TestZksolcVersion(t *testing.T) {
	assert.Equal(t, "v1.3.5", zksolcVersion("1.3.5"))
	assert.Equal(t, "v1.3.5", zksolcVersion("v1.3.5"))
	assert.Equal(t, "", zksolcVersion(""))
}
