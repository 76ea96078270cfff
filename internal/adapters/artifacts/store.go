package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// hardhatArtifact is the on-disk layout written by hardhat-zksync-solc
type hardhatArtifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// Store loads compiled contract artifacts from the project's artifacts directory
type Store struct {
	root string
}

// NewStore creates an artifact store rooted at the configured artifacts directory
func NewStore(cfg *config.RuntimeConfig) *Store {
	dir := DefaultDir
	if cfg.MochiFile != nil && cfg.MochiFile.Contract.ArtifactsDir != "" {
		dir = cfg.MochiFile.Contract.ArtifactsDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &Store{root: dir}
}

// DefaultDir is where zksolc artifacts land in a hardhat project
const DefaultDir = "artifacts-zk"

// LoadArtifact reads the artifact of the named contract
func (s *Store) LoadArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	path, err := s.locate(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	return parseArtifact(path, data)
}

// locate prefers the conventional contracts/<Name>.sol/<Name>.json path and
// falls back to searching the whole artifacts tree
func (s *Store) locate(name string) (string, error) {
	conventional := filepath.Join(s.root, "contracts", name+".sol", name+".json")
	if _, err := os.Stat(conventional); err == nil {
		return conventional, nil
	}

	var found string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name+".json" {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to search artifacts in %s: %w", s.root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s in %s (run the compiler first)", domain.ErrArtifactNotFound, name, s.root)
	}
	return found, nil
}

func parseArtifact(path string, data []byte) (*models.Artifact, error) {
	var raw hardhatArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	contractABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI in %s: %w", path, err)
	}

	bytecode := raw.Bytecode
	if !strings.HasPrefix(bytecode, "0x") {
		bytecode = "0x" + bytecode
	}
	code, err := hexutil.Decode(bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}

	return &models.Artifact{
		ContractName: raw.ContractName,
		SourceName:   raw.SourceName,
		ABI:          contractABI,
		Bytecode:     code,
		Path:         path,
	}, nil
}

// EncodeConstructorArgs converts args by the constructor's ABI types and returns the hex encoding
func (s *Store) EncodeConstructorArgs(artifact *models.Artifact, args []string) (string, error) {
	packed, err := PackConstructor(artifact, args)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(packed), nil
}

var _ usecase.ArtifactStore = (*Store)(nil)
