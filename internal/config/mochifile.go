package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

// MochiFileName is the optional project file at the project root
const MochiFileName = "mochi.toml"

// Defaults applied to missing mochi.toml values
const (
	DefaultContractName  = "ZkMochi"
	DefaultArtifactsDir  = "artifacts-zk"
	DefaultSolcVersion   = "0.8.17"
	DefaultZksolcVersion = "1.3.5"
	DefaultMintTotal     = 10000
	DefaultBatchSize     = 250
)

// LoadMochiFile loads mochi.toml from the project root.
// A missing file yields the defaults.
func LoadMochiFile(projectRoot string) (*config.MochiFile, error) {
	file := &config.MochiFile{}

	path := filepath.Join(projectRoot, MochiFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", MochiFileName, err)
		}
	}

	applyDefaults(file)

	// Expand environment variables in values that commonly carry secrets or hosts
	file.Contract.Address = os.ExpandEnv(file.Contract.Address)
	file.Mint.Recipient = os.ExpandEnv(file.Mint.Recipient)
	for name, network := range file.Networks {
		if network == nil {
			delete(file.Networks, name)
			continue
		}
		network.Name = name
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.VerifyURL = os.ExpandEnv(network.VerifyURL)
	}

	return file, nil
}

func applyDefaults(file *config.MochiFile) {
	if file.Contract.Name == "" {
		file.Contract.Name = DefaultContractName
	}
	if file.Contract.ArtifactsDir == "" {
		file.Contract.ArtifactsDir = DefaultArtifactsDir
	}
	if file.Compiler.SolcVersion == "" {
		file.Compiler.SolcVersion = DefaultSolcVersion
	}
	if file.Compiler.ZksolcVersion == "" {
		file.Compiler.ZksolcVersion = DefaultZksolcVersion
	}
	if file.Mint.Total == 0 {
		file.Mint.Total = DefaultMintTotal
	}
	if file.Mint.BatchSize == 0 {
		file.Mint.BatchSize = DefaultBatchSize
	}
	if file.Networks == nil {
		file.Networks = make(map[string]*config.Network)
	}
}
