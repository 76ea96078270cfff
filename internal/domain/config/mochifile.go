package config

// MochiFile is the parsed mochi.toml project file. Every section is optional.
type MochiFile struct {
	DefaultNetwork string              `toml:"default_network"`
	Contract       ContractConfig      `toml:"contract"`
	Compiler       CompilerConfig      `toml:"compiler"`
	Mint           MintConfig          `toml:"mint"`
	Networks       map[string]*Network `toml:"networks"`
}

// ContractConfig describes the contract the tool deploys and interacts with
type ContractConfig struct {
	Name            string   `toml:"name"`
	ArtifactsDir    string   `toml:"artifacts_dir"`
	ConstructorArgs []string `toml:"constructor_args"`
	// Address is the deployed contract used by mint when the registry has no record
	Address string `toml:"address"`
}

// CompilerConfig carries the compiler settings explorers need for verification
type CompilerConfig struct {
	SolcVersion   string `toml:"solc_version"`
	ZksolcVersion string `toml:"zksolc_version"`
	Optimizer     *bool  `toml:"optimizer"`
}

// OptimizerEnabled defaults to true when mochi.toml leaves it unset
func (c CompilerConfig) OptimizerEnabled() bool {
	return c.Optimizer == nil || *c.Optimizer
}

// MintConfig holds batch mint defaults
type MintConfig struct {
	Method    string `toml:"method"`
	Total     uint64 `toml:"total"`
	BatchSize uint64 `toml:"batch_size"`
	Recipient string `toml:"recipient"`
}
