package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
)

const (
	// PrivateKeyEnv holds the deployer wallet secret
	PrivateKeyEnv = "WALLET_PRIVATE_KEY"
	// NodeEnvVar set to "test" disables explorer verification
	NodeEnvVar = "NODE_ENV"
)

// projectMarkers identify the root of a mochi project, nearest wins
var projectMarkers = []string{"mochi.toml", "hardhat.config.ts", "hardhat.config.js"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	mochiFile, err := LoadMochiFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".mochi"),
		Mode:           ModeFromEnv(os.Getenv(NodeEnvVar)),
		PrivateKey:     os.Getenv(PrivateKeyEnv),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		AssumeYes:      v.GetBool("yes"),
		Timeout:        v.GetDuration("timeout"),
		MochiFile:      mochiFile,
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = mochiFile.DefaultNetwork
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}

	network, err := NewNetworkResolver(mochiFile).Resolve(networkName)
	if err != nil {
		return nil, &domain.ConfigError{Field: "network", Err: err}
	}
	cfg.Network = network

	return cfg, nil
}

// ModeFromEnv maps NODE_ENV onto a run mode
func ModeFromEnv(nodeEnv string) config.Mode {
	if strings.EqualFold(strings.TrimSpace(nodeEnv), "test") {
		return config.ModeLocal
	}
	return config.ModeVerify
}

// FindProjectRoot walks up from the current directory looking for a project marker.
// Falls back to the current directory so commands work in a bare checkout.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("MOCHI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "2m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("yes", false)
	v.SetDefault("project_root", projectRoot)

	return v
}

// loadEnvFiles loads .env then .env.local. Existing process variables win.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("failed to load env file", "path", envFile, "error", err)
		}
	}
}
