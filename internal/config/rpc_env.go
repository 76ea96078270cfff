package config

import (
	"os"
	"strings"
	"unicode"
)

// RPCEnvVarName returns the env var that overrides a network's RPC URL.
// Examples: zkSyncTestnet -> ZK_SYNC_TESTNET_RPC_URL, era-sepolia -> ERA_SEPOLIA_RPC_URL
func RPCEnvVarName(networkName string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range networkName {
		switch {
		case r == '-' || r == '.' || r == ' ':
			r = '_'
		case unicode.IsUpper(r) && prev != 0 && prev != '_' && !unicode.IsUpper(prev):
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToUpper(r))
		prev = r
	}
	return b.String() + "_RPC_URL"
}

// rpcFromEnv returns the RPC URL override for a network, if any
func rpcFromEnv(networkName string) (string, bool) {
	url := strings.TrimSpace(os.Getenv(RPCEnvVarName(networkName)))
	return url, url != ""
}
