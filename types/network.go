package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Supported EVM chain ids.
const (
	ChainEthereum        uint64 = 1
	ChainOptimism        uint64 = 10
	ChainPolygon         uint64 = 137
	ChainBase            uint64 = 8453
	ChainArbitrum        uint64 = 42161
	ChainEthereumSepolia uint64 = 11155111
	ChainBaseSepolia     uint64 = 84532
)

var chainNames = map[uint64]string{
	ChainEthereum:        "Ethereum",
	ChainOptimism:        "Optimism",
	ChainPolygon:         "Polygon",
	ChainBase:            "Base",
	ChainArbitrum:        "Arbitrum",
	ChainEthereumSepolia: "Sepolia",
	ChainBaseSepolia:     "Base Sepolia",
}

var chainExplorers = map[uint64]string{
	ChainEthereum:        "https://etherscan.io",
	ChainOptimism:        "https://optimistic.etherscan.io",
	ChainPolygon:         "https://polygonscan.com",
	ChainBase:            "https://basescan.org",
	ChainArbitrum:        "https://arbiscan.io",
	ChainEthereumSepolia: "https://sepolia.etherscan.io",
	ChainBaseSepolia:     "https://sepolia.basescan.org",
}

// ChainName returns the display name for a chain id, or "Unknown".
func ChainName(chainID uint64) string {
	if name, ok := chainNames[chainID]; ok {
		return name
	}
	return "Unknown"
}

// IsChainSupported reports whether the chain id is in the registry.
func IsChainSupported(chainID uint64) bool {
	_, ok := chainNames[chainID]
	return ok
}

// ExplorerTxURL returns a block-explorer link for a transaction, or ""
// when the chain has no registered explorer.
func ExplorerTxURL(chainID uint64, tx common.Hash) string {
	base, ok := chainExplorers[chainID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", base, tx.Hex())
}
