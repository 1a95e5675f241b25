package clients

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/types"
)

const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}]`

const nativeTransferGas = 21000

var _ WalletAdapter = (*EVMWallet)(nil)

// EVMWallet is a key-holding wallet adapter over one ethclient per chain.
// The reported chain is whichever chain was last switched to; transfers are
// signed and broadcast on that chain.
type EVMWallet struct {
	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	address common.Address
	clients map[uint64]*ethclient.Client
	chainID uint64
	erc20   abi.ABI
	log     logger.Logger
}

// NewEVMWallet dials one RPC endpoint per chain id and starts on chainID.
func NewEVMWallet(hexKey string, chainID uint64, rpcURLs map[uint64]string, log logger.Logger) (*EVMWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if _, ok := rpcURLs[chainID]; !ok {
		return nil, fmt.Errorf("no RPC URL for starting chain %d", chainID)
	}

	clients := make(map[uint64]*ethclient.Client, len(rpcURLs))
	for id, url := range rpcURLs {
		client, err := ethclient.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to chain %d RPC: %w", id, err)
		}
		clients[id] = client
	}

	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	if log == nil {
		log = logger.NoopLogger{}
	}

	return &EVMWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		clients: clients,
		chainID: chainID,
		erc20:   parsed,
		log:     log,
	}, nil
}

// CurrentChainID implements WalletAdapter.
func (w *EVMWallet) CurrentChainID() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID
}

// CurrentAddress implements WalletAdapter.
func (w *EVMWallet) CurrentAddress() common.Address {
	return w.address
}

// SwitchChain implements WalletAdapter. The switch only succeeds when an
// endpoint is configured for the target chain and the node actually reports
// that chain id.
func (w *EVMWallet) SwitchChain(ctx context.Context, chainID uint64) (uint64, error) {
	w.mu.Lock()
	client, ok := w.clients[chainID]
	current := w.chainID
	w.mu.Unlock()

	if !ok {
		return current, types.Errorf(types.ErrWalletFault, "%s: chain %d", ErrNoClientForChain, chainID)
	}

	nodeID, err := client.ChainID(ctx)
	if err != nil {
		return current, types.Errorf(types.ErrWalletFault, "%s: %v", ErrSwitchFailed, err)
	}
	if nodeID.Uint64() != chainID {
		return current, types.Errorf(types.ErrWalletFault,
			"%s: endpoint for chain %d reports chain %d", ErrSwitchFailed, chainID, nodeID.Uint64())
	}

	w.mu.Lock()
	w.chainID = chainID
	w.mu.Unlock()

	w.log.Debug("switched chain", map[string]any{"chainId": chainID})
	return chainID, nil
}

// SendNativeTransfer implements WalletAdapter.
func (w *EVMWallet) SendNativeTransfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	client, chainID, err := w.signingClient(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	nonce, err := client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}

	tx := ethtypes.NewTransaction(nonce, to, amount, nativeTransferGas, gasPrice, nil)
	return w.signAndSend(ctx, client, chainID, tx)
}

// SendTokenTransfer implements WalletAdapter.
func (w *EVMWallet) SendTokenTransfer(ctx context.Context, token, to common.Address, amount *big.Int) (common.Hash, error) {
	client, chainID, err := w.signingClient(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	data, err := w.erc20.Pack("transfer", to, amount)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: pack transfer: %v", ErrTransferFailed, err)
	}

	nonce, err := client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &token,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: estimate gas: %v", ErrTransferFailed, err)
	}

	tx := ethtypes.NewTransaction(nonce, token, big.NewInt(0), gasLimit, gasPrice, data)
	return w.signAndSend(ctx, client, chainID, tx)
}

// signingClient returns the client for the reported chain, verifying that
// the node still agrees with it. A divergence surfaces as the distinguished
// ChainMismatchError so the executor can force a re-switch.
func (w *EVMWallet) signingClient(ctx context.Context) (*ethclient.Client, uint64, error) {
	w.mu.Lock()
	chainID := w.chainID
	client, ok := w.clients[chainID]
	w.mu.Unlock()

	if !ok {
		return nil, 0, types.Errorf(types.ErrWalletFault, "%s: chain %d", ErrNoClientForChain, chainID)
	}

	nodeID, err := client.ChainID(ctx)
	if err != nil {
		return nil, 0, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}
	if nodeID.Uint64() != chainID {
		return nil, 0, &ChainMismatchError{Expected: chainID, Actual: nodeID.Uint64()}
	}
	return client, chainID, nil
}

func (w *EVMWallet) signAndSend(ctx context.Context, client *ethclient.Client, chainID uint64, tx *ethtypes.Transaction) (common.Hash, error) {
	signer := ethtypes.LatestSignerForChainID(new(big.Int).SetUint64(chainID))
	signed, err := ethtypes.SignTx(tx, signer, w.key)
	if err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: sign: %v", ErrTransferFailed, err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, types.Errorf(types.ErrWalletFault, "%s: %v", ErrTransferFailed, err)
	}

	w.log.Info("transaction submitted", map[string]any{
		"txHash":  signed.Hash().Hex(),
		"chainId": chainID,
	})
	return signed.Hash(), nil
}
