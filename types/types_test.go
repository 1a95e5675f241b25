package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdcBase = Token{
		ChainID:  ChainBase,
		Token:    common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"),
		Symbol:   "USDC",
		Decimals: 6,
		Usd:      0.9999,
	}
	ethMainnet = Token{
		ChainID:  ChainEthereum,
		Symbol:   "ETH",
		Decimals: 18,
		Usd:      2000,
	}
)

func TestTokenIsNative(t *testing.T) {
	assert.True(t, ethMainnet.IsNative())
	assert.False(t, usdcBase.IsNative())
}

func TestTokenUnits(t *testing.T) {
	tests := []struct {
		name    string
		usd     float64
		token   Token
		want    string
		wantErr bool
	}{
		{name: "stablecoin near par", usd: 25.50, token: usdcBase, want: "25502550"},
		{name: "even division", usd: 10, token: Token{Symbol: "WETH", Decimals: 18, Usd: 2000}, want: "5000000000000000"},
		{name: "whole token", usd: 2000, token: ethMainnet, want: "1000000000000000000"},
		{name: "no price", usd: 10, token: Token{Symbol: "MYSTERY", Decimals: 18}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenUnits(tt.usd, tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenAmountBigAmount(t *testing.T) {
	ta := TokenAmount{Token: usdcBase, Amount: "25502550"}
	n, err := ta.BigAmount()
	require.NoError(t, err)
	assert.Equal(t, int64(25502550), n.Int64())

	_, err = TokenAmount{Amount: "not-a-number"}.BigAmount()
	require.Error(t, err)
}

func TestTokenAmountDisplayAmount(t *testing.T) {
	assert.Equal(t, "1.2346", TokenAmount{Token: usdcBase, Amount: "1234567"}.DisplayAmount())
	assert.Equal(t, "0.5", TokenAmount{Token: ethMainnet, Amount: "500000000000000000"}.DisplayAmount())
}

func TestOrderPhase(t *testing.T) {
	h := func(b byte) *common.Hash {
		hash := common.Hash{b}
		return &hash
	}

	tests := []struct {
		name  string
		order *Order
		want  SettlementPhase
	}{
		{name: "nil order", order: nil, want: PhaseNotStarted},
		{name: "no hashes", order: &Order{}, want: PhaseNotStarted},
		{name: "source only", order: &Order{SourceInitiateTxHash: h(1)}, want: PhaseSourceSubmitted},
		{name: "fast finished", order: &Order{SourceInitiateTxHash: h(1), DestFastFinishTxHash: h(2)}, want: PhaseFastFinished},
		{name: "claimed after fast finish", order: &Order{SourceInitiateTxHash: h(1), DestFastFinishTxHash: h(2), DestClaimTxHash: h(3)}, want: PhaseClaimed},
		{name: "claimed skipping fast finish", order: &Order{SourceInitiateTxHash: h(1), DestClaimTxHash: h(3)}, want: PhaseClaimed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.Phase())
		})
	}
}

func TestOrderDone(t *testing.T) {
	ff := common.Hash{2}

	var nilOrder *Order
	assert.False(t, nilOrder.Done())
	assert.False(t, (&Order{Mode: OrderModePreview}).Done())
	// Fast finish on an unhydrated snapshot does not count as done.
	assert.False(t, (&Order{Mode: OrderModePreview, DestFastFinishTxHash: &ff}).Done())
	assert.False(t, (&Order{Mode: OrderModeHydrated}).Done())
	assert.True(t, (&Order{Mode: OrderModeHydrated, DestFastFinishTxHash: &ff}).Done())
}

func TestAddressContraction(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111112222")
	assert.Equal(t, "0x1111…2222", AddressContraction(addr))
}

func TestChainName(t *testing.T) {
	assert.Equal(t, "Base", ChainName(ChainBase))
	assert.Equal(t, "Unknown", ChainName(999999))
}

func TestExplorerTxURL(t *testing.T) {
	tx := common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000000")
	assert.Equal(t, "https://basescan.org/tx/"+tx.Hex(), ExplorerTxURL(ChainBase, tx))
	assert.Equal(t, "", ExplorerTxURL(999999, tx))
}
