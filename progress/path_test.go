package progress

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalinbhardwaj/connectkit/types"
)

var (
	usdcBase = types.Token{ChainID: types.ChainBase, Token: common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"), Symbol: "USDC", Decimals: 6, Usd: 1}
	usdcOpt  = types.Token{ChainID: types.ChainOptimism, Token: common.HexToAddress("0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85"), Symbol: "USDC", Decimals: 6, Usd: 1}
	daiBase  = types.Token{ChainID: types.ChainBase, Token: common.HexToAddress("0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"), Symbol: "DAI", Decimals: 18, Usd: 1}
)

func amt(tok types.Token, units string) types.TokenAmount {
	return types.TokenAmount{Token: tok, Amount: units, Usd: 25}
}

func hydrated(mint, final types.TokenAmount) *types.Order {
	return &types.Order{
		ID:                       "123",
		Mode:                     types.OrderModeHydrated,
		DestMintTokenAmount:      mint,
		DestFinalCallTokenAmount: final,
	}
}

func TestDeriveUnhydrated(t *testing.T) {
	steps, current := Derive(nil)
	assert.Nil(t, steps)
	assert.Equal(t, 0, current)

	steps, current = Derive(&types.Order{ID: "123", Mode: types.OrderModePreview})
	assert.Nil(t, steps)
	assert.Equal(t, 0, current)
}

func TestDeriveBeforeSourcePayment(t *testing.T) {
	ord := hydrated(amt(usdcBase, "25000000"), amt(usdcBase, "25000000"))

	steps, current := Derive(ord)
	require.Len(t, steps, 2)
	assert.Equal(t, "Payment started", steps[0].Label)
	assert.Empty(t, steps[0].URL)
	assert.Equal(t, "Completed in Base USDC", steps[1].Label)
	assert.Equal(t, 0, current)
}

func TestDeriveSameTokenOmitsBridgeStep(t *testing.T) {
	srcTx := common.Hash{0x01}
	ord := hydrated(amt(usdcBase, "25000000"), amt(usdcBase, "25000000"))
	src := amt(usdcBase, "25000000")
	ord.SourceTokenAmount = &src
	ord.SourceInitiateTxHash = &srcTx

	steps, current := Derive(ord)
	require.Len(t, steps, 2)
	assert.Equal(t, "Paid in Base USDC", steps[0].Label)
	assert.Equal(t, types.ExplorerTxURL(types.ChainBase, srcTx), steps[0].URL)
	assert.Equal(t, 1, current)
}

func TestDeriveCrossChainWithSwap(t *testing.T) {
	srcTx := common.Hash{0x01}
	ord := hydrated(amt(usdcBase, "25000000"), amt(daiBase, "25000000000000000000"))
	src := amt(usdcOpt, "25000000")
	ord.SourceTokenAmount = &src
	ord.SourceInitiateTxHash = &srcTx

	steps, current := Derive(ord)
	require.Len(t, steps, 3)
	assert.Equal(t, "Paid in Optimism USDC", steps[0].Label)
	assert.Equal(t, "Bridged to Base USDC", steps[1].Label)
	assert.Equal(t, "Completed in Base DAI", steps[2].Label)
	assert.Equal(t, 1, current)
}

func TestDeriveCrossChainSameSymbolOmitsBridgeStep(t *testing.T) {
	// Bridged but not swapped: mint token equals final token, so the
	// intermediate hop would be a no-op step.
	srcTx := common.Hash{0x01}
	ord := hydrated(amt(usdcBase, "25000000"), amt(usdcBase, "25000000"))
	src := amt(usdcOpt, "25000000")
	ord.SourceTokenAmount = &src
	ord.SourceInitiateTxHash = &srcTx

	steps, _ := Derive(ord)
	require.Len(t, steps, 2)
	assert.Equal(t, "Paid in Optimism USDC", steps[0].Label)
	assert.Equal(t, "Completed in Base USDC", steps[1].Label)
}

func TestDeriveFastFinishCompletesAllSteps(t *testing.T) {
	srcTx := common.Hash{0x01}
	ffTx := common.Hash{0x02}
	ord := hydrated(amt(usdcBase, "25000000"), amt(usdcBase, "25000000"))
	src := amt(usdcOpt, "25000000")
	ord.SourceTokenAmount = &src
	ord.SourceInitiateTxHash = &srcTx
	ord.DestFastFinishTxHash = &ffTx

	steps, current := Derive(ord)
	require.Len(t, steps, 2)
	assert.Equal(t, len(steps), current)
	assert.Equal(t, types.ExplorerTxURL(types.ChainBase, ffTx), steps[1].URL)
}

func TestDeriveClaimWithoutFastFinishCompletesAllSteps(t *testing.T) {
	srcTx := common.Hash{0x01}
	claimTx := common.Hash{0x03}
	ord := hydrated(amt(usdcBase, "25000000"), amt(usdcBase, "25000000"))
	src := amt(usdcBase, "25000000")
	ord.SourceTokenAmount = &src
	ord.SourceInitiateTxHash = &srcTx
	ord.DestClaimTxHash = &claimTx

	steps, current := Derive(ord)
	require.Len(t, steps, 2)
	assert.Equal(t, len(steps), current)
	// No fast-finish tx was recorded, so the final step has no link.
	assert.Empty(t, steps[1].URL)
}
