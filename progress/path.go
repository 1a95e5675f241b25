// Package progress derives a display-ready step sequence from an order
// snapshot. Derivation is pure: the current step index, not a stored
// status, is the sole source of pending-vs-done per step.
package progress

import (
	"fmt"

	"github.com/nalinbhardwaj/connectkit/types"
)

// Step is one labeled entry in the progress tracker, optionally linked to
// a block explorer.
type Step struct {
	Label string
	URL   string
}

// Derive maps an order snapshot to its progress path and the number of
// completed steps.
//
// Step 1 is the source payment ("Paid in <chain> <symbol>", linked once a
// source tx hash exists, else a generic "Payment started"). A bridged
// intermediate step appears only when the source differs from the
// destination mint token and the mint token differs from the final token;
// a no-op hop is omitted. The final step is always present, linked to the
// fast-finish transaction when recorded.
func Derive(order *types.Order) ([]Step, int) {
	if !order.Hydrated() {
		return nil, 0
	}

	var path []Step

	sourceChainName := "Unknown"
	sourceTokenSymbol := "Unknown"
	if src := order.SourceTokenAmount; src != nil {
		sourceChainName = types.ChainName(src.Token.ChainID)
		sourceTokenSymbol = src.Token.Symbol

		url := ""
		if order.SourceInitiateTxHash != nil {
			url = types.ExplorerTxURL(src.Token.ChainID, *order.SourceInitiateTxHash)
		}
		path = append(path, Step{
			Label: fmt.Sprintf("Paid in %s %s", sourceChainName, sourceTokenSymbol),
			URL:   url,
		})
	} else {
		path = append(path, Step{Label: "Payment started"})
	}

	destChainName := types.ChainName(order.DestMintTokenAmount.Token.ChainID)
	destMintTokenSymbol := order.DestMintTokenAmount.Token.Symbol
	finalTokenSymbol := order.DestFinalCallTokenAmount.Token.Symbol

	sourceDiffers := sourceChainName != destChainName || sourceTokenSymbol != destMintTokenSymbol
	if sourceDiffers && destMintTokenSymbol != finalTokenSymbol {
		url := ""
		if order.DestFastFinishTxHash != nil {
			url = types.ExplorerTxURL(order.DestMintTokenAmount.Token.ChainID, *order.DestFastFinishTxHash)
		}
		path = append(path, Step{
			Label: fmt.Sprintf("Bridged to %s %s", destChainName, destMintTokenSymbol),
			URL:   url,
		})
	}

	finalURL := ""
	if order.DestFastFinishTxHash != nil {
		finalURL = types.ExplorerTxURL(order.DestFinalCallTokenAmount.Token.ChainID, *order.DestFastFinishTxHash)
	}
	path = append(path, Step{
		Label: fmt.Sprintf("Completed in %s %s", destChainName, finalTokenSymbol),
		URL:   finalURL,
	})

	currentStep := 0
	switch order.Phase() {
	case types.PhaseClaimed, types.PhaseFastFinished:
		currentStep = len(path)
	case types.PhaseSourceSubmitted:
		currentStep = 1
	}

	return path, currentStep
}
