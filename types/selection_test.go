package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionExclusivity(t *testing.T) {
	none := NoSelection()
	assert.Equal(t, SelectionNone, none.Kind())
	_, ok := none.TokenOption()
	assert.False(t, ok)
	_, ok = none.ExternalOption()
	assert.False(t, ok)

	tokenSel := SelectTokenOption(PaymentOption{
		Required: TokenAmount{Token: usdcBase, Amount: "1000000", Usd: 1},
	})
	assert.Equal(t, SelectionToken, tokenSel.Kind())
	opt, ok := tokenSel.TokenOption()
	assert.True(t, ok)
	assert.Equal(t, "USDC", opt.Required.Token.Symbol)
	_, ok = tokenSel.ExternalOption()
	assert.False(t, ok)

	extSel := SelectExternalOption(ExternalPaymentOptionMetadata{ID: "venmo", CTA: "Pay with Venmo"})
	assert.Equal(t, SelectionExternal, extSel.Kind())
	ext, ok := extSel.ExternalOption()
	assert.True(t, ok)
	assert.Equal(t, "venmo", ext.ID)
	_, ok = extSel.TokenOption()
	assert.False(t, ok)
}
