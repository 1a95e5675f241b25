package types

// SelectionKind discriminates the active funding choice.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionToken
	SelectionExternal
)

// Selection is the payer's active funding choice. At most one of a wallet
// token option or an external method can be selected; the tagged variant
// makes the exclusivity structural instead of caller discipline.
type Selection struct {
	kind     SelectionKind
	token    PaymentOption
	external ExternalPaymentOptionMetadata
}

// NoSelection is the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// SelectTokenOption selects a wallet token option, displacing any external
// selection.
func SelectTokenOption(opt PaymentOption) Selection {
	return Selection{kind: SelectionToken, token: opt}
}

// SelectExternalOption selects an external method, displacing any token
// selection.
func SelectExternalOption(opt ExternalPaymentOptionMetadata) Selection {
	return Selection{kind: SelectionExternal, external: opt}
}

func (s Selection) Kind() SelectionKind { return s.kind }

// TokenOption returns the selected token option, if any.
func (s Selection) TokenOption() (PaymentOption, bool) {
	return s.token, s.kind == SelectionToken
}

// ExternalOption returns the selected external method, if any.
func (s Selection) ExternalOption() (ExternalPaymentOptionMetadata, bool) {
	return s.external, s.kind == SelectionExternal
}
