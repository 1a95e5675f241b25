package nav

import (
	"sync"

	"github.com/nalinbhardwaj/connectkit/logger"
	"github.com/nalinbhardwaj/connectkit/types"
)

// Route identifies a modal screen. Exactly one route is current at a time.
type Route string

const (
	// Payment routes.
	RouteSelectMethod Route = "selectMethod"
	RouteSelectToken  Route = "selectToken"
	RouteWaitingOther Route = "waitingOther"
	RouteConfirmation Route = "confirmation"
	RoutePayWithToken Route = "payWithToken"

	// Pre-connection routes.
	RouteOnboarding       Route = "onboarding"
	RouteAbout            Route = "about"
	RouteConnectors       Route = "connectors"
	RouteMobileConnectors Route = "mobileConnectors"
	RouteConnect          Route = "connect"
	RouteDownload         Route = "download"

	// Post-connection routes.
	RouteProfile            Route = "profile"
	RouteSwitchNetworks     Route = "switchNetworks"
	RouteSignInWithEthereum Route = "signInWithEthereum"
)

// SelectionStore is the slice of the order controller the machine needs to
// apply selection side effects on navigation.
type SelectionStore interface {
	Select(types.Selection)
	ClearSelection()
}

type clearKind int

const (
	clearNone clearKind = iota
	clearToken
	clearExternal
)

type backRule struct {
	target Route
	clear  clearKind
}

// Back navigation is a function of the current route only; there is no
// history stack. Leaving a payment-in-progress route clears its selection
// so a later visit cannot re-enter a stale attempt. Routes absent from the
// table fall back to method selection.
var backRules = map[Route]backRule{
	RouteSignInWithEthereum: {target: RouteProfile},
	RouteSwitchNetworks:     {target: RouteProfile},
	RouteDownload:           {target: RouteConnect},
	RouteConnectors:         {target: RouteSelectMethod},
	RouteSelectToken:        {target: RouteSelectMethod},
	RouteWaitingOther:       {target: RouteSelectMethod, clear: clearExternal},
	RoutePayWithToken:       {target: RouteSelectToken, clear: clearToken},
}

// Condition is the external state the machine's outputs depend on. This is
// a Mealy-style machine: which controls are offered depends on the current
// route plus these conditions, not the route alone.
type Condition struct {
	Connected              bool
	ChainSupported         bool
	EnforceSupportedChains bool
}

// Controls are the modal chrome outputs for the current route + condition.
type Controls struct {
	Closeable bool
	ShowBack  bool
	ShowInfo  bool
}

// Machine sequences the user through the modal's screens.
type Machine struct {
	mu    sync.Mutex
	route Route
	open  bool
	sel   SelectionStore
	log   logger.Logger
}

// NewMachine starts at method selection with the modal closed.
func NewMachine(sel SelectionStore, log logger.Logger) *Machine {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Machine{route: RouteSelectMethod, sel: sel, log: log}
}

// Route returns the current route.
func (m *Machine) Route() Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.route
}

// IsOpen reports whether the modal is open.
func (m *Machine) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Open shows the modal at method selection.
func (m *Machine) Open() {
	m.gotoAndOpen(RouteSelectMethod)
}

// Close hides the modal.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// OpenAbout, OpenOnboarding, OpenProfile, OpenSwitchNetworks and OpenSIWE
// show the modal directly at their route.
func (m *Machine) OpenAbout()          { m.gotoAndOpen(RouteAbout) }
func (m *Machine) OpenOnboarding()     { m.gotoAndOpen(RouteOnboarding) }
func (m *Machine) OpenProfile()        { m.gotoAndOpen(RouteProfile) }
func (m *Machine) OpenSwitchNetworks() { m.gotoAndOpen(RouteSwitchNetworks) }
func (m *Machine) OpenSIWE()           { m.gotoAndOpen(RouteSignInWithEthereum) }

// Go moves directly to a route.
func (m *Machine) Go(r Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = r
}

// SelectWallet handles choosing "pay from wallet" on method selection:
// token selection when a wallet is connected, the connector list otherwise.
func (m *Machine) SelectWallet(connected bool) Route {
	next := RouteConnectors
	if connected {
		next = RouteSelectToken
	}
	m.Go(next)
	return next
}

// ChooseToken records the token option and moves to the pay-with-token
// screen.
func (m *Machine) ChooseToken(opt types.PaymentOption) {
	m.sel.Select(types.SelectTokenOption(opt))
	m.Go(RoutePayWithToken)
}

// ChooseExternal records the external option and moves to the waiting
// screen.
func (m *Machine) ChooseExternal(opt types.ExternalPaymentOptionMetadata) {
	m.sel.Select(types.SelectExternalOption(opt))
	m.Go(RouteWaitingOther)
}

// Back applies the back rule for the current route and returns the new
// route.
func (m *Machine) Back() Route {
	m.mu.Lock()
	current := m.route
	m.mu.Unlock()

	rule, ok := backRules[current]
	if !ok {
		rule = backRule{target: RouteSelectMethod}
	}

	switch rule.clear {
	case clearToken, clearExternal:
		m.sel.ClearSelection()
	}

	m.Go(rule.target)
	m.log.Debug("back navigation", map[string]any{"from": string(current), "to": string(rule.target)})
	return rule.target
}

// Controls computes the modal chrome for the current route. When the
// active chain is unsupported and policy enforces supported chains, the
// modal is forced non-closeable and back/info are withheld.
func (m *Machine) Controls(cond Condition) Controls {
	closeable := !(cond.EnforceSupportedChains && cond.Connected && !cond.ChainSupported)

	r := m.Route()
	return Controls{
		Closeable: closeable,
		ShowBack:  closeable && r != RouteProfile && r != RouteSelectMethod && r != RouteConfirmation,
		ShowInfo:  closeable && r != RouteProfile,
	}
}

func (m *Machine) gotoAndOpen(r Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = r
	m.open = true
}
