package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// View identifies which of the two dashboard pages is active.
type View string

const (
	ViewPriceAnalysis View = "price_analysis"
	ViewPrediction    View = "prediction"
)

// Action is an explicit navigation request.
type Action string

const (
	ActionViewPrediction    Action = "view_prediction"
	ActionViewPriceAnalysis Action = "view_price_analysis"
)

// Renderer produces the full payload for a view. Navigator calls it
// synchronously on every accepted transition, so the presented view
// never lags the navigation state.
type Renderer func(ctx context.Context, v View) (interface{}, error)

// Navigator is the per-session navigation state machine. It starts at
// the price analysis view and mutates only through Apply and Select.
type Navigator struct {
	mu     sync.Mutex
	view   View
	render Renderer
}

// NewNavigator creates a navigator in the initial ViewPriceAnalysis state.
func NewNavigator(render Renderer) *Navigator {
	return &Navigator{view: ViewPriceAnalysis, render: render}
}

// Current returns the active view.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

// Apply performs a navigation action. An action targeting the current
// view is accepted but is a no-op: no transition, no re-render. An
// accepted transition re-renders the new view before Apply returns;
// the rendered payload and changed=true are handed back to the caller.
func (n *Navigator) Apply(ctx context.Context, action Action) (interface{}, bool, error) {
	switch action {
	case ActionViewPrediction:
		return n.set(ctx, ViewPrediction)
	case ActionViewPriceAnalysis:
		return n.set(ctx, ViewPriceAnalysis)
	default:
		return nil, false, fmt.Errorf("unknown navigation action %q", action)
	}
}

// Select sets the view directly, as an external selector (menu) would.
// Selecting the already-active view is idempotent: nothing re-renders.
func (n *Navigator) Select(ctx context.Context, v View) (interface{}, bool, error) {
	switch v {
	case ViewPriceAnalysis, ViewPrediction:
		return n.set(ctx, v)
	default:
		return nil, false, fmt.Errorf("unknown view %q", v)
	}
}

func (n *Navigator) set(ctx context.Context, v View) (interface{}, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.view == v {
		return nil, false, nil
	}
	n.view = v

	// Render while still holding the lock: further input on this
	// session waits until the new view is fully built.
	payload, err := n.render(ctx, v)
	return payload, true, err
}

// SessionManager tracks one navigator per dashboard session.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Navigator
	render   Renderer
}

// NewSessionManager creates an empty session registry.
func NewSessionManager(render Renderer) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Navigator),
		render:   render,
	}
}

// Create starts a new session and returns its id and navigator.
func (m *SessionManager) Create() (string, *Navigator) {
	id := uuid.NewString()
	nav := NewNavigator(m.render)

	m.mu.Lock()
	m.sessions[id] = nav
	m.mu.Unlock()
	return id, nav
}

// Get looks up an existing session's navigator.
func (m *SessionManager) Get(id string) (*Navigator, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	nav, ok := m.sessions[id]
	return nav, ok
}

// End discards a session's navigation state.
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
