package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func countingRenderer(calls *int32, last *View) Renderer {
	return func(_ context.Context, v View) (interface{}, error) {
		atomic.AddInt32(calls, 1)
		*last = v
		return string(v) + " payload", nil
	}
}

func TestNavigatorStartsAtPriceAnalysis(t *testing.T) {
	nav := NewNavigator(func(context.Context, View) (interface{}, error) { return nil, nil })
	if got := nav.Current(); got != ViewPriceAnalysis {
		t.Fatalf("initial view = %q, want %q", got, ViewPriceAnalysis)
	}
}

func TestNavigatorTransitionRendersSynchronously(t *testing.T) {
	var calls int32
	var last View
	nav := NewNavigator(countingRenderer(&calls, &last))

	payload, changed, err := nav.Apply(context.Background(), ActionViewPrediction)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected a transition")
	}
	if payload != "prediction payload" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if last != ViewPrediction {
		t.Fatalf("rendered view = %q, want %q", last, ViewPrediction)
	}
	if nav.Current() != ViewPrediction {
		t.Fatalf("current view = %q, want %q", nav.Current(), ViewPrediction)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("renderer called %d times, want 1", calls)
	}
}

func TestNavigatorSelectIsIdempotent(t *testing.T) {
	var calls int32
	var last View
	nav := NewNavigator(countingRenderer(&calls, &last))

	if _, changed, err := nav.Select(context.Background(), ViewPrediction); err != nil || !changed {
		t.Fatalf("first select: changed=%v err=%v", changed, err)
	}

	// Re-selecting the active view is accepted but does nothing.
	payload, changed, err := nav.Select(context.Background(), ViewPrediction)
	if err != nil {
		t.Fatalf("second select failed: %v", err)
	}
	if changed {
		t.Fatalf("re-selecting the active view must not transition")
	}
	if payload != nil {
		t.Fatalf("no-op select returned payload %v", payload)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("renderer called %d times, want 1", calls)
	}
	if nav.Current() != ViewPrediction {
		t.Fatalf("view drifted to %q", nav.Current())
	}
}

func TestNavigatorRoundTrip(t *testing.T) {
	var calls int32
	var last View
	nav := NewNavigator(countingRenderer(&calls, &last))

	if _, _, err := nav.Apply(context.Background(), ActionViewPrediction); err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	if _, changed, err := nav.Apply(context.Background(), ActionViewPriceAnalysis); err != nil || !changed {
		t.Fatalf("back: changed=%v err=%v", changed, err)
	}
	if nav.Current() != ViewPriceAnalysis {
		t.Fatalf("view = %q after round trip", nav.Current())
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("renderer called %d times, want 2", calls)
	}
}

func TestNavigatorRejectsUnknownInput(t *testing.T) {
	nav := NewNavigator(func(context.Context, View) (interface{}, error) { return nil, nil })

	if _, _, err := nav.Apply(context.Background(), Action("jump")); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	if _, _, err := nav.Select(context.Background(), View("settings")); err == nil {
		t.Fatalf("expected error for unknown view")
	}
	if nav.Current() != ViewPriceAnalysis {
		t.Fatalf("rejected input moved the view to %q", nav.Current())
	}
}

func TestNavigatorRenderErrorStillTransitions(t *testing.T) {
	renderErr := errors.New("section exploded")
	nav := NewNavigator(func(context.Context, View) (interface{}, error) {
		return nil, renderErr
	})

	_, changed, err := nav.Apply(context.Background(), ActionViewPrediction)
	if !changed {
		t.Fatalf("expected a transition despite the render error")
	}
	if !errors.Is(err, renderErr) {
		t.Fatalf("expected render error, got %v", err)
	}
	if nav.Current() != ViewPrediction {
		t.Fatalf("view = %q, want %q", nav.Current(), ViewPrediction)
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(func(context.Context, View) (interface{}, error) { return nil, nil })

	id, nav := m.Create()
	if id == "" || nav == nil {
		t.Fatalf("create returned id=%q nav=%v", id, nav)
	}

	got, ok := m.Get(id)
	if !ok || got != nav {
		t.Fatalf("lookup failed for session %q", id)
	}

	id2, nav2 := m.Create()
	if id2 == id {
		t.Fatalf("duplicate session id %q", id)
	}
	if nav2 == nav {
		t.Fatalf("sessions share a navigator")
	}

	m.End(id)
	if _, ok := m.Get(id); ok {
		t.Fatalf("ended session still resolvable")
	}
	if _, ok := m.Get(id2); !ok {
		t.Fatalf("ending one session dropped another")
	}
}
