// Package shell is the top-level view: it shows the content host full-bleed
// and draws the loading or error overlay for the current load state.
package shell

import (
	"log/slog"

	"github.com/h5shell/native-app/src/options"
	"github.com/h5shell/native-app/src/overlay"
	"github.com/h5shell/native-app/src/state"
)

// Renderer runs overlay scripts in the current document.
type Renderer interface {
	Eval(code string)
}

// Loader is the content host's load procedure.
type Loader interface {
	Load()
}

// Shell owns the visible load state. It is not safe for concurrent use, every
// method runs on the UI thread.
type Shell struct {
	renderer  Renderer
	host      Loader
	token     string
	state     state.LoadState
	observers []func(prev, next state.LoadState)
}

func New(renderer Renderer, token string) *Shell {
	return &Shell{
		renderer: renderer,
		token:    token,
		state:    state.Idle(),
	}
}

func (s *Shell) Attach(host Loader) {
	s.host = host
}

// OnChange registers fn to be called after every state change.
func (s *Shell) OnChange(fn func(prev, next state.LoadState)) {
	s.observers = append(s.observers, fn)
}

func (s *Shell) State() state.LoadState {
	return s.state
}

func (s *Shell) Overlay() overlay.Overlay {
	return overlay.For(s.state)
}

// Mount starts the first load. It does nothing once a load was attempted.
func (s *Shell) Mount() {
	if s.state.Kind != state.KindIdle || s.host == nil {
		return
	}
	s.host.Load()
}

// Reload asks the host to run its load procedure again, which moves the
// state to loading before anything else happens.
func (s *Shell) Reload() {
	if s.host == nil {
		slog.Warn("reload requested before a content host was attached")
		return
	}
	slog.Info("reloading", "from", s.state.String())
	s.host.Load()
}

// SetState is the content host's callback. The latest state always wins.
func (s *Shell) SetState(next state.LoadState) {
	prev := s.state
	s.state = next

	if next.Kind == state.KindFailure {
		slog.Warn("load failed", "err", next.Description())
	} else {
		slog.Debug("state changed", "from", prev.String(), "to", next.String())
	}

	s.Redraw()
	for _, fn := range s.observers {
		fn(prev, next)
	}
}

// Redraw evaluates the current overlay in the current document. A new
// document starts without the overlay, so it asks for it once its DOM exists.
func (s *Shell) Redraw() {
	script, err := s.Overlay().Script(options.BindingName, s.token)
	if err != nil {
		slog.Error("rendering overlay failed", "err", err)
		return
	}
	s.renderer.Eval(script)
}
