// Package state holds the load state the content host reports to the shell.
package state

// Kind identifies which of the four load states is current.
type Kind int

const (
	// KindIdle means no load has been attempted yet
	KindIdle Kind = iota

	// KindLoading means a load was requested and the engine has not answered
	KindLoading

	// KindSuccess means the content finished loading
	KindSuccess

	// KindFailure means the load failed, see LoadState.Err
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	}
	return "unknown"
}

// LoadState is the tagged variant reported by the content host.
// Err is only set for KindFailure.
type LoadState struct {
	Kind Kind
	Err  error
}

func Idle() LoadState { return LoadState{Kind: KindIdle} }
func Loading() LoadState { return LoadState{Kind: KindLoading} }
func Success() LoadState { return LoadState{Kind: KindSuccess} }

func Failure(err error) LoadState {
	return LoadState{Kind: KindFailure, Err: err}
}

// Description returns the human readable failure text, or "" for every
// other state.
func (s LoadState) Description() string {
	if s.Kind != KindFailure || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// IsSettled returns true if the engine has nothing pending for this state.
func (s LoadState) IsSettled() bool {
	return s.Kind != KindLoading
}

func (s LoadState) String() string {
	if s.Kind == KindFailure {
		return "failure(" + s.Description() + ")"
	}
	return s.Kind.String()
}
