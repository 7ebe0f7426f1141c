package helper

import (
	"log/slog"

	"github.com/gen2brain/beeep"
	"github.com/h5shell/native-app/src/state"
)

// NotifyFailure shows a desktop notification when a load ends in failure.
// It is meant for Shell.OnChange.
func NotifyFailure(prev, next state.LoadState) {
	if next.Kind != state.KindFailure || prev.Kind == state.KindFailure {
		return
	}
	if err := beeep.Notify("load error", next.Description(), ""); err != nil {
		slog.Warn("notification failed", "err", err)
	}
}
