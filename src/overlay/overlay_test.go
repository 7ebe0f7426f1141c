package overlay

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/h5shell/native-app/src/state"
)

func TestFor(t *testing.T) {
	tests := []struct {
		state    state.LoadState
		expected Kind
	}{
		{state.Idle(), KindNone},
		{state.Loading(), KindSpinner},
		{state.Success(), KindNone},
		{state.Failure(errors.New("boom")), KindErrorPanel},
	}

	for _, test := range tests {
		o := For(test.state)
		require.Equal(t, test.expected, o.Kind, test.state.String())
		require.Equal(t, test.expected != KindNone, o.Visible(), test.state.String())
	}
}

func TestFor_ErrorPanelText(t *testing.T) {
	o := For(state.Failure(&state.FileNotFoundError{Name: "missing.html"}))

	require.Equal(t, "load error", o.Heading)
	require.Equal(t, "cannot find the file: missing.html", o.Description)
	require.Equal(t, "reload", o.Action)
}

func TestHTML_Exclusive(t *testing.T) {
	spinner, err := For(state.Loading()).HTML("h5shell", "tok")
	require.NoError(t, err)
	require.Contains(t, spinner, "h5shell-spinner")
	require.NotContains(t, spinner, "load error")
	require.NotContains(t, spinner, "h5shell-reload\"")

	panel, err := For(state.Failure(errors.New("boom"))).HTML("h5shell", "tok")
	require.NoError(t, err)
	require.Contains(t, panel, "load error")
	require.Contains(t, panel, "boom")
	require.Contains(t, panel, "reload")
	require.NotContains(t, panel, `class="h5shell-spinner"`)

	for _, s := range []state.LoadState{state.Idle(), state.Success()} {
		none, err := For(s).HTML("h5shell", "tok")
		require.NoError(t, err)
		require.Empty(t, none)
	}
}

func TestHTML_EscapesDescription(t *testing.T) {
	panel, err := For(state.Failure(errors.New(`<img src=x onerror="alert(1)">`))).HTML("h5shell", "tok")
	require.NoError(t, err)
	require.NotContains(t, panel, "<img")
	require.Contains(t, panel, "&lt;img")
}

func TestHTML_ReloadCallsBinding(t *testing.T) {
	panel, err := For(state.Failure(errors.New("boom"))).HTML("h5shell", "secret-token")
	require.NoError(t, err)
	require.Contains(t, panel, "'reload',0,")
	require.Contains(t, panel, "secret-token")
}

func TestScript(t *testing.T) {
	script, err := For(state.Loading()).Script("h5shell", "tok")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(script, "(function(){"))
	require.Contains(t, script, `"h5shell-overlay"`)
	require.Contains(t, script, "h5shell-spinner")

	// no overlay still removes the old one
	script, err = For(state.Success()).Script("h5shell", "tok")
	require.NoError(t, err)
	require.Contains(t, script, "old.remove()")
	require.Contains(t, script, `var html="";`)
}
