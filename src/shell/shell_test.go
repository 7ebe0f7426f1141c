package shell

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/h5shell/native-app/src/content"
	"github.com/h5shell/native-app/src/options"
	"github.com/h5shell/native-app/src/overlay"
	"github.com/h5shell/native-app/src/state"
)

// fakeSurface is a browser surface that fetches documents over HTTP and keeps
// every script the shell evaluates.
//
// With newDocument set, Navigate drops the scripts of the old document and
// calls newDocument before the load finishes, like the init script of a
// freshly committed document does.
type fakeSurface struct {
	host        *content.Host
	scripts     []string
	urls        []string
	newDocument func()
}

func (f *fakeSurface) Eval(code string) {
	f.scripts = append(f.scripts, code)
}

func (f *fakeSurface) Navigate(url string) {
	f.urls = append(f.urls, url)
	if f.newDocument != nil {
		f.scripts = nil
		f.newDocument()
	}
	resp, err := http.Get(url)
	if err != nil {
		f.host.HandleNavigation(content.NavigationEvent{URL: url, Err: err})
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	f.host.HandleNavigation(content.NavigationEvent{URL: url})
}

type fixture struct {
	shell   *Shell
	surface *fakeSurface
	history []state.LoadState
}

func (f *fixture) kinds() []state.Kind {
	kinds := []state.Kind{state.KindIdle}
	for _, s := range f.history {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

func newFixture(t *testing.T, assets fstest.MapFS, file, folder string) *fixture {
	t.Helper()

	server := content.NewServer()
	require.NoError(t, server.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Close(ctx)
	})

	opt := options.NewOptions()
	opt.HTMLFileName = file
	opt.ContentFolder = folder

	surface := &fakeSurface{}
	sh := New(surface, opt.Token)
	host := content.NewHost(assets, opt, server, surface)
	surface.host = host
	host.OnStateChange(sh.SetState)
	sh.Attach(host)

	f := &fixture{shell: sh, surface: surface}
	sh.OnChange(func(prev, next state.LoadState) {
		f.history = append(f.history, next)
	})
	return f
}

func assets() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte("<html><body>hello</body></html>")},
		"css/style.css": {Data: []byte("body{}")},
	}
}

func TestShell_StartsIdle(t *testing.T) {
	f := newFixture(t, assets(), "index", "")

	require.Equal(t, state.KindIdle, f.shell.State().Kind)
	require.False(t, f.shell.Overlay().Visible())
	require.Empty(t, f.surface.scripts)
}

func TestShell_MountLoadsContent(t *testing.T) {
	f := newFixture(t, assets(), "index", "")

	f.shell.Mount()

	require.Equal(t, []state.Kind{state.KindIdle, state.KindLoading, state.KindSuccess}, f.kinds())
	require.Equal(t, state.KindSuccess, f.shell.State().Kind)
	require.Equal(t, overlay.KindNone, f.shell.Overlay().Kind)
	require.Len(t, f.surface.urls, 1)

	// spinner first, then the overlay is removed
	require.Len(t, f.surface.scripts, 2)
	require.Contains(t, f.surface.scripts[0], "h5shell-spinner")
	require.Contains(t, f.surface.scripts[1], `var html="";`)
}

func TestShell_NewDocumentRedrawsSpinner(t *testing.T) {
	f := newFixture(t, assets(), "index", "")
	var during []string
	var stateDuring state.Kind
	f.surface.newDocument = func() {
		f.shell.Redraw()
		during = append(during, f.surface.scripts...)
		stateDuring = f.shell.State().Kind
	}

	f.shell.Mount()

	require.Equal(t, state.KindLoading, stateDuring)
	require.Len(t, during, 1)
	require.Contains(t, during[0], "h5shell-spinner")

	// the new document gets the spinner, then the overlay is removed
	require.Len(t, f.surface.scripts, 2)
	require.Contains(t, f.surface.scripts[0], "h5shell-spinner")
	require.Contains(t, f.surface.scripts[1], `var html="";`)
	require.Equal(t, state.KindSuccess, f.shell.State().Kind)
}

func TestShell_RedrawShowsErrorPanel(t *testing.T) {
	f := newFixture(t, assets(), "missing", "")
	f.shell.Mount()
	f.surface.scripts = nil

	f.shell.Redraw()

	require.Len(t, f.surface.scripts, 1)
	require.Contains(t, f.surface.scripts[0], "cannot find the file: missing.html")
	require.Equal(t, []state.Kind{state.KindIdle, state.KindLoading, state.KindFailure}, f.kinds())
}

func TestShell_MountOnlyOnce(t *testing.T) {
	f := newFixture(t, assets(), "index", "")

	f.shell.Mount()
	f.shell.Mount()

	require.Len(t, f.surface.urls, 1)
}

func TestShell_MissingFile(t *testing.T) {
	f := newFixture(t, assets(), "missing", "")

	f.shell.Mount()

	require.Equal(t, []state.Kind{state.KindIdle, state.KindLoading, state.KindFailure}, f.kinds())
	require.Equal(t, "cannot find the file: missing.html", f.shell.State().Description())
	o := f.shell.Overlay()
	require.Equal(t, overlay.KindErrorPanel, o.Kind)
	require.Equal(t, "load error", o.Heading)
	require.Contains(t, o.Description, "missing.html")
	require.Contains(t, f.surface.scripts[len(f.surface.scripts)-1], "load error")
	require.Empty(t, f.surface.urls)
}

func TestShell_UnresolvableFolder(t *testing.T) {
	f := newFixture(t, assets(), "index", "../elsewhere")

	f.shell.Mount()

	require.Equal(t, []state.Kind{state.KindIdle, state.KindLoading, state.KindFailure}, f.kinds())
	require.Equal(t, "file path is disappear", f.shell.State().Description())
}

func TestShell_ReloadFromFailure(t *testing.T) {
	f := newFixture(t, assets(), "missing", "")
	f.shell.Mount()
	first := f.shell.State()

	f.shell.Reload()

	require.Equal(t, []state.Kind{
		state.KindIdle, state.KindLoading, state.KindFailure, state.KindLoading, state.KindFailure,
	}, f.kinds())
	require.Equal(t, first.Description(), f.shell.State().Description())
}

func TestShell_ReloadRerunsTheLoad(t *testing.T) {
	files := assets()
	f := newFixture(t, files, "late", "")
	f.shell.Mount()
	require.Equal(t, state.KindFailure, f.shell.State().Kind)

	files["late.html"] = &fstest.MapFile{Data: []byte("<html></html>")}
	f.shell.Reload()

	require.Equal(t, state.KindSuccess, f.shell.State().Kind)
	require.Len(t, f.surface.urls, 1)
	require.True(t, strings.HasSuffix(f.surface.urls[0], "/late.html"))
}

func TestShell_OverlayExclusive(t *testing.T) {
	f := newFixture(t, assets(), "missing", "")
	f.shell.Mount()
	f.shell.Reload()

	for i, script := range f.surface.scripts {
		spinner := strings.Contains(script, `class=\"h5shell-spinner\"`) || strings.Contains(script, `class="h5shell-spinner"`)
		panel := strings.Contains(script, "load error")
		require.False(t, spinner && panel, "script %d shows both overlays", i)
	}
	for _, s := range f.history {
		o := overlay.For(s)
		require.Equal(t, s.Kind == state.KindLoading || s.Kind == state.KindFailure, o.Visible(), s.String())
	}
}

type countingLoader struct {
	loads int
}

func (c *countingLoader) Load() { c.loads++ }

func TestShell_ReloadWithoutHost(t *testing.T) {
	sh := New(&fakeSurface{}, "tok")
	sh.Reload()
	sh.Mount()
	require.Equal(t, state.KindIdle, sh.State().Kind)
}

func TestShell_ReloadAlwaysCallsHost(t *testing.T) {
	loader := &countingLoader{}
	sh := New(&fakeSurface{}, "tok")
	sh.Attach(loader)

	sh.Mount()
	sh.SetState(state.Success())
	sh.Reload()
	sh.Reload()

	require.Equal(t, 3, loader.loads)
}
