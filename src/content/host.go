package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/h5shell/native-app/src/options"
	"github.com/h5shell/native-app/src/state"
)

// Navigator is the part of the browser surface the host drives.
type Navigator interface {
	Navigate(url string)
}

// NavigationEvent is the engine's report about a navigation. A nil Err means
// the document finished loading.
type NavigationEvent struct {
	URL string
	Err error
}

// Host loads one HTML file from a folder of the bundled assets into the
// browser surface and reports its progress as state.LoadState values.
//
// All methods must be called on the UI thread.
type Host struct {
	root     fs.FS
	fileName string
	folder   string
	server   *Server
	nav      Navigator
	onState  func(state.LoadState)
	// pending is the entry URL of the load in flight, empty once it settled
	pending string
}

func NewHost(root fs.FS, opt *options.Options, server *Server, nav Navigator) *Host {
	return &Host{
		root:     root,
		fileName: opt.HTMLFileName,
		folder:   opt.ContentFolder,
		server:   server,
		nav:      nav,
	}
}

func (h *Host) OnStateChange(fn func(state.LoadState)) {
	h.onState = fn
}

// EntryName is the file the host looks for, e.g. "index.html".
func (h *Host) EntryName() string {
	return h.fileName + ".html"
}

// Load runs the whole load procedure again. It never retries on its own.
func (h *Host) Load() {
	h.pending = ""
	h.emit(state.Loading())

	base, err := h.resolve()
	if err != nil {
		h.emit(state.Failure(err))
		return
	}

	entry := h.EntryName()
	if info, err := fs.Stat(base, entry); err != nil || info.IsDir() {
		h.emit(state.Failure(&state.FileNotFoundError{Name: entry}))
		return
	}

	h.server.Mount(base)
	h.pending = h.server.URL(entry)
	h.nav.Navigate(h.pending)
}

func (h *Host) resolve() (fs.FS, error) {
	if h.root == nil {
		return nil, &state.PathResolutionError{Folder: h.folder}
	}
	folder := strings.TrimSuffix(h.folder, "/")
	if folder == "" {
		return h.root, nil
	}
	base, err := fs.Sub(h.root, folder)
	if err != nil {
		slog.Debug("content folder cannot be resolved", "folder", h.folder, "err", err)
		return nil, &state.PathResolutionError{Folder: h.folder}
	}
	return base, nil
}

func (h *Host) HandleNavigation(event NavigationEvent) {
	if event.Err != nil {
		h.fail(event.URL, event.Err.Error())
		return
	}

	if !h.server.Serves(event.URL) {
		if h.pending == "" {
			slog.Debug("ignoring navigation outside the content", "url", event.URL)
			return
		}
		// the engine landed somewhere else, usually its own error page
		h.fail(event.URL, fmt.Sprintf("the navigation to %s did not reach the content", h.pending))
		return
	}

	if status, ok := h.server.Status(event.URL); ok && status >= http.StatusBadRequest {
		h.fail(event.URL, fmt.Sprintf("the server responded with a status of %d (%s)", status, http.StatusText(status)))
		return
	}

	h.pending = ""
	h.emit(state.Success())
}

func (h *Host) fail(url string, description string) {
	h.pending = ""
	h.emit(state.Failure(&state.EngineNavigationError{
		URL:         url,
		Description: description,
	}))
}

func (h *Host) emit(s state.LoadState) {
	slog.Debug("load state", "state", s.String())
	if h.onState != nil {
		h.onState(s)
	}
}
