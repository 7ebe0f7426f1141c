package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the loopback HTTP server the browser surface loads content from.
// It serves exactly one fs.FS at a time, so a page can reach its sibling
// assets but nothing outside the mounted folder.
type Server struct {
	engine   *gin.Engine
	listener net.Listener
	http     *http.Server
	mounted  atomic.Pointer[mount]

	mu       sync.Mutex
	statuses map[string]int
}

type mount struct {
	fsys fs.FS
}

func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		statuses: map[string]int{},
	}
	s.engine.Use(gin.Recovery(), s.record)
	s.engine.GET("/*filepath", s.serve)
	s.engine.HEAD("/*filepath", s.serve)
	return s
}

// Start listens on a random loopback port and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listening on loopback: %w", err)
	}
	s.listener = listener
	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("content server stopped", "err", err)
		}
	}()
	slog.Debug("content server listening", "addr", listener.Addr().String())
	return nil
}

func (s *Server) Close(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Mount replaces the served folder and forgets previously recorded statuses.
func (s *Server) Mount(fsys fs.FS) {
	s.mounted.Store(&mount{fsys: fsys})

	s.mu.Lock()
	s.statuses = map[string]int{}
	s.mu.Unlock()
}

// URL returns the address of name inside the mounted folder.
func (s *Server) URL(name string) string {
	u := url.URL{
		Scheme: "http",
		Host:   s.listener.Addr().String(),
		Path:   "/" + name,
	}
	return u.String()
}

// Status returns the last status code served for the document at rawURL.
// ok is false for URLs that don't belong to this server or weren't requested.
// Origin is scheme://host of the server, the form browsers use for
// location.origin.
func (s *Server) Origin() string {
	return "http://" + s.listener.Addr().String()
}

// Serves reports whether rawURL points at this server.
func (s *Server) Serves(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && s.listener != nil && u.Scheme == "http" && u.Host == s.listener.Addr().String()
}

func (s *Server) Status(rawURL string) (status int, ok bool) {
	if !s.Serves(rawURL) {
		return 0, false
	}
	u, _ := url.Parse(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok = s.statuses[requestPath(u.Path)]
	return status, ok
}

func (s *Server) record(c *gin.Context) {
	// reloads must always hit the folder again
	c.Header("Cache-Control", "no-store")
	c.Next()

	s.mu.Lock()
	s.statuses[requestPath(c.Request.URL.Path)] = c.Writer.Status()
	s.mu.Unlock()
}

func (s *Server) serve(c *gin.Context) {
	m := s.mounted.Load()
	if m == nil {
		c.String(http.StatusServiceUnavailable, "no content mounted")
		return
	}

	name := strings.TrimPrefix(requestPath(c.Request.URL.Path), "/")
	if name == "" || !fs.ValidPath(name) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	f, err := m.fsys.Open(name)
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, "not found")
		return
	}

	// ServeFile would redirect ".../index.html" to ".../"
	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			c.String(http.StatusInternalServerError, "read failed")
			return
		}
		content = bytes.NewReader(data)
	}
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), content)
}

func requestPath(p string) string {
	return path.Clean("/" + p)
}
