// Package viewer serves rendered figures over HTTP so they can be opened in a
// browser after a run.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/httputil"
	"github.com/banshee-data/coinviz/internal/monitoring"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

var logf = monitoring.Component("viewer")

const shutdownGrace = 5 * time.Second

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<ul>
{{range .Figures}}<li><a href="/figures/{{.}}">{{.}}</a></li>
{{end}}</ul>
</body></html>
`))

// Server serves a fixed set of figure files from one directory.
type Server struct {
	addr    string
	title   string
	runID   string
	fs      fsutil.FileSystem
	dir     string
	figures []string
	router  *mux.Router
}

// NewServer returns a server for the given figure paths. Only files inside
// dir are served. runID identifies the run that produced the figures.
func NewServer(addr, title, runID string, fsys fsutil.FileSystem, dir string, figures []string) *Server {
	s := &Server{addr: addr, title: title, runID: runID, fs: fsys, dir: dir}
	for _, f := range figures {
		s.figures = append(s.figures, filepath.Base(f))
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/figures/{name}", s.serveFigure).Methods(http.MethodGet)
	r.HandleFunc("/api/figures", s.serveManifest).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title   string
		Figures []string
	}{s.title, s.figures}
	if err := indexTmpl.Execute(w, data); err != nil {
		logf("index: %v", err)
	}
}

// Manifest is the /api/figures response body.
type Manifest struct {
	Title   string   `json:"title"`
	RunID   string   `json:"run_id"`
	Figures []Figure `json:"figures"`
}

// Figure is one entry of the /api/figures manifest.
type Figure struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (s *Server) serveManifest(w http.ResponseWriter, r *http.Request) {
	figs := make([]Figure, len(s.figures))
	for i, name := range s.figures {
		figs[i] = Figure{
			Name: name,
			Type: mime.TypeByExtension(path.Ext(name)),
			URL:  "/figures/" + name,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, Manifest{Title: s.title, RunID: s.runID, Figures: figs})
}

func (s *Server) serveFigure(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !s.known(name) {
		httputil.NotFound(w, "unknown figure "+name)
		return
	}

	data, err := s.fs.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("read %s: %v", name, err))
		return
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = w.Write(data)
}

func (s *Server) known(name string) bool {
	for _, f := range s.figures {
		if f == name {
			return true
		}
	}
	return false
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logf("run=%s serving %d figures on http://%s/", s.runID, len(s.figures), s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
