// Package preview serves a built dashboard site over HTTP together with
// read-only JSON endpoints exposing the build's tree, issues, and config.
//
// The server owns a pipeline runner and rebuilds on demand, so a manifest
// edit followed by POST /api/build refreshes the served site without
// restarting the process.
package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/emit"
	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/pipeline"
	"github.com/dashweave/dashweave/pkg/validate"
)

// DefaultAddr is the default listen address.
const DefaultAddr = "localhost:4321"

// Server serves the emitted site directory and build metadata.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger

	mu     sync.RWMutex
	result *pipeline.Result
}

// NewServer creates a preview server around a runner and fixed build
// options. Call Build before Handler sees traffic, or let the first
// POST /api/build populate the result.
func NewServer(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, opts: opts, logger: logger}
}

// Build runs the pipeline and swaps in the new result on success.
func (s *Server) Build(ctx context.Context) (*pipeline.Result, error) {
	result, err := s.runner.Execute(ctx, s.opts)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
	return result, nil
}

// Handler returns the HTTP handler: JSON APIs under /api, the static
// site everywhere else.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/tree", s.handleTree)
		r.Get("/issues", s.handleIssues)
		r.Get("/stats", s.handleStats)
		r.Post("/build", s.handleBuild)
	})

	fs := http.FileServer(http.Dir(s.opts.OutDir))
	r.Handle("/*", fs)
	return r
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("preview server listening", "addr", addr, "dir", s.opts.OutDir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := emit.ReadConfig(s.opts.OutDir)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no build yet"))
		return
	}
	writeJSON(w, http.StatusOK, treeJSON(result.Tree))
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no build yet"))
		return
	}
	issues := result.Issues
	if issues == nil {
		issues = []validate.Issue{}
	}
	writeJSON(w, http.StatusOK, issues)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no build yet"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": result.Stats,
		"cache": result.CacheInfo,
	})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	result, err := s.Build(r.Context())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pages":  result.Emit.Pages,
		"issues": len(result.Issues),
		"stats":  result.Stats,
	})
}

// TreeNode is the JSON shape of one tab-tree node.
type TreeNode struct {
	Key      string     `json:"key,omitempty"`
	Label    string     `json:"label,omitempty"`
	Kind     string     `json:"kind,omitempty"`
	Title    string     `json:"title,omitempty"`
	Index    int        `json:"index,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// treeJSON flattens the materialized tree into a serializable form.
func treeJSON(nodes []content.Node) []TreeNode {
	out := make([]TreeNode, 0, len(nodes))
	for _, n := range nodes {
		switch node := n.(type) {
		case *content.GroupNode:
			out = append(out, TreeNode{
				Key:      node.Key,
				Label:    node.Label,
				Children: treeJSON(node.Children),
			})
		case content.Leaf:
			out = append(out, TreeNode{
				Kind:  string(node.Item.Kind),
				Title: node.Item.DisplayTitle(),
				Index: node.Item.Index,
			})
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}
