package render

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/dashweave/dashweave/pkg/cache"
	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/dataset"
	"github.com/dashweave/dashweave/pkg/errors"
)

// Artifact is the rendered output of one item: a markdown fragment plus
// any binary assets it references (SVG diagrams, images).
type Artifact struct {
	// Markdown is the fragment embedded into the page.
	Markdown string `json:"markdown"`

	// Assets maps relative file names to binary content. Asset references
	// inside Markdown use the same relative names; the emitter rewrites
	// them against the site's assets directory.
	Assets map[string][]byte `json:"assets,omitempty"`
}

// Renderer renders items of a single kind.
type Renderer interface {
	// Kind returns the item kind this renderer handles.
	Kind() content.Kind

	// Render produces the artifact for one item. The dataset is the item's
	// resolved data source and may be nil for static kinds.
	Render(ctx context.Context, item content.Item, ds *dataset.Dataset) (*Artifact, error)
}

// Registry dispatches items to renderers by kind. The zero value is not
// usable; construct with [NewRegistry] or [DefaultRegistry].
type Registry struct {
	mu        sync.RWMutex
	renderers map[content.Kind]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[content.Kind]Renderer)}
}

// DefaultRegistry creates a registry with all builtin renderers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, renderer := range builtins() {
		r.Register(renderer)
	}
	return r
}

// Register adds a renderer, replacing any existing renderer for its kind.
func (r *Registry) Register(renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[renderer.Kind()] = renderer
}

// For returns the renderer for a kind.
func (r *Registry) For(kind content.Kind) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[kind]
	return renderer, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []content.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]content.Kind, 0, len(r.renderers))
	for k := range r.renderers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render dispatches one item to its renderer.
//
// Pagination sentinels produce an empty artifact: they carry layout
// meaning for the emitter, not content. An item whose kind has no
// registered renderer is an UNSUPPORTED error.
func (r *Registry) Render(ctx context.Context, item content.Item, ds *dataset.Dataset) (*Artifact, error) {
	if item.Kind.IsSentinel() {
		return &Artifact{}, nil
	}

	renderer, ok := r.For(item.Kind)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "no renderer registered for kind %q", item.Kind)
	}

	artifact, err := renderer.Render(ctx, item, ds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render item #%d (%s)", item.Index, item.Kind)
	}
	return artifact, nil
}

// ItemHash returns a content hash covering everything about an item that
// affects its rendered artifact: kind, params, titles, and dataset
// reference. The insertion index is deliberately excluded so reordering
// unrelated items does not invalidate cached artifacts.
func ItemHash(item content.Item) string {
	payload := struct {
		Kind     content.Kind   `json:"kind"`
		Params   content.Params `json:"params,omitempty"`
		Title    string         `json:"title,omitempty"`
		TabTitle string         `json:"tab_title,omitempty"`
		Dataset  string         `json:"dataset,omitempty"`
	}{item.Kind, item.Params, item.Title, item.TabTitle, item.DatasetRef}

	data, _ := json.Marshal(payload)
	return cache.Hash(data)
}
