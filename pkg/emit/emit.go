package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/errors"
	"github.com/dashweave/dashweave/pkg/render"
	"github.com/dashweave/dashweave/pkg/validate"
)

// AssetsDir is the name of the directory artifact assets are written to,
// relative to the site root.
const AssetsDir = "assets"

// Options configures an Emit call.
type Options struct {
	// OutDir is the site output directory. Created if missing.
	OutDir string

	// Title is the site title, written to the first page's heading and the
	// site config.
	Title string

	// SharedFirstLevel renders top-level groups as one tabset per page.
	// When false, groups become stacked sections instead.
	SharedFirstLevel bool

	// AllowInvalid emits annotation blocks for items with validation
	// issues instead of failing the build.
	AllowInvalid bool

	// Issues carries the validation findings rendered as annotations.
	// Ignored unless AllowInvalid is set.
	Issues []validate.Issue
}

// Page describes one emitted markdown page.
type Page struct {
	// File is the page's file name relative to OutDir.
	File string `yaml:"file" json:"file"`

	// Title is the page heading.
	Title string `yaml:"title" json:"title"`
}

// Result reports what Emit wrote.
type Result struct {
	// Pages lists the emitted pages in order.
	Pages []Page

	// Assets lists the asset file names written under AssetsDir.
	Assets []string

	// ConfigPath is the path of the emitted site config.
	ConfigPath string
}

// Emit writes the materialized tree as a markdown site.
//
// The top-level node sequence is split into pages on pagination-break
// sentinels. The first page is index.md; later pages are numbered and
// slugged after their first group ("002-demographics.md"). Artifact assets
// are collected under one shared assets directory, and a dashweave.yml
// site config records the pages, the build, and the rule tables revision.
//
// Artifacts are keyed by item insertion index. A missing artifact is an
// error unless AllowInvalid is set, in which case the item's validation
// issues are emitted as an annotation block in its place.
func Emit(nodes []content.Node, artifacts map[int]*render.Artifact, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "output directory is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEmitFailed, err, "create %s", opts.OutDir)
	}

	e := &emitter{
		opts:      opts,
		artifacts: artifacts,
		issues:    issuesByItem(opts),
		assets:    map[string][]byte{},
	}

	result := &Result{}
	for pageNo, pageNodes := range splitPages(nodes) {
		page, body, err := e.renderPage(pageNo, pageNodes)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(opts.OutDir, page.File)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEmitFailed, err, "write %s", path)
		}
		result.Pages = append(result.Pages, page)
	}

	assets, err := e.writeAssets()
	if err != nil {
		return nil, err
	}
	result.Assets = assets

	configPath, err := writeConfig(opts, result.Pages)
	if err != nil {
		return nil, err
	}
	result.ConfigPath = configPath

	return result, nil
}

type emitter struct {
	opts      Options
	artifacts map[int]*render.Artifact
	issues    map[int][]validate.Issue
	assets    map[string][]byte
}

// splitPages divides the top-level node sequence on pagination sentinels.
// Empty segments (leading, trailing, or between adjacent sentinels)
// produce no page; a dashboard with no sentinel yields one page.
func splitPages(nodes []content.Node) [][]content.Node {
	var pages [][]content.Node
	var current []content.Node

	flush := func() {
		if len(current) > 0 {
			pages = append(pages, current)
			current = nil
		}
	}

	for _, node := range nodes {
		if leaf, ok := node.(content.Leaf); ok && leaf.Item.Kind.IsSentinel() {
			flush()
			continue
		}
		current = append(current, node)
	}
	flush()

	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

func (e *emitter) renderPage(pageNo int, nodes []content.Node) (Page, string, error) {
	page := Page{
		File:  pageFile(pageNo, nodes),
		Title: pageTitle(pageNo, e.opts.Title, nodes),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", page.Title)

	groups, leaves := 0, 0
	for _, node := range nodes {
		if _, ok := node.(*content.GroupNode); ok {
			groups++
		} else {
			leaves++
		}
	}
	tabset := e.opts.SharedFirstLevel && groups > 1

	openTabset := false
	for _, node := range nodes {
		switch n := node.(type) {
		case *content.GroupNode:
			if tabset && !openTabset {
				b.WriteString("\n::: {.tabset}\n")
				openTabset = true
			}
			if err := e.renderGroup(&b, n, 2); err != nil {
				return Page{}, "", err
			}
		case content.Leaf:
			if openTabset {
				b.WriteString("\n:::\n")
				openTabset = false
			}
			if err := e.renderLeaf(&b, n, 2); err != nil {
				return Page{}, "", err
			}
		}
	}
	if openTabset {
		b.WriteString("\n:::\n")
	}

	return page, b.String(), nil
}

func (e *emitter) renderGroup(b *strings.Builder, g *content.GroupNode, level int) error {
	fmt.Fprintf(b, "\n%s %s\n", strings.Repeat("#", level), g.Label)
	for _, child := range g.Children {
		switch n := child.(type) {
		case *content.GroupNode:
			if err := e.renderGroup(b, n, level+1); err != nil {
				return err
			}
		case content.Leaf:
			if err := e.renderLeaf(b, n, level+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *emitter) renderLeaf(b *strings.Builder, leaf content.Leaf, level int) error {
	item := leaf.Item
	// Sentinels only ever split the top-level sequence. One nested inside
	// a group has no page boundary to mark and renders nothing.
	if item.Kind.IsSentinel() {
		return nil
	}
	if title := item.DisplayTitle(); title != "" {
		fmt.Fprintf(b, "\n%s %s\n", strings.Repeat("#", level), title)
	}

	artifact, ok := e.artifacts[item.Index]
	if !ok {
		if e.opts.AllowInvalid {
			b.WriteString("\n" + annotation(item, e.issues[item.Index]))
			return nil
		}
		return errors.New(errors.ErrCodeEmitFailed, "no artifact for item #%d (%s)", item.Index, item.Kind)
	}

	for name, data := range artifact.Assets {
		e.assets[name] = data
	}
	markdown := rewriteAssetRefs(artifact.Markdown, artifact.Assets)

	b.WriteString("\n" + strings.TrimRight(markdown, "\n") + "\n")
	return nil
}

// rewriteAssetRefs points markdown asset references at the shared assets
// directory.
func rewriteAssetRefs(markdown string, assets map[string][]byte) string {
	for name := range assets {
		markdown = strings.ReplaceAll(markdown, "("+name+")", "("+AssetsDir+"/"+name+")")
	}
	return markdown
}

// annotation renders an item's validation issues as a blockquote so the
// page documents what is missing instead of silently dropping the item.
func annotation(item content.Item, issues []validate.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "> **Skipped %s item #%d**\n", item.Kind, item.Index)
	if len(issues) == 0 {
		b.WriteString("> No artifact was rendered for this item.\n")
		return b.String()
	}
	for _, issue := range issues {
		fmt.Fprintf(&b, "> - %s\n", issue.String())
	}
	return b.String()
}

func (e *emitter) writeAssets() ([]string, error) {
	if len(e.assets) == 0 {
		return nil, nil
	}
	dir := filepath.Join(e.opts.OutDir, AssetsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEmitFailed, err, "create %s", dir)
	}

	names := make([]string, 0, len(e.assets))
	for name := range e.assets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, e.assets[name], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEmitFailed, err, "write %s", path)
		}
	}
	return names, nil
}

func issuesByItem(opts Options) map[int][]validate.Issue {
	if !opts.AllowInvalid {
		return nil
	}
	out := make(map[int][]validate.Issue)
	for _, issue := range opts.Issues {
		out[issue.ItemIndex] = append(out[issue.ItemIndex], issue)
	}
	return out
}

// pageFile names a page: index.md for the first page, then a numbered
// slug derived from the page's first group.
func pageFile(pageNo int, nodes []content.Node) string {
	if pageNo == 0 {
		return "index.md"
	}
	return fmt.Sprintf("%03d-%s.md", pageNo+1, slug(firstGroupLabel(nodes)))
}

func pageTitle(pageNo int, siteTitle string, nodes []content.Node) string {
	if pageNo == 0 {
		if siteTitle != "" {
			return siteTitle
		}
		return "Dashboard"
	}
	if label := firstGroupLabel(nodes); label != "" {
		return label
	}
	return fmt.Sprintf("Page %d", pageNo+1)
}

func firstGroupLabel(nodes []content.Node) string {
	for _, node := range nodes {
		if g, ok := node.(*content.GroupNode); ok {
			return g.Label
		}
	}
	return ""
}

// slug converts a label to a file-name-safe fragment.
func slug(label string) string {
	if label == "" {
		return "page"
	}
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "page"
	}
	return out
}
