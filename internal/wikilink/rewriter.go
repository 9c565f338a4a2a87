package wikilink

import (
	"strings"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/markdown"
)

// DefaultExtension is appended to link targets unless overridden.
const DefaultExtension = ".md"

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithExtension sets the suffix appended to every link target. An empty
// extension links to the bare target.
func WithExtension(ext string) Option {
	return func(r *Rewriter) {
		r.extension = ext
	}
}

// WithIgnoreCode leaves links inside inline code, fenced code blocks and
// indented code blocks untouched.
func WithIgnoreCode(ignore bool) Option {
	return func(r *Rewriter) {
		r.ignoreCode = ignore
	}
}

// Rewriter replaces wiki links in Markdown text. It holds no mutable state
// and is safe for concurrent use.
type Rewriter struct {
	extension  string
	ignoreCode bool
}

// New returns a Rewriter using DefaultExtension unless overridden.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{extension: DefaultExtension}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extension returns the suffix appended to link targets.
func (r *Rewriter) Extension() string {
	return r.extension
}

// Rewrite returns content with every wiki link replaced by its Markdown form.
func (r *Rewriter) Rewrite(content string) string {
	out, _ := r.RewriteWithCount(content)
	return out
}

// RewriteWithCount is Rewrite that also reports how many links were replaced.
// Content without any replacement is returned as the identical string.
func (r *Rewriter) RewriteWithCount(content string) (string, int) {
	if !strings.Contains(content, openDelim) {
		return content, 0
	}
	links := Parse(content)
	if len(links) == 0 {
		return content, 0
	}

	var code []markdown.Range
	if r.ignoreCode {
		code = markdown.CodeRanges([]byte(content))
	}

	edits := make([]markdown.Edit, 0, len(links))
	for _, l := range links {
		if markdown.InAny(code, l.Start) {
			continue
		}
		edits = append(edits, markdown.Edit{
			Start:       l.Start,
			End:         l.End,
			Replacement: l.Markdown(r.extension),
		})
	}

	out, err := markdown.ApplyEdits(content, edits)
	if err != nil {
		// Parse yields ordered, disjoint spans; unreachable in practice.
		return content, 0
	}
	return out, len(edits)
}

var defaultRewriter = New()

// Rewrite replaces wiki links using the default options.
func Rewrite(content string) string {
	return defaultRewriter.Rewrite(content)
}
