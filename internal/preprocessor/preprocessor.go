// Package preprocessor implements the mdBook preprocessor protocol around the
// wiki link rewriter: it reads [context, book] from the host, rewrites every
// chapter and writes the book back.
package preprocessor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/book"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/config"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/logfields"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/version"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/wikilink"
)

// unsupportedRenderer is the renderer name mdBook uses to check that a
// preprocessor honours the supports protocol.
const unsupportedRenderer = "not-supported"

// Supports reports whether the preprocessor runs for the named renderer.
// The rewritten Markdown is renderer-agnostic, so every real renderer is.
func Supports(renderer string) bool {
	return renderer != unsupportedRenderer
}

// Preprocessor rewrites wiki links in a book read from the host.
type Preprocessor struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Preprocessor. cfg holds the defaults that the book's own
// [preprocessor.wikilinks] table may override; nil means config.Default().
func New(cfg *config.Config, logger *slog.Logger) *Preprocessor {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{cfg: cfg, logger: logger}
}

// Run reads the whole input once, rewrites the book and writes it to out in a
// single write. Nothing is written when any step fails.
func (p *Preprocessor) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	start := time.Now()

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.FileSystemError("failed to read input").WithCause(err).Build()
	}

	bctx, b, err := book.ParseInput(data)
	if err != nil {
		return errors.ValidationError("failed to parse book").
			WithCause(err).
			WithContext(logfields.KeyBytes, len(data)).
			Build()
	}

	cfg, err := p.effectiveConfig(bctx)
	if err != nil {
		return err
	}
	p.checkHostVersion(bctx.MdbookVersion)

	if cfg.SkipsRenderer(bctx.Renderer) {
		p.logger.Info("Renderer skipped, passing book through", logfields.Renderer(bctx.Renderer))
		return writeBook(out, b)
	}

	rw := wikilink.New(
		wikilink.WithExtension(cfg.Extension),
		wikilink.WithIgnoreCode(cfg.IgnoreCode),
	)

	chapters, links := 0, 0
	err = b.ForEachChapter(func(ch *book.Chapter) error {
		if err := ctx.Err(); err != nil {
			return errors.RuntimeError("preprocessing cancelled").
				WithCause(err).
				WithContext(logfields.KeyChapter, ch.Name).
				Build()
		}

		content, n := rw.RewriteWithCount(ch.Content)
		ch.Content = content
		chapters++
		links += n
		if n > 0 {
			attrs := []any{logfields.Chapter(ch.Name), logfields.Links(n)}
			if ch.Path != nil {
				attrs = append(attrs, logfields.Path(*ch.Path))
			}
			p.logger.Debug("Rewrote wiki links", attrs...)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := writeBook(out, b); err != nil {
		return err
	}

	p.logger.Info("Wiki links rewritten",
		logfields.Renderer(bctx.Renderer),
		logfields.Chapters(chapters),
		logfields.Links(links),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
		logfields.Bytes(len(data)))
	return nil
}

// effectiveConfig layers the book's preprocessor table over a copy of the defaults.
func (p *Preprocessor) effectiveConfig(bctx *book.Context) (*config.Config, error) {
	cfg := *p.cfg
	cfg.SkipRenderers = slices.Clone(p.cfg.SkipRenderers)

	table, ok, err := bctx.PreprocessorConfig(config.PreprocessorName)
	if err != nil {
		return nil, errors.ConfigError("failed to read book configuration").WithCause(err).Build()
	}
	if ok {
		if err := cfg.MergeBookTable(table); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// checkHostVersion warns when the host's major.minor differs from the one the
// book model was written against. Newer hosts usually still work because
// unknown members are carried through.
func (p *Preprocessor) checkHostVersion(hostVersion string) {
	if hostVersion == "" {
		return
	}
	if majorMinor(hostVersion) != majorMinor(version.MdbookVersion) {
		p.logger.Warn("mdBook version differs from the version this preprocessor was built for",
			logfields.MdbookVersion(hostVersion),
			slog.String("expected", version.MdbookVersion))
	}
}

func majorMinor(v string) string {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

func writeBook(out io.Writer, b *book.Book) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return errors.InternalError("failed to encode book").WithCause(err).Build()
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return errors.FileSystemError("failed to write output").
			WithCause(err).
			WithContext(logfields.KeyBytes, buf.Len()).
			Build()
	}
	return nil
}
