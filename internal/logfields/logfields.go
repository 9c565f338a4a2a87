package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyChapter    = "chapter"
	KeyPath       = "path"
	KeyLinks      = "links"
	KeyChapters   = "chapters"
	KeyRenderer   = "renderer"
	KeyMdbook     = "mdbook_version"
	KeyVersion    = "version"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Chapter(name string) slog.Attr    { return slog.String(KeyChapter, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Links(n int) slog.Attr            { return slog.Int(KeyLinks, n) }
func Chapters(n int) slog.Attr         { return slog.Int(KeyChapters, n) }
func Renderer(r string) slog.Attr      { return slog.String(KeyRenderer, r) }
func MdbookVersion(v string) slog.Attr { return slog.String(KeyMdbook, v) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Bytes(n int) slog.Attr            { return slog.Int(KeyBytes, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
