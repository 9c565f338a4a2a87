package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/config"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/version"
)

// Global carries the process streams and the logger configured in AfterApply.
// Stdout is reserved for the book; everything else goes to Stderr.
type Global struct {
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns a Global bound to the process streams.
func NewGlobal() *Global {
	return &Global{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (g *Global) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Optional YAML file with default options (book.toml values take precedence)" env:"MDBOOK_WIKILINKS_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogLevel  string           `help:"Log level: debug, info, warn, error" default:"info" env:"MDBOOK_WIKILINKS_LOG_LEVEL"`
	LogFormat string           `help:"Log format: text or json" default:"text" enum:"text,json" env:"MDBOOK_WIKILINKS_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" default:"1" help:"Rewrite wiki links in the book read from stdin (default)"`
	Supports SupportsCmd `cmd:"" help:"Exit 0 if the renderer is supported, 1 otherwise"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level, err := config.ParseLogLevel(c.LogLevel)
	if err != nil {
		return errors.ValidationError("invalid --log-level").WithCause(err).Build()
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}
	g.Logger = config.NewLogger(g.Stderr, level, config.NormalizeLogFormat(c.LogFormat))
	return nil
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, g *Global, opts ...kong.Option) int {
	cli := &CLI{}
	options := append([]kong.Option{
		kong.Name("mdbook-wikilinks"),
		kong.Description("mdBook preprocessor that rewrites Obsidian-style [[wiki links]] into standard Markdown links."),
		kong.Vars{"version": version.String()},
		kong.Writers(g.Stdout, g.Stderr),
		kong.Bind(g),
	}, opts...)

	parser, err := kong.New(cli, options...)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, g.logger(), g.Stderr).
			Report(errors.InternalError("invalid command model").WithCause(err).Build())
	}

	kctx, err := parser.Parse(args)
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, g.logger(), g.Stderr)
	if err != nil {
		if errors.IsClassified(err) {
			return adapter.Report(err)
		}
		return adapter.Report(errors.ValidationError("invalid command line").WithCause(err).Build())
	}
	return adapter.Report(kctx.Run())
}
