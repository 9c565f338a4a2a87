package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/config"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/logfields"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/preprocessor"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/version"
)

// RunCmd implements the default command: mdBook pipes [context, book] to
// stdin and reads the rewritten book from stdout.
type RunCmd struct{}

// Run executes the preprocessor.
func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if root.Config != "" {
		g.logger().Debug("Loaded options file", logfields.File(root.Config))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g.logger().Debug("Starting preprocessor", logfields.Version(version.Version))
	return preprocessor.New(cfg, g.logger()).Run(ctx, g.Stdin, g.Stdout)
}
