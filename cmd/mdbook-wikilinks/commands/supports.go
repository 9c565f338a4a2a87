package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/logfields"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/preprocessor"
)

// SupportsCmd answers mdBook's "supports <renderer>" probe through the exit status.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html"`
}

// Run executes the supports command.
func (s *SupportsCmd) Run(g *Global) error {
	if preprocessor.Supports(s.Renderer) {
		g.logger().Debug("Renderer supported", logfields.Renderer(s.Renderer))
		return nil
	}
	return errors.UnsupportedError(fmt.Sprintf("renderer %q is not supported", s.Renderer)).
		WithContext(logfields.KeyRenderer, s.Renderer).
		Build()
}
