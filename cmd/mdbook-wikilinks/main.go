package main

import (
	"os"

	"git.home.luguber.info/inful/mdbook-wikilinks/cmd/mdbook-wikilinks/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], commands.NewGlobal()))
}
