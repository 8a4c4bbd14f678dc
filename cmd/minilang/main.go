// Command minilang is the CLI entry point for the minilang interpreter:
// run a source file, or start an interactive REPL when given none.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minilang-go/minilang/eval"
	"github.com/minilang-go/minilang/repl"
)

const (
	version = "v0.1.0"
	author  = "minilang contributors"
	license = "MIT"
	prompt  = "minilang >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
  _ __ ___ (_)_ __ (_) | __ _ _ __   __ _
 | '_ ` + "`" + ` _ \| | '_ \| | |/ _` + "`" + ` | '_ \ / _` + "`" + ` |
 | | | | | | | | | | | | (_| | | | | (_| |
 |_| |_| |_|_|_| |_|_|_|\__,_|_| |_|\__, |
                                    |___/
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
)

func main() {
	var showBanner bool

	root := &cobra.Command{
		Use:     "minilang [file]",
		Short:   "minilang is a tree-walking interpreter for the minilang language",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				repl.New(banner, version, author, line, license, prompt).Start(os.Stdout, showBanner)
				return nil
			}
			return runFile(args[0])
		},
	}
	root.Flags().BoolVar(&showBanner, "banner", true, "print the startup banner in REPL mode")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runFile reads and executes a single source file, printing its output
// lines to stdout or its error to stderr.
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file %q: %v\n", path, err)
		os.Exit(1)
	}

	lines, err := eval.Run(string(source))
	if err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	for _, l := range lines {
		yellowColor.Fprintln(os.Stdout, l)
	}
	return nil
}
