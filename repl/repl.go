// Package repl implements minilang's interactive Read-Eval-Print Loop.
//
// The loop reads one line at a time via chzyer/readline (history,
// cursor movement, Ctrl+D to exit) and feeds it to a single long-lived
// eval.Evaluator, so a `var` declared on one line is still visible on
// the next — unlike eval.Run, which starts fresh every call.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/minilang-go/minilang/eval"
	"github.com/minilang-go/minilang/objects"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New returns a Repl configured with the given banner, version,
// author, separator line, license, and prompt.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to minilang!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement, terminated by `;`, and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop until the user exits or EOF is reached.
// showBanner controls whether PrintBannerInfo runs first — `minilang
// --banner=false` suppresses it for scripted or piped sessions.
func (r *Repl) Start(writer io.Writer, showBanner bool) {
	if showBanner {
		r.PrintBannerInfo(writer)
	}

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	ev := eval.New()
	ev.SetWriter(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Bye!\n"))
			return
		}
		rl.SaveHistory(line)

		r.evalLine(writer, ev, line)
	}
}

// evalLine runs one line against ev, printing its error (if any) in red
// and letting the session continue — unlike file execution, a REPL
// mistake should not end the process.
func (r *Repl) evalLine(writer io.Writer, ev *eval.Evaluator, line string) {
	sig := ev.EvalChunk(line)
	if sig == nil {
		return
	}
	switch sig.Kind {
	case objects.SigBreak:
		redColor.Fprintf(writer, "%s\n", "Break at top level.")
	case objects.SigContinue:
		redColor.Fprintf(writer, "%s\n", "Continue at top level.")
	case objects.SigReturn:
		redColor.Fprintf(writer, "%s\n", "Return at top level.")
	default:
		redColor.Fprintf(writer, "%s\n", sig.Message)
	}
}
