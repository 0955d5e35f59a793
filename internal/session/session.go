// Package session implements an interactive TIR dumper, the way
// internal/repl.REPL drives AILANG's read-eval-print loop -- adapted
// here to a read-compile-inspect loop, since this core stops at a typed
// TIR and never evaluates (§1 Non-goals).
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/compiler"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/loader"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Session holds the fixtures and compiled state a dumper command needs.
type Session struct {
	state       *tir.State
	files       map[string]*ast.File
	loader      *loader.Loader
	history     []string
	lastResult  compiler.Result
	hasLast     bool
	showTimings bool
}

// New creates a Session over a fixed set of already-parsed module
// fixtures, keyed by module path.
func New(state *tir.State, files map[string]*ast.File, l *loader.Loader) *Session {
	return &Session{state: state, files: files, loader: l}
}

// Start begins the interactive loop, reading `:command` lines from the
// terminal (through liner) and writing results to out until `:quit` or
// EOF.
func (s *Session) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".inkoc_session_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	line.SetMultiLineMode(false)
	line.SetCompleter(func(in string) (c []string) {
		if strings.HasPrefix(in, ":") {
			for _, cmd := range []string{":help", ":quit", ":compile", ":order",
				":diagnostics", ":type", ":timings", ":history"} {
				if strings.HasPrefix(cmd, in) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s\n", bold("inkoc session"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("inko> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		s.history = append(s.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			s.handleCommand(input, out)
			continue
		}

		s.handleCommand(":compile "+input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (s *Session) handleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		s.printHelp(out)

	case ":compile", ":c":
		if len(parts) < 2 {
			fmt.Fprintln(out, "usage: :compile <module-path>")
			return
		}
		s.compile(parts[1], out)

	case ":order":
		if len(parts) < 2 {
			fmt.Fprintln(out, "usage: :order <module-path>")
			return
		}
		s.showOrder(parts[1], out)

	case ":diagnostics", ":d":
		s.showDiagnostics(out)

	case ":type", ":t":
		if len(parts) < 2 {
			fmt.Fprintln(out, "usage: :type <global-name>")
			return
		}
		s.showGlobalType(parts[1], out)

	case ":timings":
		s.showTimings(out)

	case ":history":
		for i, h := range s.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}

	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", yellow("warning"), parts[0])
	}
}

func (s *Session) compile(path string, out io.Writer) {
	file, ok := s.files[path]
	if !ok {
		fmt.Fprintf(out, "%s: no fixture registered for module %q\n", red("error"), path)
		return
	}

	order := []string{path}
	if s.loader != nil {
		if resolved, err := s.loader.ResolveOrder(path); err == nil {
			order = resolved
		} else {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			return
		}
	}

	results := compiler.CompileAll(s.files, order, s.state)
	s.lastResult = results[path]
	s.hasLast = true

	if s.lastResult.HasErrors() {
		fmt.Fprintf(out, "%s compiled with errors\n", red(path))
	} else {
		fmt.Fprintf(out, "%s compiled cleanly\n", green(path))
	}
	s.printDiagnostics(s.lastResult.Diagnostics, out)
}

func (s *Session) showOrder(path string, out io.Writer) {
	if s.loader == nil {
		fmt.Fprintln(out, "no loader configured for this session")
		return
	}
	order, err := s.loader.ResolveOrder(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintln(out, strings.Join(order, " -> "))
}

func (s *Session) showDiagnostics(out io.Writer) {
	if !s.hasLast {
		fmt.Fprintln(out, "nothing compiled yet; run :compile <module> first")
		return
	}
	s.printDiagnostics(s.lastResult.Diagnostics, out)
}

func (s *Session) printDiagnostics(diags []*diagnostics.Diagnostic, out io.Writer) {
	if len(diags) == 0 {
		fmt.Fprintln(out, dim("(no diagnostics)"))
		return
	}
	for _, d := range diags {
		color := yellow
		if d.Severity == diagnostics.SeverityError {
			color = red
		}
		fmt.Fprintf(out, "%s %s: %s\n", color(string(d.Severity)), d.Kind, d.Message)
	}
}

func (s *Session) showGlobalType(name string, out io.Writer) {
	if !s.hasLast {
		fmt.Fprintln(out, "nothing compiled yet; run :compile <module> first")
		return
	}
	sym, ok := s.lastResult.Module.Globals.Lookup(name)
	if !ok {
		fmt.Fprintf(out, "%s: no global named %q\n", red("error"), name)
		return
	}
	fmt.Fprintf(out, "%s : %s\n", name, sym.Type)
}

func (s *Session) showTimings(out io.Writer) {
	if !s.hasLast {
		fmt.Fprintln(out, "nothing compiled yet; run :compile <module> first")
		return
	}
	names := make([]string, 0, len(s.lastResult.PhaseTimings))
	for n := range s.lastResult.PhaseTimings {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "%-24s %4dms\n", n, s.lastResult.PhaseTimings[n])
	}
}

func (s *Session) printHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  :compile <module>      compile a module (and its imports) and show diagnostics
  :order <module>        show the resolved compile order for a module
  :diagnostics            re-print the last compile's diagnostics
  :type <name>            show the type of a module-level global
  :timings                show per-phase timings from the last compile
  :history                show command history
  :quit                   exit`)
}
