// Command inkoc is the CLI front-end for the semantic analysis core: a
// flag-based command dispatcher mirroring cmd/ailang/main.go's shape
// (package-level color.New(...).SprintFunc() helpers, a switch over
// flag.Arg(0)), minus the parts outside this core's scope (no `run`,
// no bytecode, no LSP -- this compiler stops at a typed TIR).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/compiler"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/loader"
	"github.com/inko-lang/inko-sub002/internal/session"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		runCheck(args)
	case "version":
		printVersion()
	case "dump-tir":
		runDumpTIR(args)
	case "--help", "-h", "help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("inkoc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("built:  %s\n", BuildTime)
	}
	fmt.Printf("config schema: %s\n", config.SchemaVersion)
}

func printHelp() {
	fmt.Println(bold("inkoc - semantic analysis core for Inko"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inkoc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <fixture.json>...   Type-check one or more JSON AST fixtures\n", cyan("check"))
	fmt.Printf("  %s                   Print version information\n", cyan("version"))
	fmt.Printf("  %s [-i] <fixture>    Compile a fixture and print its TIR/diagnostics\n", cyan("dump-tir"))
	fmt.Println()
	fmt.Println("Flags (check):")
	fmt.Println("  --json             Emit diagnostics as JSON instead of colored text")
	fmt.Println("  --config <file>    Load compiler configuration from a YAML file")
	fmt.Println()
	fmt.Println("Flags (dump-tir):")
	fmt.Println("  -i                 Start an interactive session instead of a one-shot dump")
	fmt.Println("  --config <file>    Load compiler configuration from a YAML file")
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	return cfg
}

// loadASTFiles reads and decodes every fixture path, keyed by the
// module path each fixture declares (not by filesystem path), since
// that's what internal/loader and internal/compiler both index by.
func loadASTFiles(paths []string) map[string]*ast.File {
	files := make(map[string]*ast.File, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %q: %v\n", red("error"), p, err)
			os.Exit(1)
		}
		file, err := loader.LoadFixture(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %q: %v\n", red("error"), p, err)
			os.Exit(1)
		}
		loader.NormalizeStringLiterals(file)
		files[file.ModulePath] = file
	}
	return files
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "emit diagnostics as JSON")
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: inkoc check <fixture.json>...")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	state := tir.NewState(cfg)
	files := loadASTFiles(paths)

	l := loader.New(files, cfg)
	order := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for path := range files {
		resolved, err := l.ResolveOrder(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			os.Exit(1)
		}
		for _, p := range resolved {
			if !seen[p] {
				seen[p] = true
				order = append(order, p)
			}
		}
	}

	results := compiler.CompileAll(files, order, state)

	hasErrors := false
	for _, path := range order {
		r := results[path]
		if r.HasErrors() {
			hasErrors = true
		}
		printResult(path, r, *jsonOut)
	}

	if hasErrors {
		os.Exit(1)
	}
}

func printResult(path string, r compiler.Result, jsonOut bool) {
	if jsonOut {
		printResultJSON(path, r)
		return
	}
	if r.HasErrors() {
		fmt.Printf("%s %s\n", red("✗"), path)
	} else {
		fmt.Printf("%s %s\n", green("✓"), path)
	}
	for _, d := range r.Diagnostics {
		c := yellow
		if d.Severity == diagnostics.SeverityError {
			c = red
		}
		fmt.Printf("  %s %s: %s (%s)\n", c(string(d.Severity)), d.Kind, d.Message, d.Location)
	}
}

func printResultJSON(path string, r compiler.Result) {
	type entry struct {
		Module      string                    `json:"module"`
		HasErrors   bool                      `json:"has_errors"`
		Diagnostics []*diagnostics.Diagnostic `json:"diagnostics"`
	}
	e := entry{Module: path, HasErrors: r.HasErrors(), Diagnostics: r.Diagnostics}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Println(string(data))
}

func runDumpTIR(args []string) {
	fs := flag.NewFlagSet("dump-tir", flag.ExitOnError)
	interactive := fs.Bool("i", false, "start an interactive session")
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Parse(args)

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: inkoc dump-tir [-i] <fixture.json>...")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)
	state := tir.NewState(cfg)
	files := loadASTFiles(paths)
	l := loader.New(files, cfg)

	if *interactive {
		s := session.New(state, files, l)
		s.Start(os.Stdout)
		return
	}

	for modPath := range files {
		order, err := l.ResolveOrder(modPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			os.Exit(1)
		}
		results := compiler.CompileAll(files, order, state)
		r := results[modPath]
		fmt.Printf("%s %s\n", bold(modPath), dim(fmt.Sprintf("(%d diagnostics)", len(r.Diagnostics))))
		printResult(modPath, r, false)
		for name, phaseTime := range r.PhaseTimings {
			fmt.Printf("  %-24s %4dms\n", name, phaseTime)
		}
	}
}
