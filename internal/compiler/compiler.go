// Package compiler orchestrates the ordered pass pipeline (§2, §4) over
// a single module, the way internal/pipeline.Run sequences AILANG's
// parse/elaborate/link/eval phases -- mirrored here without the parse or
// eval ends, since both sit outside this core's input/output contract
// (§6.1, §1 Non-goals).
package compiler

import (
	"time"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
	"github.com/inko-lang/inko-sub002/internal/pass"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

// Result mirrors the teacher's pipeline.Result: the artifacts a caller
// (the CLI, a REPL-like session, a test) wants back from a compile,
// plus per-phase timings for profiling a slow module.
type Result struct {
	Module       *tir.TirModule
	Diagnostics  []*diagnostics.Diagnostic
	PhaseTimings map[string]int64 // milliseconds, keyed by pass name
}

// HasErrors reports whether compilation produced any error-severity diagnostic.
func (r Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// phase is one named step of the pipeline; every Run call executes them
// in this fixed order (§2's pass diagram).
type phase struct {
	name string
	run  func(mod *tir.TirModule, state *tir.State)
}

var phases = []phase{
	{"SetupSymbolTables", func(mod *tir.TirModule, state *tir.State) {
		pass.SetupSymbolTables(mod.File, nil)
	}},
	{"DefineThisModuleType", pass.DefineThisModuleType},
	{"InsertImplicitImports", pass.InsertImplicitImports},
	{"DefineImportTypes", pass.DefineImportTypes},
	{"DefineTypeSignatures", pass.DefineTypeSignatures},
	{"ImplementTraits", pass.ImplementTraits},
	{"DefineType", pass.RunDefineType},
	{"ProcessDeferredMethods", pass.ProcessDeferredMethods},
}

// Compile runs every phase of the pipeline over file, first registering
// the resulting module on state under path so modules compiled later can
// import it by that path (§3.5).
func Compile(path string, file *ast.File, state *tir.State) Result {
	mod := tir.NewTirModule(path, file)
	state.RegisterModule(mod)

	timings := make(map[string]int64)
	for _, p := range phases {
		start := time.Now()
		p.run(mod, state)
		timings[p.name] = time.Since(start).Milliseconds()
	}

	return Result{
		Module:       mod,
		Diagnostics:  state.Diagnostics.All(),
		PhaseTimings: timings,
	}
}

// CompileAll compiles a set of modules (already resolved and ordered by
// the caller so that every import target is compiled, or at least
// registered, before the importing module's DefineImportTypes phase
// runs -- import cycle detection itself lives in internal/loader).
func CompileAll(files map[string]*ast.File, order []string, state *tir.State) map[string]Result {
	results := make(map[string]Result, len(order))
	for _, path := range order {
		results[path] = Compile(path, files[path], state)
	}
	return results
}
