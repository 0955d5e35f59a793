// Package loader resolves a module's `import` graph into compile order,
// the way internal/module.Loader walks AILANG's dependency graph --
// adapted to this core's input contract (§6.1): a Loader here is handed
// already-parsed ast.File fixtures (lexing/parsing is out of scope, §1)
// keyed by module path, plus a set of additional search paths (§6.3),
// rather than reading and parsing source text itself.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
)

// Loader resolves import graphs over a fixed set of pre-parsed modules.
type Loader struct {
	files       map[string]*ast.File
	searchPaths []string
	loadStack   []string
}

// New creates a Loader over files, keyed by canonical module path, using
// cfg's configured search paths for NotFoundError messages and
// for FindModule's best-effort path resolution.
func New(files map[string]*ast.File, cfg *config.Config) *Loader {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Loader{files: files, searchPaths: cfg.SearchPaths}
}

// CircularDependencyError reports an import cycle, naming every module
// path in the cycle in the order they were entered.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular import: %s", strings.Join(e.Cycle, " -> "))
}

// NotFoundError reports a module path with no matching fixture.
type NotFoundError struct {
	Path        string
	SearchPaths []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not found (searched: %s)", e.Path, strings.Join(e.SearchPaths, ", "))
}

// ResolveOrder returns a dependency-first compile order (every module
// ordered before anything that imports it) for root and everything it
// transitively imports, detecting cycles along the way.
func (l *Loader) ResolveOrder(root string) ([]string, error) {
	var order []string
	visited := map[string]bool{}
	if err := l.visit(root, visited, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (l *Loader) visit(path string, visited map[string]bool, order *[]string) error {
	for i, p := range l.loadStack {
		if p == path {
			cycle := append(append([]string{}, l.loadStack[i:]...), path)
			return &CircularDependencyError{Cycle: cycle}
		}
	}
	if visited[path] {
		return nil
	}

	l.loadStack = append(l.loadStack, path)
	defer func() { l.loadStack = l.loadStack[:len(l.loadStack)-1] }()

	file, ok := l.files[path]
	if !ok {
		return &NotFoundError{Path: path, SearchPaths: l.searchPaths}
	}
	for _, imp := range file.Imports {
		if err := l.visit(imp.Path, visited, order); err != nil {
			return err
		}
	}

	visited[path] = true
	*order = append(*order, path)
	return nil
}

// FindModule resolves a module path to a candidate filesystem location
// under the Loader's search paths, for diagnostics/tooling that wants to
// report where a module *would* live on disk (the fixtures themselves
// are supplied pre-parsed; this never reads a file).
func (l *Loader) FindModule(path string) string {
	rel := filepath.FromSlash(path) + ".inko"
	if len(l.searchPaths) == 0 {
		return rel
	}
	return filepath.Join(l.searchPaths[0], rel)
}

// NormalizeStringLiterals walks the string literals in file's statements
// (nested ones included) and rewrites their Value to Unicode NFC, matching the normalization
// AILANG's lexer applies to source text before tokenizing -- since this
// core never lexes, fixtures loaded from disk/JSON need the same
// normalization applied explicitly so two fixtures spelling the same
// string with different combining-character sequences compare equal.
func NormalizeStringLiterals(file *ast.File) {
	for _, stmt := range file.Statements {
		normalizeNode(stmt)
	}
}

func normalizeNode(n ast.Node) {
	switch v := n.(type) {
	case *ast.StringLit:
		v.Value = norm.NFC.String(v.Value)
	case *ast.LetDef:
		normalizeExpr(v.Value)
	case *ast.Assign:
		normalizeExpr(v.Value)
	case *ast.Return:
		normalizeExpr(v.Value)
	case *ast.Throw:
		normalizeExpr(v.Value)
	case *ast.Call:
		normalizeExpr(v.Receiver)
		for _, a := range v.Args {
			normalizeExpr(a.Value)
		}
	case *ast.Try:
		normalizeExpr(v.Value)
		for _, s := range v.ElseBody {
			normalizeNode(s)
		}
	case *ast.As:
		normalizeExpr(v.Value)
	case *ast.Deref:
		normalizeExpr(v.Value)
	case *ast.RawInstruction:
		for _, a := range v.Args {
			normalizeExpr(a)
		}
	case *ast.ArrayLit:
		for _, e := range v.Elements {
			normalizeExpr(e)
		}
	case *ast.ClosureLit:
		for _, s := range v.Body {
			normalizeNode(s)
		}
	case *ast.MethodDef:
		for _, s := range v.Body {
			normalizeNode(s)
		}
	case *ast.ObjectDef:
		for _, s := range v.Body {
			normalizeNode(s)
		}
	case *ast.TraitDef:
		for _, s := range v.Body {
			normalizeNode(s)
		}
	case *ast.ImplDef:
		for _, s := range v.Body {
			normalizeNode(s)
		}
	}
}

func normalizeExpr(e ast.Expr) {
	if e == nil {
		return
	}
	normalizeNode(e)
}
