package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/loader"
)

func TestResolveOrderDependencyFirst(t *testing.T) {
	files := map[string]*ast.File{
		"a": {ModulePath: "a", Imports: []*ast.Import{{Path: "b"}, {Path: "c"}}},
		"b": {ModulePath: "b", Imports: []*ast.Import{{Path: "c"}}},
		"c": {ModulePath: "c"},
	}
	l := loader.New(files, config.Default())

	order, err := l.ResolveOrder("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestResolveOrderDetectsCycle(t *testing.T) {
	files := map[string]*ast.File{
		"a": {ModulePath: "a", Imports: []*ast.Import{{Path: "b"}}},
		"b": {ModulePath: "b", Imports: []*ast.Import{{Path: "a"}}},
	}
	l := loader.New(files, config.Default())

	_, err := l.ResolveOrder("a")
	require.Error(t, err)
	var cycleErr *loader.CircularDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Cycle, "a")
	assert.Contains(t, cycleErr.Cycle, "b")
}

func TestResolveOrderMissingModule(t *testing.T) {
	files := map[string]*ast.File{
		"a": {ModulePath: "a", Imports: []*ast.Import{{Path: "missing"}}},
	}
	l := loader.New(files, config.Default())

	_, err := l.ResolveOrder("a")
	require.Error(t, err)
	var notFound *loader.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Path)
}

func TestLoadFixtureDecodesBasicModule(t *testing.T) {
	data := []byte(`{
		"module_path": "main",
		"statements": [
			{"kind": "LetDef", "name": "x", "value": {"kind": "IntegerLit", "value": 42}}
		]
	}`)

	file, err := loader.LoadFixture(data)
	require.NoError(t, err)
	require.Equal(t, "main", file.ModulePath)
	require.Len(t, file.Statements, 1)

	let, ok := file.Statements[0].(*ast.LetDef)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)

	intLit, ok := let.Value.(*ast.IntegerLit)
	require.True(t, ok)
	assert.Equal(t, int64(42), intLit.Value)
}

func TestLoadFixtureRejectsUnknownKind(t *testing.T) {
	data := []byte(`{
		"module_path": "main",
		"statements": [{"kind": "NotARealNode"}]
	}`)

	_, err := loader.LoadFixture(data)
	require.Error(t, err)
}

func TestNormalizeStringLiteralsAppliesNFC(t *testing.T) {
	// "e" followed by a combining acute accent (U+0065 U+0301) is the
	// decomposed spelling of U+00E9 (the precomposed "e with acute").
	decomposed := "é"
	precomposed := "é"
	file := &ast.File{
		Statements: []ast.Node{
			&ast.LetDef{Name: "s", Value: &ast.StringLit{Value: decomposed}},
		},
	}

	loader.NormalizeStringLiterals(file)

	got := file.Statements[0].(*ast.LetDef).Value.(*ast.StringLit).Value
	assert.Equal(t, precomposed, got)
}
