package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inko-lang/inko-sub002/internal/ast"
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/loader"
	"github.com/inko-lang/inko-sub002/internal/tir"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.Default()
	files := map[string]*ast.File{
		"main": {
			ModulePath: "main",
			Statements: []ast.Node{
				&ast.LetDef{Name: "x", Value: &ast.IntegerLit{Value: 1}},
			},
		},
	}
	l := loader.New(files, cfg)
	return New(tir.NewState(cfg), files, l)
}

func TestHandleCommandCompileReportsCleanCompile(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer

	s.handleCommand(":compile main", &buf)

	assert.Contains(t, buf.String(), "compiled cleanly")
	assert.True(t, s.hasLast)
}

func TestHandleCommandCompileUnknownModuleReportsError(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer

	s.handleCommand(":compile nope", &buf)

	assert.Contains(t, buf.String(), "no fixture registered")
	assert.False(t, s.hasLast)
}

func TestHandleCommandDiagnosticsBeforeCompileAsksToCompileFirst(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer

	s.handleCommand(":diagnostics", &buf)

	assert.Contains(t, buf.String(), "nothing compiled yet")
}

func TestHandleCommandOrderPrintsResolvedOrder(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer

	s.handleCommand(":order main", &buf)

	assert.Equal(t, "main", strings.TrimSpace(buf.String()))
}

func TestHandleCommandTypeAfterCompileShowsGlobal(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer
	s.handleCommand(":compile main", &buf)
	buf.Reset()

	s.handleCommand(":type ThisModule", &buf)

	assert.Contains(t, buf.String(), "ThisModule")
}

func TestHandleCommandUnknownPrintsWarning(t *testing.T) {
	s := newTestSession(t)
	var buf bytes.Buffer

	s.handleCommand(":frobnicate", &buf)

	assert.Contains(t, buf.String(), "unknown command")
}

func TestHandleCommandHistoryTracksAppendedLines(t *testing.T) {
	s := newTestSession(t)
	s.history = append(s.history, ":compile main")
	var buf bytes.Buffer

	s.handleCommand(":history", &buf)

	require.Contains(t, buf.String(), ":compile main")
}
