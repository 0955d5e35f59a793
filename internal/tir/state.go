package tir

import (
	"github.com/inko-lang/inko-sub002/internal/config"
	"github.com/inko-lang/inko-sub002/internal/diagnostics"
)

// State is shared by reference across every pass of a single
// compilation (§3.5, §5). It is created once, mutated by every pass in
// sequence, and frozen (by convention — nothing enforces immutability
// beyond "stop calling passes on it") once the pipeline completes.
type State struct {
	TypeDb      *TypeDb
	Diagnostics *diagnostics.Sink
	Config      *config.Config

	// Modules is every TirModule known to this compilation, keyed by
	// module path, so passes can resolve imports across modules without
	// threading an extra parameter through every call.
	Modules map[string]*TirModule
}

// NewState creates a fresh State with a bootstrapped TypeDb.
func NewState(cfg *config.Config) *State {
	if cfg == nil {
		cfg = config.Default()
	}
	return &State{
		TypeDb:      NewTypeDb(cfg.ArrayTypeParameter),
		Diagnostics: diagnostics.NewSink(),
		Config:      cfg,
		Modules:     map[string]*TirModule{},
	}
}

// RegisterModule adds m to this State's module registry, keyed by path.
func (s *State) RegisterModule(m *TirModule) {
	s.Modules[m.Path] = m
}

// LookupModule finds a previously registered module by path.
func (s *State) LookupModule(path string) (*TirModule, bool) {
	m, ok := s.Modules[path]
	return m, ok
}
