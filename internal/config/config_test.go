package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() config should validate: %v", err)
	}
}

func TestIsReserved(t *testing.T) {
	cfg := Default()
	if !cfg.IsReserved("Self") {
		t.Error("Self should be reserved by default")
	}
	if cfg.IsReserved("Foo") {
		t.Error("Foo should not be reserved by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkoc.yaml")
	content := "schema: inkoc.config/v1\nmodule_global: MyModuleGlobal\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ModuleGlobal != "MyModuleGlobal" {
		t.Errorf("expected override to apply, got %q", cfg.ModuleGlobal)
	}
	if cfg.InitMessage != "init" {
		t.Errorf("expected default init_message to survive partial override, got %q", cfg.InitMessage)
	}
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkoc.yaml")
	content := "schema: inkoc.config/v1\nmodule_global: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty module_global")
	}
}
