package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode without token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_UnknownMode(t *testing.T) {
	cfg := AuthConfig{Mode: "basic", Token: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown mode should fail")
	}
}

func TestWorkspaceConfig_RequiresPath(t *testing.T) {
	cfg := WorkspaceConfig{Path: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty workspace path should fail")
	}
}

func TestWorkspaceConfig_ExtensionsNeedDot(t *testing.T) {
	cfg := WorkspaceConfig{Path: "./ws", Extensions: []string{"md"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("extension without dot should fail")
	}
	cfg.Extensions = []string{".md", ".txt"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid extensions should pass: %v", err)
	}
}

func TestWorkspaceConfig_EmptyExtensionsTracksAll(t *testing.T) {
	cfg := WorkspaceConfig{Path: "./ws"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("no extension filter should pass: %v", err)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := HTTPConfig{Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 0 should fail")
	}
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("port 70000 should fail")
	}
	cfg.Port = 8080
	if err := cfg.Validate(); err != nil {
		t.Fatalf("port 8080 should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Workspace.Extensions) == 0 {
		t.Error("default config should filter by extension")
	}
}
