package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate points the user config dir at a temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(TokenEnvVar, "")
	t.Setenv(APIURLEnvVar, "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.Token != "" {
		t.Errorf("expected no default token, got %q", cfg.GitHub.Token)
	}
	if cfg.GitHub.APIURL != "" {
		t.Errorf("expected empty api_url (github.com), got %q", cfg.GitHub.APIURL)
	}
	if cfg.Close.StateReason != "" {
		t.Errorf("expected no default state reason, got %q", cfg.Close.StateReason)
	}
}

func TestLoadJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jsonc")
	writeFile(t, path, `{
  // This is a JSONC comment
  "github": {
    "api_url": "https://ghe.example.com/"
  }
}`)

	m, err := loadJSONC(path)
	if err != nil {
		t.Fatalf("loadJSONC failed: %v", err)
	}

	gh, ok := m["github"].(map[string]any)
	if !ok {
		t.Fatal("expected github to be a map")
	}
	if gh["api_url"] != "https://ghe.example.com/" {
		t.Errorf("expected api_url=https://ghe.example.com/, got %v", gh["api_url"])
	}
}

func TestLoadJSONC_FileNotFound(t *testing.T) {
	_, err := loadJSONC("/nonexistent/path/config.jsonc")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadJSONC_MalformedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonc")
	writeFile(t, path, `{"github": {"api_url": "x"`)

	if _, err := loadJSONC(path); err == nil {
		t.Error("expected error for malformed JSONC")
	}
}

func TestMergeIntoConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.APIURL = "https://ghe.example.com/"

	src := map[string]any{
		"close": map[string]any{
			"state_reason": "not_planned",
		},
	}
	if err := mergeIntoConfig(&cfg, src); err != nil {
		t.Fatalf("mergeIntoConfig failed: %v", err)
	}

	if cfg.Close.StateReason != "not_planned" {
		t.Errorf("expected state_reason=not_planned, got %s", cfg.Close.StateReason)
	}
	// Untouched sections survive the merge.
	if cfg.GitHub.APIURL != "https://ghe.example.com/" {
		t.Errorf("expected api_url preserved, got %s", cfg.GitHub.APIURL)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.Token = "from-file"

	t.Setenv(TokenEnvVar, "gh-token-456")
	t.Setenv(APIURLEnvVar, "https://ghe.example.com/api/v3/")

	applyEnvOverrides(&cfg)

	if cfg.GitHub.Token != "gh-token-456" {
		t.Errorf("expected token=gh-token-456, got %s", cfg.GitHub.Token)
	}
	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("expected api_url override, got %s", cfg.GitHub.APIURL)
	}
}

func TestApplyEnvOverrides_EmptyKeepsFileValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.Token = "from-file"
	t.Setenv(TokenEnvVar, "")

	applyEnvOverrides(&cfg)

	if cfg.GitHub.Token != "from-file" {
		t.Errorf("expected token from file to survive, got %s", cfg.GitHub.Token)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("expected empty token, got %q", cfg.GitHub.Token)
	}
}

func TestLoadMergesUserAndOverride(t *testing.T) {
	userConfigDir := isolate(t)

	writeFile(t, filepath.Join(userConfigDir, "issuecloser", "config.jsonc"),
		`{"github":{"api_url":"https://user.example.com/"},"close":{"state_reason":"completed"}}`)

	overridePath := filepath.Join(t.TempDir(), "override.jsonc")
	writeFile(t, overridePath, `{"close":{"state_reason":"not_planned"}}`)

	cfg, err := Load(overridePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Close.StateReason != "not_planned" {
		t.Errorf("expected override state_reason=not_planned, got %s", cfg.Close.StateReason)
	}
	if cfg.GitHub.APIURL != "https://user.example.com/" {
		t.Errorf("expected user api_url preserved, got %s", cfg.GitHub.APIURL)
	}
}

func TestLoad_EnvWinsOverFiles(t *testing.T) {
	userConfigDir := isolate(t)
	writeFile(t, filepath.Join(userConfigDir, "issuecloser", "config.jsonc"), `{"github":{"token":"file-token"}}`)
	t.Setenv(TokenEnvVar, "env-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("expected env token, got %s", cfg.GitHub.Token)
	}
}

func TestLoad_MissingOverrideFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_MalformedUserConfig(t *testing.T) {
	userConfigDir := isolate(t)
	writeFile(t, filepath.Join(userConfigDir, "issuecloser", "config.jsonc"), `{`)

	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed user config")
	}
}

func TestLoad_InvalidStateReason(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.jsonc")
	writeFile(t, path, `{"close":{"state_reason":"reopened"}}`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid close state reason") {
		t.Errorf("expected invalid state reason error, got %v", err)
	}
}

func TestRequireToken(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.RequireToken()
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if !strings.Contains(err.Error(), "GITHUB_TOKEN") {
		t.Errorf("expected message to name GITHUB_TOKEN, got %q", err.Error())
	}

	cfg.GitHub.Token = "abc"
	token, err := cfg.RequireToken()
	if err != nil || token != "abc" {
		t.Errorf("expected token abc, got %q (%v)", token, err)
	}
}

func TestCloseConfigValidate(t *testing.T) {
	for _, reason := range []string{"", "completed", "not_planned"} {
		if err := (CloseConfig{StateReason: reason}).Validate(); err != nil {
			t.Errorf("expected %q to be valid, got %v", reason, err)
		}
	}
	if err := (CloseConfig{StateReason: "duplicate"}).Validate(); err == nil {
		t.Error("expected error for unsupported reason")
	}
}

func TestTokenOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "token") {
		t.Errorf("expected empty token to be omitted, got %s", data)
	}
}

func TestKeyKind(t *testing.T) {
	tests := []struct {
		key    string
		want   reflect.Kind
		wantOK bool
	}{
		{"github.token", reflect.String, true},
		{"github.api_url", reflect.String, true},
		{"close.state_reason", reflect.String, true},
		{"github", reflect.Struct, true},
		{"github.missing", reflect.Invalid, false},
		{"github.token.extra", reflect.Invalid, false},
		{"unknown", reflect.Invalid, false},
	}

	for _, tt := range tests {
		kind, ok := KeyKind(tt.key)
		if kind != tt.want || ok != tt.wantOK {
			t.Errorf("KeyKind(%q) = (%v, %v), want (%v, %v)", tt.key, kind, ok, tt.want, tt.wantOK)
		}
	}
}
