package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() returned error: %v", err)
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("DefaultPath() = %q, want to end with config.toml", path)
	}
	if filepath.Base(filepath.Dir(path)) != "noteist" {
		t.Errorf("DefaultPath() = %q, want parent dir noteist", path)
	}
}

func TestDefaultPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(PathEnv, want)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() returned error: %v", err)
	}
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestLoadNoConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Token != "" || cfg.Project != "" {
		t.Errorf("Load() = %+v, want empty config", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noteist", "config.toml")
	cfg := &Config{Token: "test-token-12345", Project: "Work"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Config file has permissions %o, want 0600", perm)
	}

	dirInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Config dir not created: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0700 {
		t.Errorf("Config dir has permissions %o, want 0700", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestSaveOmitsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Save(path, &Config{Project: "Home"}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "token") {
		t.Errorf("saved config should omit empty token, got:\n%s", data)
	}
	if !strings.Contains(string(data), "Home") {
		t.Errorf("saved config should contain project, got:\n%s", data)
	}
}

func TestLoadHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "# defaults\ntoken = \"abc\"\nproject = \"Work\"\nunknown = 1\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Token != "abc" || cfg.Project != "Work" {
		t.Errorf("Load() = %+v, want token abc, project Work", cfg)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte(`token = "unterminated`), 0600)

	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for invalid TOML")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		flagToken   string
		flagProject string
		cfg         *Config
		wantToken   string
		wantProject string
		wantMissing string
	}{
		{"flags win", "env", "flag", "FlagProj", &Config{Token: "file", Project: "FileProj"}, "flag", "FlagProj", ""},
		{"env before file", "env", "", "", &Config{Token: "file", Project: "FileProj"}, "env", "FileProj", ""},
		{"file fallback", "", "", "", &Config{Token: "file", Project: "FileProj"}, "file", "FileProj", ""},
		{"missing project", "", "tok", "", &Config{}, "tok", "", "project"},
		{"missing token", "", "", "Work", nil, "", "Work", "token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenEnv, tt.env)

			creds, err := Resolve(tt.flagToken, tt.flagProject, tt.cfg)
			if tt.wantMissing != "" {
				if !errors.Is(err, ErrMissing) {
					t.Fatalf("Resolve() error = %v, want ErrMissing", err)
				}
				var me *MissingError
				if errors.As(err, &me) && me.Key != tt.wantMissing {
					t.Errorf("MissingError.Key = %q, want %q", me.Key, tt.wantMissing)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() returned error: %v", err)
			}
			if creds.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", creds.Token, tt.wantToken)
			}
			if creds.Project != tt.wantProject {
				t.Errorf("Project = %q, want %q", creds.Project, tt.wantProject)
			}
		})
	}
}

func TestSetGetUnset(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Set("project", "Work"); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	if err := cfg.Set("color", "never"); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	if v, _ := cfg.Get("PROJECT"); v != "Work" {
		t.Errorf("Get(PROJECT) = %q, want Work", v)
	}

	if err := cfg.Set("color", "rainbow"); err == nil {
		t.Error("Set(color, rainbow) should fail")
	}
	if err := cfg.Set("editor", "vim"); err == nil {
		t.Error("Set(editor) should fail for unknown key")
	}

	if err := cfg.Unset("project"); err != nil {
		t.Fatalf("Unset() returned error: %v", err)
	}
	if cfg.Project != "" {
		t.Errorf("Project = %q after Unset, want empty", cfg.Project)
	}
	if cfg.Color != "never" {
		t.Errorf("Color = %q, want never", cfg.Color)
	}
}

func TestResolveToken(t *testing.T) {
	t.Setenv(TokenEnv, "")

	if _, err := ResolveToken("", nil); !errors.Is(err, ErrMissing) {
		t.Errorf("ResolveToken() error = %v, want ErrMissing", err)
	}

	token, err := ResolveToken("", &Config{Token: "file"})
	if err != nil || token != "file" {
		t.Errorf("ResolveToken() = %q, %v; want file", token, err)
	}

	t.Setenv(TokenEnv, "env")
	if token, _ := ResolveToken("", &Config{Token: "file"}); token != "env" {
		t.Errorf("ResolveToken() = %q, want env", token)
	}
}

func TestMissingErrorMessage(t *testing.T) {
	err := &MissingError{Key: "project"}
	want := "the --project option is required, if you haven't set a default"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
