package config

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) LookupFunc {
	return mapLookup(env)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, lookupFrom(nil), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8081 || cfg.DataDir != "data" || cfg.AdminToken != "" || cfg.BaseURL != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" || cfg.NewsTTL != 10*time.Minute {
		t.Errorf("unexpected logging defaults %+v", cfg)
	}
	if cfg.Addr() != ":8081" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoad_Environment(t *testing.T) {
	env := map[string]string{
		"PORT":        "9000",
		"DATA_DIR":    "/srv/data",
		"ADMIN_TOKEN": "secret",
		"BASE_URL":    "https://elections.example/",
		"LOG_LEVEL":   "debug",
		"LOG_FORMAT":  "json",
		"NEWS_TTL":    "30s",
	}

	cfg, err := Load(nil, lookupFrom(env), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		Port: 9000, DataDir: "/srv/data", AdminToken: "secret", BaseURL: "https://elections.example",
		LogLevel: "debug", LogFormat: "json", NewsTTL: 30 * time.Second,
	}
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	env := map[string]string{"PORT": "9000", "ADMIN_TOKEN": "from-env"}
	args := []string{"-port", "7000", "-admin-token", "from-flag", "-nokeyboard", "-news-ttl", "1m"}

	cfg, err := Load(args, lookupFrom(env), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7000 || cfg.AdminToken != "from-flag" || !cfg.NoKeyboard || cfg.NewsTTL != time.Minute {
		t.Errorf("expected flags to win, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad env port", nil, map[string]string{"PORT": "abc"}},
		{"bad env ttl", nil, map[string]string{"NEWS_TTL": "soon"}},
		{"port out of range", []string{"-port", "70000"}, nil},
		{"negative ttl", []string{"-news-ttl", "-1m"}, nil},
		{"unknown format", []string{"-logformat", "xml"}, nil},
		{"empty data dir", []string{"-data", ""}, nil},
		{"unknown flag", []string{"-db", "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args, lookupFrom(tt.env), &bytes.Buffer{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_Usage(t *testing.T) {
	var out bytes.Buffer
	_, err := Load([]string{"-help"}, lookupFrom(nil), &out)
	if err == nil {
		t.Fatal("expected flag.ErrHelp")
	}
	if !strings.Contains(out.String(), "ADMIN_TOKEN") {
		t.Errorf("expected usage to document environment variables, got %q", out.String())
	}
}

func TestChain(t *testing.T) {
	first := lookupFrom(map[string]string{"A": "1"})
	second := lookupFrom(map[string]string{"A": "2", "B": "3"})
	lookup := chain(first, second)

	if v, _ := lookup("A"); v != "1" {
		t.Errorf("expected first lookup to win, got %q", v)
	}
	if v, _ := lookup("B"); v != "3" {
		t.Errorf("expected fallback value, got %q", v)
	}
	if _, ok := lookup("C"); ok {
		t.Error("expected missing key")
	}
}

func TestParse_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("LOG_LEVEL", "warn")
	writeFile(t, DotEnvFile, "ADMIN_TOKEN=dotenv-token\nLOG_LEVEL=debug\n")

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.AdminToken != "dotenv-token" {
		t.Errorf("expected token from .env, got %q", cfg.AdminToken)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected the real environment to win, got %q", cfg.LogLevel)
	}
}

func TestParse_NoDotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := Parse(nil); err != nil {
		t.Fatalf("a missing .env must be ignored: %v", err)
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
