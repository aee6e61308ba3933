package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"ippvm/internal/config"
	"ippvm/pkg/interpreter"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[run]
input = "stdin.txt"
trace = true

[log]
verbose = true
`)

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Run.Trace || !c.Log.Verbose {
		t.Errorf("expected trace and verbose, got %+v", c)
	}
	if !c.Log.Color {
		t.Error("color should keep its default when the file does not set it")
	}
	if got, want := c.InputPath(), filepath.Join(c.Dir, "stdin.txt"); got != want {
		t.Errorf("InputPath: expected %q, got %q", want, got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "[run\ninput = 1"},
		{"wrong type", "[run]\ntrace = \"yes\""},
		{"unknown key", "[run]\nspeed = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := interpreter.ExitCode(err); got != 10 {
				t.Errorf("expected exit code 10, got %d (%v)", got, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if interpreter.KindOf(err) != interpreter.KindArgumentUsage {
		t.Errorf("expected argument usage error, got %v", err)
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[log]\ncolor = false\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := config.FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if c.Log.Color {
		t.Error("expected the file found in a parent directory to be used")
	}
}

func TestDefault(t *testing.T) {
	c := config.Default()
	if c.InputPath() != "" || c.Run.Trace || c.Log.Verbose || !c.Log.Color {
		t.Errorf("unexpected defaults: %+v", c)
	}
}
