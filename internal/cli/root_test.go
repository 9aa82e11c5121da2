package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	t.Cleanup(func() { SetVersion("", "", "") })

	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("version info = %q %q %q", version, commit, date)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), "papyrus-table 1.0.0") || !strings.Contains(out.String(), "abc123") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"render", "inspect"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %s not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Fatalf("--verbose flag missing")
	}
}

func TestExecuteRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.papyrus")
	if err := os.WriteFile(input, []byte(gridDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"render", input, "-f", "txt", "-o", "-", "--data", `{"x": "x"}`})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "+-----+-----+") {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}
