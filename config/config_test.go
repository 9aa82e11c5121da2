package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/papyrus-table/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "papyrus.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultMatchesLayoutDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	got, want := cfg.LayoutOptions(), layout.DefaultOptions()
	if math.Abs(got.SummaryPadding-want.SummaryPadding) > 1e-9 ||
		math.Abs(got.Pen.Width-want.Pen.Width) > 1e-9 ||
		math.Abs(got.HeaderPen.Width-want.HeaderPen.Width) > 1e-9 {
		t.Fatalf("layout options = %+v, want %+v", got, want)
	}
	if cfg.DefaultFont() != layout.DefaultFont() {
		t.Fatalf("default font = %+v", cfg.DefaultFont())
	}
	if cfg.TableSpacing() != 5 {
		t.Fatalf("table spacing = %g, want 5", cfg.TableSpacing())
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[font]
family = "Helvetica"
size = 12

[layout]
summary_padding = "4mm"
table_spacing = "1cm"

[text]
cell_width = 2.5

[output]
format = "txt"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Font.Family != "Helvetica" || cfg.Font.Size != 12 {
		t.Fatalf("font = %+v", cfg.Font)
	}
	if got := cfg.LayoutOptions().SummaryPadding; got != 4 {
		t.Fatalf("summary padding = %g, want 4", got)
	}
	if got := cfg.TableSpacing(); got != 10 {
		t.Fatalf("table spacing = %g, want 10", got)
	}
	// 未出现的键保留默认值
	if cfg.Layout.LineWidth != "1pt" || cfg.Text.LineHeight != 5 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	text := cfg.TextOptions()
	if text.CellWidth != 2.5 || text.HeavyWidth != cfg.LayoutOptions().HeaderPen.Width {
		t.Fatalf("text options = %+v", text)
	}
	if cfg.Output.Format != FormatTXT {
		t.Fatalf("format = %q", cfg.Output.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[font]\ncolor = \"red\"\n"},
		{"bad length", "[layout]\nline_width = \"thick\"\n"},
		{"percent length", "[layout]\nsummary_padding = \"10%\"\n"},
		{"bad format", "[output]\nformat = \"png\"\n"},
		{"zero font size", "[font]\nsize = 0\n"},
		{"malformed", "[font\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}
