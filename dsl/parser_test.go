package dsl_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/papyrus-table/dsl"
)

const sampleDSL = `
doc Scores v1 {
  meta {
    title: "Quarterly scores"
    keywords: [
      "qa"
      "internal"
    ]
  }

  resources {
    font Cell { family: "Courier" size: 10pt }
  }

  # 第一张表定宽，第二张按页宽等分
  page A4 portrait margin 15mm {
    table font Cell width 180mm {
      columns 1 2 1
      header { "ID" "Name" "Score" }
      row { "1" "${user.name}" "95" }
      rows data.items { "${item.id}" "${item.name}" "${item.score}" }
      summary { "" "Total" "${total}" }
    }

    table y 120mm width 50% {
      columns equal 2
      row { "a"; "b" }
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Scores" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	var kinds []string
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if diff := cmp.Diff([]string{"meta", "resources", "page"}, kinds); diff != "" {
		t.Fatalf("section kinds mismatch (-want +got):\n%s", diff)
	}

	meta := doc.Sections[0].Meta.Block.Assignments()
	if got := meta["title"].Text(); got != "Quarterly scores" {
		t.Fatalf("expected title, got %q", got)
	}
	if diff := cmp.Diff([]string{"qa", "internal"}, meta["keywords"].Strings()); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}

	fonts := doc.Sections[1].Resources.Block.Commands("font")
	if len(fonts) != 1 || fonts[0].ArgString() != "Cell" {
		t.Fatalf("unexpected font declarations: %+v", fonts)
	}
	props := fonts[0].Block.Assignments()
	if props["family"].Text() != "Courier" || props["size"].Text() != "10pt" {
		t.Fatalf("unexpected font props: family %q size %q", props["family"].Text(), props["size"].Text())
	}

	page := doc.Sections[2].Page
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 3 || page.Spec.Params[2].Value != "15mm" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}

	tables := page.Block.Commands("table")
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	first := tables[0]
	if diff := cmp.Diff([]string{"font", "Cell", "width", "180mm"}, first.ArgValues()); diff != "" {
		t.Fatalf("table args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "1"}, first.Block.Commands("columns")[0].ArgValues()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ID", "Name", "Score"}, first.Block.Commands("header")[0].Block.Texts()); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	row := first.Block.Commands("row")[0].Block.Texts()
	if len(row) != 3 || !strings.Contains(row[1], "${user.name}") {
		t.Fatalf("row should keep interpolation literal, got %q", row)
	}
	rows := first.Block.Commands("rows")[0]
	if got := rows.ArgString(); got != "data.items" {
		t.Fatalf("rows source = %q, want data.items", got)
	}
	if got := len(rows.Block.Texts()); got != 3 {
		t.Fatalf("rows template has %d cells, want 3", got)
	}
	if got := first.Block.Commands("summary")[0].Block.Texts(); got[0] != "" || got[1] != "Total" {
		t.Fatalf("unexpected summary cells %q", got)
	}

	second := tables[1]
	if diff := cmp.Diff([]string{"y", "120mm", "width", "50%"}, second.ArgValues()); diff != "" {
		t.Fatalf("second table args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"equal", "2"}, second.Block.Commands("columns")[0].ArgValues()); diff != "" {
		t.Fatalf("equal columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, second.Block.Commands("row")[0].Block.Texts()); diff != "" {
		t.Fatalf("semicolon separated cells mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing version", `doc Scores { }`},
		{"unterminated block", "doc Scores v1 {\n page A4 {\n table {\n"},
		{"unknown section", `doc Scores v1 { footer { } }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dsl.ParseString(tt.input); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  dsl.Version
	}{
		{"v1", "v1"},
		{"v1.2", "v1.2"},
		{"1.2.0", "1.2.0"},
		{"v1.2.3-beta", "v1.2.3-beta"},
		{"1.0.0-rc.1+build.5", "1.0.0-rc.1+build.5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, err := dsl.ParseString("doc P " + tt.input + " {\n}")
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if doc.Version != tt.want {
				t.Fatalf("version = %q, want %q", doc.Version, tt.want)
			}
		})
	}

	// 以空白分隔的 token 不会被拼进版本号
	for _, input := range []string{"doc P v1 2 {\n}", "doc P .1 {\n}", "doc P v1. 2 {\n}"} {
		if _, err := dsl.ParseString(input); err == nil {
			t.Fatalf("%q: expected parse error", input)
		}
	}
}

func TestParseReader(t *testing.T) {
	doc, err := dsl.Parse(strings.NewReader("doc Empty v1 {\n}\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Empty" || len(doc.Sections) != 0 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestValueText(t *testing.T) {
	doc, err := dsl.ParseString(`doc D v1 {
  meta {
    subject: report.kind
    count: 3
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	meta := doc.Sections[0].Meta.Block.Assignments()
	if got := meta["subject"].Text(); got != "report.kind" {
		t.Fatalf("expression text = %q, want report.kind", got)
	}
	if got := meta["count"].Text(); got != "3" {
		t.Fatalf("number text = %q, want 3", got)
	}
	var nilValue *dsl.Value
	if nilValue.Text() != "" || nilValue.Strings() != nil {
		t.Fatalf("nil value should render empty")
	}
}
