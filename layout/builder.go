package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ByLCY/papyrus-table/binding"
	"github.com/ByLCY/papyrus-table/dsl"
)

// SupportedVersions 是 Build 接受的文档版本范围。
const SupportedVersions = "^1"

const defaultTableSpacing = 5.0

var ErrUnsupportedVersion = errors.New("文档版本不受支持")

// BuildOptions 控制文档到表格的转换。
type BuildOptions struct {
	Surface      Surface // 用于测量表格高度以确定后续表格位置
	Options      Options
	TableSpacing *float64 // 相邻表格的垂直间距（mm），nil 取默认值 5mm
	DefaultFont  Font    // 表格未指定字体时使用，零值取 DefaultFont()
}

// Margin 页边距（mm）。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DocumentMeta 文档元信息。
type DocumentMeta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Page 页面几何。
type Page struct {
	Size   string  `json:"size"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// ContentWidth 返回扣除左右边距后的宽度。
func (p Page) ContentWidth() float64 {
	return p.Width - p.Margin.Left - p.Margin.Right
}

// Document 是 Build 的产物：页面、元信息与定位好的表格。
// Results 与 Tables 一一对应，是 Build 时测得的布局。
type Document struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	Meta    DocumentMeta `json:"meta"`
	Page    Page         `json:"page"`
	Tables  []*Table     `json:"tables"`
	Results []*Result    `json:"-"`
}

// Build 根据 DSL AST 生成页面与表格。data 用于 ${} 插值与 rows 展开，可为 nil。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("layout: 缺少测量表面 Surface")
	}
	if err := checkVersion(doc.Version.String()); err != nil {
		return nil, err
	}

	fonts, err := collectFonts(doc)
	if err != nil {
		return nil, err
	}
	pageSection := firstPage(doc)
	if pageSection == nil {
		return nil, fmt.Errorf("文档中缺少 page 段落")
	}
	width, height, err := resolvePageSize(pageSection.Spec)
	if err != nil {
		return nil, err
	}

	out := &Document{
		Name:    doc.Name,
		Version: doc.Version.String(),
		Meta:    collectMeta(doc),
		Page: Page{
			Size:   strings.ToUpper(pageSection.Spec.Size),
			Width:  width,
			Height: height,
			Margin: resolveMargin(pageSection.Spec.Params),
		},
	}

	fb := &flowBuilder{
		page:    out.Page,
		fonts:   fonts,
		data:    data,
		opts:    opts,
		cursorY: out.Page.Margin.Top,
		spacing: defaultTableSpacing,
	}
	if opts.TableSpacing != nil {
		if *opts.TableSpacing < 0 {
			return nil, fmt.Errorf("表格间距不能为负数: %g", *opts.TableSpacing)
		}
		fb.spacing = *opts.TableSpacing
	}
	for _, st := range pageSection.Block.Statements {
		if st.Command == nil {
			return nil, fmt.Errorf("page 中只允许 table 指令")
		}
		if st.Command.Name != "table" {
			return nil, fmt.Errorf("%s: page 中不支持指令 %q", st.Command.Pos, st.Command.Name)
		}
		tbl, res, err := fb.table(st.Command)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个表格: %w", len(out.Tables)+1, err)
		}
		out.Tables = append(out.Tables, tbl)
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("无法解析文档版本 %q: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s（支持 %s）", ErrUnsupportedVersion, version, SupportedVersions)
	}
	return nil
}

// flowBuilder 自上而下依次放置表格。
type flowBuilder struct {
	page    Page
	fonts   map[string]Font
	data    any
	opts    BuildOptions
	cursorY float64
	spacing float64
}

func (fb *flowBuilder) table(cmd *dsl.Command) (*Table, *Result, error) {
	args, err := parseArgs(cmd.Args)
	if err != nil {
		return nil, nil, err
	}
	content := fb.page.ContentWidth()
	tbl := &Table{
		X:     fb.page.Margin.Left,
		Y:     fb.cursorY,
		Width: content,
		Font:  fb.defaultFont(),
	}
	for key, val := range args {
		switch key {
		case "x":
			tbl.X = fb.page.Margin.Left + ParseMM(val, content)
		case "y":
			tbl.Y = fb.page.Margin.Top + ParseMM(val, fb.page.Height-fb.page.Margin.Top-fb.page.Margin.Bottom)
		case "width":
			tbl.Width = ParseMM(val, content)
		case "font":
			f, ok := fb.fonts[val]
			if !ok {
				return nil, nil, fmt.Errorf("未定义的字体 %q", val)
			}
			tbl.Font = f
		default:
			return nil, nil, fmt.Errorf("table 不支持参数 %q", key)
		}
	}
	if tbl.Width <= 0 {
		return nil, nil, fmt.Errorf("表格宽度必须为正数")
	}

	if err := fb.tableBody(tbl, cmd.Block); err != nil {
		return nil, nil, err
	}

	res, err := tbl.Layout(fb.opts.Surface, fb.opts.Options)
	if err != nil {
		return nil, nil, err
	}
	tbl.Height = res.Height
	fb.opts.Options.debugf("表格位于 (%.2f, %.2f)，尺寸 %.2fx%.2f", tbl.X, tbl.Y, tbl.Width, tbl.Height)
	fb.cursorY = tbl.Y + tbl.Height + fb.spacing
	return tbl, res, nil
}

func (fb *flowBuilder) tableBody(tbl *Table, block *dsl.Block) error {
	if block == nil {
		return fmt.Errorf("table 缺少内容块")
	}
	haveColumns := false
	for _, st := range block.Statements {
		cmd := st.Command
		if cmd == nil {
			return fmt.Errorf("table 内只允许指令，发现 %s", describeStatement(st))
		}
		switch cmd.Name {
		case "columns":
			if haveColumns {
				return fmt.Errorf("%s: columns 重复声明", cmd.Pos)
			}
			haveColumns = true
			if err := applyColumns(tbl, cmd.ArgValues()); err != nil {
				return fmt.Errorf("%s: %w", cmd.Pos, err)
			}
		case "header":
			if tbl.Header != nil {
				return fmt.Errorf("%s: header 重复声明", cmd.Pos)
			}
			row := NewRow(binding.InterpolateAll(cmd.Block.Texts(), fb.data)...)
			tbl.Header = &row
		case "summary":
			if tbl.Summary != nil {
				return fmt.Errorf("%s: summary 重复声明", cmd.Pos)
			}
			row := NewRow(binding.InterpolateAll(cmd.Block.Texts(), fb.data)...)
			tbl.Summary = &row
		case "row":
			tbl.Rows = append(tbl.Rows, NewRow(binding.InterpolateAll(cmd.Block.Texts(), fb.data)...))
		case "rows":
			path := cmd.ArgString()
			items, ok := binding.Items(fb.data, path)
			if !ok {
				return fmt.Errorf("%s: 数据路径 %q 不存在或不是数组", cmd.Pos, path)
			}
			tmpl := cmd.Block.Texts()
			for _, item := range items {
				scope := binding.With(fb.data, "item", item)
				tbl.Rows = append(tbl.Rows, NewRow(binding.InterpolateAll(tmpl, scope)...))
			}
		default:
			return fmt.Errorf("%s: table 中不支持指令 %q", cmd.Pos, cmd.Name)
		}
	}
	if !haveColumns {
		// 未声明列时按首行单元格数等分
		n := firstRowWidth(tbl)
		if n == 0 {
			return fmt.Errorf("table 既没有 columns 也没有任何行")
		}
		tbl.EqualColumns = true
		tbl.Columns = n
	}
	return nil
}

func (fb *flowBuilder) defaultFont() Font {
	f := fb.opts.DefaultFont
	if f.Family == "" && f.Src == "" {
		f.Family = DefaultFont().Family
	}
	if f.Size <= 0 {
		f.Size = DefaultFont().Size
	}
	return f
}

func applyColumns(tbl *Table, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("columns 缺少参数")
	}
	if args[0] == "equal" {
		if len(args) != 2 {
			return fmt.Errorf("用法: columns equal <列数>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("列数 %q 必须为正整数", args[1])
		}
		tbl.EqualColumns = true
		tbl.Columns = n
		return nil
	}
	weights := make([]float64, 0, len(args))
	for _, a := range args {
		w, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("列权重 %q 不是数字", a)
		}
		weights = append(weights, w)
	}
	tbl.Weights = weights
	return nil
}

func firstRowWidth(tbl *Table) int {
	switch {
	case tbl.Header != nil:
		return len(tbl.Header.Cells)
	case len(tbl.Rows) > 0:
		return len(tbl.Rows[0].Cells)
	case tbl.Summary != nil:
		return len(tbl.Summary.Cells)
	}
	return 0
}

func describeStatement(st *dsl.Statement) string {
	switch {
	case st.Assignment != nil:
		return "赋值 " + st.Assignment.Key
	case st.Text != nil:
		return fmt.Sprintf("文本 %q", string(st.Text.Value))
	}
	return "未知语句"
}

func collectFonts(doc *dsl.Document) (map[string]Font, error) {
	fonts := map[string]Font{}
	for _, section := range doc.Sections {
		if section.Resources == nil {
			continue
		}
		for _, cmd := range section.Resources.Block.Commands("font") {
			if len(cmd.Args) == 0 {
				return nil, fmt.Errorf("%s: font 缺少名称", cmd.Pos)
			}
			name := cmd.Args[0].Value
			font := Font{Family: name, Size: DefaultFont().Size}
			for key, val := range cmd.Block.Assignments() {
				switch key {
				case "family":
					font.Family = val.Text()
				case "src":
					font.Src = val.Text()
				case "size":
					l, ok := ParseLengthStr(val.Text())
					if !ok || l.Unit == UnitPercent || l.Value <= 0 {
						return nil, fmt.Errorf("字体 %s 的字号 %q 无效", name, val.Text())
					}
					if l.Unit == UnitNone {
						l.Unit = UnitPT
					}
					font.Size = l.ToPT(0)
				}
			}
			fonts[name] = font
		}
	}
	return fonts, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{
		Creator: "Papyrus",
	}
	for _, section := range doc.Sections {
		if section.Meta == nil {
			continue
		}
		for key, val := range section.Meta.Block.Assignments() {
			switch strings.ToLower(key) {
			case "title":
				meta.Title = val.Text()
			case "author":
				meta.Author = val.Text()
			case "subject":
				meta.Subject = val.Text()
			case "creator":
				meta.Creator = val.Text()
			case "keywords":
				meta.Keywords = val.Strings()
			}
		}
	}
	return meta
}

func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}

	width := base[0]
	height := base[1]
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// resolveMargin 解析 margin 后的 1~4 个长度，语义同 CSS；默认四边 20mm。
func resolveMargin(params []*dsl.Lexeme) Margin {
	margin := Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}
	for i := 0; i < len(params); i++ {
		if params[i].Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			l, ok := ParseLengthStr(params[j].Value)
			if !ok {
				break
			}
			vals = append(vals, l.ToMM(0))
		}
		switch len(vals) {
		case 1:
			v := vals[0]
			margin = Margin{Top: v, Right: v, Bottom: v, Left: v}
		case 2:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
		case 4:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		}
	}
	return margin
}

func firstPage(doc *dsl.Document) *dsl.PageSection {
	for _, section := range doc.Sections {
		if section.Page != nil {
			return section.Page
		}
	}
	return nil
}

// parseArgs 将 key value 成对的参数转为 map。
func parseArgs(args []*dsl.Lexeme) (map[string]string, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("参数必须成对出现: %v", lexemeValues(args))
	}
	result := map[string]string{}
	for i := 0; i+1 < len(args); i += 2 {
		result[args[i].Value] = args[i+1].Value
	}
	return result, nil
}

func lexemeValues(args []*dsl.Lexeme) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, a.Value)
	}
	return out
}
