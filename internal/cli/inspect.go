package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ByLCY/papyrus-table/layout"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type inspectOpts struct {
	format string
	data   string
	config string
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOpts{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print column edges and row geometry of every table",
		Long: `Inspect lays out a .papyrus document without writing output and prints,
for each table, its column edges and the position, height and fragment count of every row.
Coordinates are in millimetres; the metrics come from the surface selected by --format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.config, opts.format)
			if err != nil {
				return err
			}
			p := &pipeline{input: args[0], dataArg: opts.data, cfg: cfg, logger: loggerFromContext(cmd.Context())}
			laid, err := p.run()
			if err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), laid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "surface used for measuring: pdf (default), svg, txt")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON data bound to ${} placeholders (inline or file path)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")

	return cmd
}

func printInspection(w io.Writer, laid *laidOut) {
	page := laid.doc.Page
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s %s  %s %s×%s mm", laid.doc.Name, laid.doc.Version, page.Size, num(page.Width), num(page.Height))))
	for i, res := range laid.results {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("表格 %d  x=%s y=%s 宽 %s 高 %s", i+1, num(res.X), num(res.Y), num(res.Width), num(res.Height))))
		fmt.Fprintln(w, columnsTable(res.Columns))
		fmt.Fprintln(w, rowsTable(res))
	}
}

func columnsTable(cols layout.ColumnEdges) string {
	rows := make([][]string, 0, cols.Count())
	for i := 0; i < cols.Count(); i++ {
		rows = append(rows, []string{strconv.Itoa(i + 1), num(cols.LeftOf(i)), num(cols.Edges[i]), num(cols.WidthOf(i))})
	}
	return newTable("列", "左", "右", "宽").Rows(rows...).Render()
}

func rowsTable(res *layout.Result) string {
	var rows [][]string
	for _, r := range res.AllRows() {
		frags := make([]string, len(r.Fragments))
		for i, f := range r.Fragments {
			frags[i] = strconv.Itoa(len(f))
		}
		rows = append(rows, []string{string(r.Kind), num(r.Y), num(r.Height), strings.Join(frags, " ")})
	}
	return newTable("行", "y", "高", "片段数").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
