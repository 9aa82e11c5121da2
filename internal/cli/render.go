package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/papyrus-table/layout"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string    // output path; "-" writes to stdout
	format string    // pdf, svg or txt; empty uses the config value
	data   string    // inline JSON or path to a JSON file
	config string    // TOML config path
	debug  string    // layout debug JSON path
	watch  bool      // re-render when inputs change
	stdout io.Writer // destination for "-o -"
}

func newRenderCmd() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a table document to PDF, SVG or text",
		Long: `Render lays out every table of a .papyrus document and writes the page.

Output defaults to the input path with the extension of the chosen format.
With --watch the document, data and config files are watched and re-rendered on change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stdout = cmd.OutOrStdout()
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf (default), svg, txt")
	cmd.Flags().StringVar(&opts.data, "data", "", "JSON data bound to ${} placeholders (inline or file path)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write layout debug JSON to this path")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when inputs change")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	cfg, err := loadConfig(opts.config, opts.format)
	if err != nil {
		return err
	}
	p := &pipeline{input: input, dataArg: opts.data, cfg: cfg, logger: loggerFromContext(ctx)}

	if err := renderOnce(p, outputPath(opts.output, input, cfg.Output.Format), opts); err != nil {
		if !opts.watch {
			return err
		}
		p.logger.Error("渲染失败", "err", err)
	}
	if !opts.watch {
		return nil
	}

	watched := []string{input}
	if opts.config != "" {
		watched = append(watched, opts.config)
	}
	if isDataFile(opts.data) {
		watched = append(watched, opts.data)
	}
	p.logger.Info("监听文件变化", "files", strings.Join(watched, ", "))
	return watchFiles(ctx, watched, p.logger, func() error { return rerender(p, opts) })
}

// rerender 重新读取配置后再渲染；未指定 -o 时输出路径跟随 output.format 变化。
func rerender(p *pipeline, opts *renderOpts) error {
	cfg, err := loadConfig(opts.config, opts.format)
	if err != nil {
		return err
	}
	p.cfg = cfg
	return renderOnce(p, outputPath(opts.output, p.input, cfg.Output.Format), opts)
}

func renderOnce(p *pipeline, out string, opts *renderOpts) error {
	prog := newProgress(p.logger)
	laid, err := p.run()
	if err != nil {
		return err
	}

	if opts.debug != "" {
		if err := writeDebug(laid.results, opts.debug); err != nil {
			return err
		}
	}

	data, err := laid.surface.Render()
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if out == "-" {
		w := opts.stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	prog.done(fmt.Sprintf("已生成 %s（%d 个表格）", out, len(laid.results)))
	return nil
}

func writeDebug(results []*layout.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(results, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// outputPath returns output, or input with its extension replaced by format.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}

func isDataFile(arg string) bool {
	arg = strings.TrimSpace(arg)
	return arg != "" && !strings.HasPrefix(arg, "{") && !strings.HasPrefix(arg, "[")
}
