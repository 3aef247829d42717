package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/PehoejiKesi/LiansipChoa/config"
	"github.com/PehoejiKesi/LiansipChoa/dsl"
	"github.com/PehoejiKesi/LiansipChoa/fonts"
	"github.com/PehoejiKesi/LiansipChoa/layout"
	canvasrenderer "github.com/PehoejiKesi/LiansipChoa/renderer/canvas"
)

// traceKeys 列出各包使用的追踪键。
var traceKeys = []string{"liansip.layout", "liansip.fonts", "liansip.render"}

// options 汇总命令行参数。
type options struct {
	input   string
	sheet   string
	output  string
	outDir  string
	preview string
	debug   string
	all     bool
	data    any
}

func main() {
	initDisplay()

	input := flag.String("in", "examples/presets.liansip", "练习纸文件路径")
	sheet := flag.String("sheet", "", "要生成的工作表名称（默认第一个）")
	output := flag.String("out", "", "PDF 输出路径（默认按标题命名）")
	outDir := flag.String("outdir", "", "输出目录（默认取配置 output.dir）")
	preview := flag.String("preview", "", "PNG 预览输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到标题与正文的 JSON 数据")
	cfgPath := flag.String("config", "", "YAML 配置文件路径")
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	all := flag.Bool("all", false, "生成文件中的全部工作表（PDF 与 PNG 预览）")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.LoadAppConfig(*cfgPath); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
	}
	if err := setupTracing(cfg.Logging, *tlevel); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	opts := options{
		input:   *input,
		sheet:   *sheet,
		output:  *output,
		outDir:  *outDir,
		preview: *preview,
		debug:   *debug,
		all:     *all,
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &opts.data); err != nil {
			pterm.Error.Printfln("解析 data JSON 失败: %v", err)
			os.Exit(2)
		}
	}

	written, err := run(opts, cfg)
	if err != nil {
		pterm.Error.Printfln("生成练习纸失败: %v", err)
		os.Exit(3)
	}
	for _, path := range written {
		pterm.Success.Printfln("已生成 %s", path)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setupTracing 把 schuko 追踪接到 Go 标准日志；flagLevel 非空时覆盖配置中的级别。
func setupTracing(logging config.LoggingConfig, flagLevel string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		level := logging.LevelFor(key)
		if flagLevel != "" {
			level = flagLevel
		}
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("配置追踪失败: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// run 串联解析、布局与渲染，返回写出的文件路径。
func run(opts options, cfg *config.AppConfig) ([]string, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	reg := fonts.NewRegistry()
	if err := cfg.Apply(reg); err != nil {
		return nil, err
	}
	r := canvasrenderer.New(reg)

	file, err := loadWorksheets(opts.input)
	if err != nil {
		return nil, err
	}
	sheets, err := selectSheets(file, opts)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, ws := range sheets {
		files, err := renderSheet(ws, opts, cfg, r)
		written = append(written, files...)
		if err != nil {
			return written, fmt.Errorf("工作表 %s: %w", ws.Name, err)
		}
	}
	return written, nil
}

func loadWorksheets(path string) (*dsl.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开练习纸文件 %s: %w", path, err)
	}
	defer f.Close()

	file, err := dsl.ParseNamed(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("解析练习纸文件失败: %w", err)
	}
	if len(file.Worksheets) == 0 {
		return nil, fmt.Errorf("%s 中没有工作表", path)
	}
	return file, nil
}

func selectSheets(file *dsl.File, opts options) ([]*dsl.Worksheet, error) {
	if opts.all {
		if opts.output != "" || opts.preview != "" {
			return nil, errors.New("-all 不能与 -out 或 -preview 同时使用")
		}
		return file.Worksheets, nil
	}
	if opts.sheet == "" {
		return file.Worksheets[:1], nil
	}
	ws := file.Find(opts.sheet)
	if ws == nil {
		return nil, fmt.Errorf("找不到工作表 %q（可选: %s）", opts.sheet, strings.Join(file.Names(), ", "))
	}
	return []*dsl.Worksheet{ws}, nil
}

// renderSheet 生成一张工作表的 PDF，以及按需的 PNG 预览与调试 JSON。
// 批量模式下文件以工作表名称命名并总是附带预览。
func renderSheet(ws *dsl.Worksheet, opts options, cfg *config.AppConfig, r *canvasrenderer.Renderer) ([]string, error) {
	settings, err := ws.Settings(opts.data)
	if err != nil {
		return nil, err
	}
	l, err := layout.Generate(settings, r)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	dir := opts.outDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	pdfPath, previewPath, debugPath := opts.output, opts.preview, opts.debug
	if opts.all {
		pdfPath = filepath.Join(dir, canvasrenderer.FileName(cfg.Output.Prefix, ws.Name, ".pdf"))
		previewPath = filepath.Join(dir, canvasrenderer.FileName(cfg.Output.Prefix, ws.Name, ".png"))
		if debugPath != "" {
			debugPath = filepath.Join(dir, canvasrenderer.FileName(cfg.Output.Prefix, ws.Name, ".json"))
		}
	} else if pdfPath == "" {
		pdfPath = filepath.Join(dir, canvasrenderer.FileName(cfg.Output.Prefix, settings.Title, ".pdf"))
	}

	var written []string
	if debugPath != "" {
		if err := writeDebug(l, debugPath); err != nil {
			return written, err
		}
		written = append(written, debugPath)
	}

	doc := r.PDF(canvasrenderer.DocumentInfo{Subject: ws.Name, Creator: cfg.Output.Creator})
	pdfBytes, err := doc.Render(l)
	if err != nil {
		return written, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := writeFile(pdfPath, pdfBytes); err != nil {
		return written, err
	}
	written = append(written, pdfPath)

	if previewPath != "" {
		pngBytes, err := r.PNG(cfg.Preview.DPI).Render(l)
		if err != nil {
			return written, fmt.Errorf("渲染预览失败: %w", err)
		}
		if err := writeFile(previewPath, pngBytes); err != nil {
			return written, err
		}
		written = append(written, previewPath)
	}
	return written, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

func writeDebug(l *layout.Layout, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(l, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
