package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PehoejiKesi/LiansipChoa/config"
	"github.com/PehoejiKesi/LiansipChoa/layout"
)

const worksheets = `
worksheet first {
  title: "Siá ${who}"
  line-height: 20mm
  text { "Góa chiok kah-ì siá Pe̍h-ōe-jī." }
}
worksheet second {
  mode: copying
  following: fill
  text { "A-pô tì bō-á." }
}
`

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sheets.liansip")
	require.NoError(t, os.WriteFile(path, []byte(worksheets), 0o644))
	return dir, path
}

func TestRunSingleSheet(t *testing.T) {
	dir, input := writeInput(t)
	cfg := config.Default()
	cfg.Output.Dir = dir

	written, err := run(options{
		input:   input,
		preview: filepath.Join(dir, "preview.png"),
		debug:   filepath.Join(dir, "debug", "layout.json"),
		data:    map[string]any{"who": "A-bêng"},
	}, cfg)
	require.NoError(t, err)

	pdfPath := filepath.Join(dir, "POJ_LiansipChoa_Siá A-bêng.pdf")
	require.Equal(t, []string{filepath.Join(dir, "debug", "layout.json"), pdfPath, filepath.Join(dir, "preview.png")}, written)

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	f, err := os.Open(filepath.Join(dir, "debug", "layout.json"))
	require.NoError(t, err)
	defer f.Close()
	l, err := layout.ReadJSON(f)
	require.NoError(t, err)
	require.NotEmpty(t, l.Pages)
	title, ok := l.Pages[0].Items[0].(layout.Title)
	require.True(t, ok)
	require.Equal(t, "Siá A-bêng", title.Text)
}

func TestRunAllSheets(t *testing.T) {
	dir, input := writeInput(t)
	out := filepath.Join(dir, "out")

	written, err := run(options{input: input, all: true, outDir: out}, config.Default())
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(out, "POJ_LiansipChoa_first.pdf"),
		filepath.Join(out, "POJ_LiansipChoa_first.png"),
		filepath.Join(out, "POJ_LiansipChoa_second.pdf"),
		filepath.Join(out, "POJ_LiansipChoa_second.png"),
	}, written)
	for _, path := range written {
		_, err := os.Stat(path)
		require.NoError(t, err)
	}
}

func TestRunErrors(t *testing.T) {
	dir, input := writeInput(t)

	_, err := run(options{input: input, sheet: "third", outDir: dir}, nil)
	require.ErrorContains(t, err, "third")

	_, err = run(options{input: input, all: true, output: filepath.Join(dir, "x.pdf")}, nil)
	require.Error(t, err)

	_, err = run(options{input: filepath.Join(dir, "missing.liansip")}, nil)
	require.Error(t, err)
}

func TestSetupTracing(t *testing.T) {
	require.NoError(t, setupTracing(config.Default().Logging, "Info"))
}
