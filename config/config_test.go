package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PehoejiKesi/LiansipChoa/fonts"
)

const sampleYAML = `
fonts:
  - family: Lesson One
    regular: fonts/LessonOne-Regular.ttf
  - family: Go
    regular: builtin:go-regular
    bold: builtin:go-bold
preview:
  dpi: 96
output:
  prefix: Liansip
logging:
  level: Info
  tracers:
    liansip.layout: Debug
`

func TestParseAppConfig(t *testing.T) {
	c, err := ParseAppConfig([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, c.Fonts, 2)
	require.Equal(t, "Lesson One", c.Fonts[0].Family)
	require.Equal(t, 96.0, c.Preview.DPI)
	require.Equal(t, "Liansip", c.Output.Prefix)
	require.Equal(t, ".", c.Output.Dir)
	require.Equal(t, "Debug", c.Logging.LevelFor("liansip.layout"))
	require.Equal(t, "Info", c.Logging.LevelFor("liansip.render"))
}

func TestDefaults(t *testing.T) {
	c, err := ParseAppConfig([]byte("{}"))
	require.NoError(t, err)
	require.Equal(t, 144.0, c.Preview.DPI)
	require.Equal(t, "POJ_LiansipChoa", c.Output.Prefix)
	require.Equal(t, "Error", c.Logging.Level)
	require.Equal(t, Default(), c)
}

func TestConfigErrors(t *testing.T) {
	cases := map[string]struct {
		yaml  string
		field string
		err   error
	}{
		"missing family":  {"fonts:\n  - regular: a.ttf\n", "fonts[0].family", ErrMissingRequiredField},
		"missing regular": {"fonts:\n  - family: A\n", "fonts[0].regular", ErrMissingRequiredField},
		"duplicate":       {"fonts:\n  - {family: A, regular: a.ttf}\n  - {family: A, regular: b.ttf}\n", "fonts[1].family", ErrInvalidValue},
		"bad level":       {"logging:\n  level: loud\n", "logging.level", ErrInvalidValue},
		"negative dpi":    {"preview:\n  dpi: -1\n", "preview.dpi", ErrInvalidValue},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAppConfig([]byte(tc.yaml))
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tc.field, ce.Field)
			require.True(t, errors.Is(err, tc.err))
		})
	}
	_, err := ParseAppConfig([]byte("fonts: ["))
	require.Error(t, err)
}

func TestLoadAndApply(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts", "LessonOne-Regular.ttf"), []byte("ttf"), 0o644))
	path := filepath.Join(dir, "liansip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	c, err := LoadAppConfig(path)
	require.NoError(t, err)

	reg := fonts.NewRegistry()
	require.NoError(t, c.Apply(reg))
	data, fallback := reg.Lookup("Lesson One", false)
	require.False(t, fallback)
	require.Equal(t, []byte("ttf"), data)
	require.Equal(t, []string{"Go", "Lesson One"}, reg.Families())
}

func TestApplyMissingFile(t *testing.T) {
	c, err := ParseAppConfig([]byte("fonts:\n  - {family: A, regular: nowhere.ttf}\n"))
	require.NoError(t, err)
	err = c.Apply(fonts.NewRegistry())
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "fonts[0].regular", ce.Field)
}
