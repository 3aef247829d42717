package fonts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestRegistryLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "liansip.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	regular := []byte("regular")
	require.NoError(t, reg.Register("Iansui", false, regular))

	data, fallback := reg.Lookup("Iansui", false)
	require.False(t, fallback)
	require.Equal(t, regular, data)

	data, fallback = reg.Lookup("Iansui", true)
	require.False(t, fallback, "bold should fall back to the regular face of the same family")
	require.Equal(t, regular, data)

	data, fallback = reg.Lookup("Lesson One", true)
	require.True(t, fallback)
	require.True(t, bytes.Equal(gobold.TTF, data))

	data, _ = reg.Lookup("", false)
	require.True(t, bytes.Equal(goregular.TTF, data))
}

func TestRegisterRejectsEmpty(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("Iansui", false, nil)
	require.True(t, errors.Is(err, ErrEmptyFont))
}

func TestRegisterFile(t *testing.T) {
	reg := NewRegistry()
	path := filepath.Join(t.TempDir(), "face.ttf")
	require.NoError(t, os.WriteFile(path, []byte("ttf"), 0o644))

	require.NoError(t, reg.RegisterFile("Open Huninn", false, path))
	require.NoError(t, reg.RegisterFile("Go", true, "builtin:go-bold"))
	require.Error(t, reg.RegisterFile("Missing", false, filepath.Join(t.TempDir(), "none.ttf")))
	require.Error(t, reg.RegisterFile("Missing", false, "builtin:comic"))
	require.Equal(t, []string{"Go", "Open Huninn"}, reg.Families())
}

func TestCorrection(t *testing.T) {
	require.Equal(t, 1.27, Correction("Lesson One", Document))
	require.Equal(t, 1.36, Correction("Chiayi City", Document))
	require.Equal(t, DefaultCorrection, Correction("Noto Sans", Document))
	require.Equal(t, 1.0, Correction("Lesson One", Preview))
	require.InDelta(t, 10*0.85*1.12, TopFromBaseline("Iansui", 10, Document), 1e-12)
}
