package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), v)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lpmview.toml")
	data := `
debug_logging = true

[display]
scale = 2
inverted = true

[keymap]
layers = ["QWERTY", "NAV"]

[features]
ble = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.True(t, v.DebugLogging)
	assert.Equal(t, 2, v.Display.Scale)
	assert.True(t, v.Display.Inverted)
	assert.Equal(t, 160, v.Display.Width)
	assert.Equal(t, []string{"QWERTY", "NAV"}, v.Keymap.Layers)
	assert.False(t, v.Features.BLE)
	assert.True(t, v.Features.USB)
	assert.Equal(t, MaxProfiles, v.BLE.Profiles)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"profiles":  "[ble]\nprofiles = 6\n",
		"no layers": "[keymap]\nlayers = []\n",
		"scale":     "[display]\nscale = 9\n",
		"battery":   "[battery]\nlevel = 101\n",
		"unknown":   "[display]\nrotation = 90\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			v := Default()
			assert.Error(t, Decode(strings.NewReader(data), &v))
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	v := Default()
	v.BLE.Profiles = 0
	assert.ErrorIs(t, v.Validate(), ErrInvalid)
}

func TestEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.Display.Inverted = true
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))

	got := Default()
	require.NoError(t, Decode(&buf, &got))
	assert.Equal(t, want, got)
}
