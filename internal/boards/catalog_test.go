package boards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.True(t, c.Has("uno"))
	assert.True(t, c.Has("esp32"))
	assert.False(t, c.Has("zx-spectrum"))

	b, ok := c.Lookup("esp32")
	require.True(t, ok)
	assert.Equal(t, 115200, b.BaudRate)

	uno, ok := c.Lookup("uno")
	require.True(t, ok)
	assert.Equal(t, 9600, uno.BaudRate)
	assert.NotEmpty(t, c.All())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.Has("uno"))
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boards.yaml")
	content := `
boards:
  - id: uno
    label: Arduino Uno
    mcu: atmega328p
    baud_rate: 9600
  - id: custom-devboard
    label: Custom Devboard
    mcu: rp2040
    baud_rate: 230400
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	b, ok := c.Lookup("custom-devboard")
	require.True(t, ok)
	assert.Equal(t, 230400, b.BaudRate)
	assert.Len(t, c.All(), 2)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("no boards", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("boards: []\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("board without id", func(t *testing.T) {
		path := filepath.Join(dir, "noid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("boards:\n  - label: Mystery\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
