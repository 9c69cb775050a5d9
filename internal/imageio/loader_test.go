package imageio

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gusrasch/ventii/internal/domain"
)

func TestLoadEncodesRawBytes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flyer.jpg")
	raw := []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01}
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	image, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", image.MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), image.Data)
}

func TestLoadMissingFileIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaTypeDefaultsToPNG(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", MediaType("flyer.unknown"))
	assert.Equal(t, "image/webp", MediaType("flyer.WEBP"))
	assert.Equal(t, "image/gif", MediaType("/a/b/animated.gif"))
}

func TestSupportedExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, SupportedExtension(".PNG"))
	assert.True(t, SupportedExtension(".jpeg"))
	assert.False(t, SupportedExtension(".txt"))
	assert.False(t, SupportedExtension(""))
}
