package utils

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBase64Image(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("fake image bytes")
	data := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	path, err := SaveBase64Image(data, dir)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, saved)
}

func TestSaveBase64ImagePassthrough(t *testing.T) {
	// Уже сохранённый путь возвращается без изменений
	path, err := SaveBase64Image("media/recipes/existing.png", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "media/recipes/existing.png", path)
}

func TestSaveBase64ImageMalformed(t *testing.T) {
	_, err := SaveBase64Image("data:image/png;base64", t.TempDir())
	assert.Error(t, err)

	_, err = SaveBase64Image("data:image/png;base64,%%%", t.TempDir())
	assert.Error(t, err)
}
