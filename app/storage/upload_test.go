package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestPutUpload(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	// Act
	first, err := PutUpload(ctx, s, "category", fileHeader(t, "photo.jpeg", pngBytes))
	require.NoError(t, err)
	second, err := PutUpload(ctx, s, "category", fileHeader(t, "photo.jpeg", pngBytes))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, ".png", path.Ext(first))
	assert.NotEqual(t, first, second)
	assert.False(t, strings.Contains(first, "/"))

	ok, err := s.Exists(ctx, Key("category", first))
	require.NoError(t, err)
	assert.True(t, ok)
}
