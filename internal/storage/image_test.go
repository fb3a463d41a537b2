package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestRecipeImageFilePath(t *testing.T) {
	s := NewImageStorage(t.TempDir(), "/media", WithIDGenerator(func() string { return "test-uuid" }))

	assert.Equal(t, "uploads/recipe/test-uuid.jpg", s.RecipeImageFilePath("myimage.jpg"))
	assert.Equal(t, "uploads/recipe/test-uuid.png", s.RecipeImageFilePath("../../etc/Photo.PNG"))
	assert.Equal(t, "uploads/recipe/test-uuid", s.RecipeImageFilePath("noext"))
	assert.Equal(t, "uploads/recipe/test-uuid", s.RecipeImageFilePath("a."+strings.Repeat("x", 300)))
	assert.Equal(t, "uploads/recipe/test-uuid", s.RecipeImageFilePath("a.j p/g"))
	assert.Equal(t, "uploads/recipe/test-uuid", s.RecipeImageFilePath("trailing."))
}

func TestSaveRecipeImage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		data     func(t *testing.T) []byte
		wantPath string
		wantErr  error
	}{
		{
			name:     "jpeg",
			filename: "dinner.jpg",
			data:     sampleJPEG,
			wantPath: "uploads/recipe/fixed.jpg",
		},
		{
			name:     "png without extension",
			filename: "upload",
			data:     samplePNG,
			wantPath: "uploads/recipe/fixed.png",
		},
		{
			name:     "oversized extension falls back to sniffed type",
			filename: "photo." + strings.Repeat("x", 300),
			data:     sampleJPEG,
			wantPath: "uploads/recipe/fixed.jpg",
		},
		{
			name:     "not an image",
			filename: "image.jpg",
			data:     func(t *testing.T) []byte { return []byte("noimage") },
			wantErr:  ErrInvalidImage,
		},
		{
			name:     "truncated jpeg",
			filename: "broken.jpg",
			data:     func(t *testing.T) []byte { return sampleJPEG(t)[:4] },
			wantErr:  ErrInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			s := NewImageStorage(root, "/media/", WithIDGenerator(func() string { return "fixed" }))

			rel, err := s.SaveRecipeImage(ctx, tt.filename, bytes.NewReader(tt.data(t)))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, rel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, rel)
			assert.FileExists(t, filepath.Join(root, filepath.FromSlash(rel)))
			assert.Equal(t, "/media/"+tt.wantPath, s.URL(rel))
		})
	}
}

func TestSaveRecipeImage_TooLarge(t *testing.T) {
	s := NewImageStorage(t.TempDir(), "/media", WithMaxBytes(16))

	_, err := s.SaveRecipeImage(context.Background(), "big.jpg", strings.NewReader(strings.Repeat("x", 64)))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewImageStorage(root, "/media")

	rel, err := s.SaveRecipeImage(ctx, "a.jpg", bytes.NewReader(sampleJPEG(t)))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(ctx, rel), "removing a missing file is not an error")
}
