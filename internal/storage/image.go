package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
)

// RecipeImageDir is the directory, relative to the media root, holding recipe images.
const RecipeImageDir = "uploads/recipe"

var (
	// ErrInvalidImage is returned when the uploaded payload is not a decodable image.
	ErrInvalidImage = errors.New("upload a valid image: the file you uploaded was either not an image or a corrupted image")
	// ErrImageTooLarge is returned when the payload exceeds the configured size.
	ErrImageTooLarge = errors.New("image is too large")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStorage stores uploaded images on the local filesystem.
type ImageStorage struct {
	root     string
	urlPath  string
	maxBytes int64
	newID    func() string
}

// Opt configures an ImageStorage.
type Opt func(*ImageStorage)

// WithMaxBytes limits the accepted payload size.
func WithMaxBytes(n int64) Opt {
	return func(s *ImageStorage) {
		s.maxBytes = n
	}
}

// WithIDGenerator overrides the unique name generator.
func WithIDGenerator(fn func() string) Opt {
	return func(s *ImageStorage) {
		s.newID = fn
	}
}

// NewImageStorage creates storage rooted at root whose files are served under urlPath.
func NewImageStorage(root, urlPath string, opts ...Opt) *ImageStorage {
	s := &ImageStorage{
		root:     root,
		urlPath:  strings.TrimRight(urlPath, "/"),
		maxBytes: 10 << 20,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// maxExtLen bounds the extension kept from a client filename, dot included.
const maxExtLen = 10

// imageExt returns the lowercased extension of filename, or "" when it is
// too long or holds anything but ASCII letters and digits.
func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}

// RecipeImageFilePath returns the storage path for an uploaded recipe image:
// a fresh unique name with the original file's extension.
func (s *ImageStorage) RecipeImageFilePath(filename string) string {
	return path.Join(RecipeImageDir, s.newID()+imageExt(filename))
}

// SaveRecipeImage validates r as an image and writes it under a generated name.
// It returns the path relative to the media root.
func (s *ImageStorage) SaveRecipeImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	defaultExt, ok := allowedTypes[mtype.String()]
	if !ok {
		logger.FromContext(ctx).Warnw("rejected upload", "filename", filename, "mime", mtype.String())
		return "", ErrInvalidImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		logger.FromContext(ctx).Warnw("rejected upload", "filename", filename, "mime", mtype.String(), "error", err)
		return "", ErrInvalidImage
	}

	if imageExt(filename) == "" {
		filename += defaultExt
	}
	rel := s.RecipeImageFilePath(filename)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	logger.FromContext(ctx).Infow("image stored", "path", rel, "mime", mtype.String(), "size", len(data))
	return rel, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *ImageStorage) Remove(ctx context.Context, rel string) error {
	full := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Errorw("failed to remove image", "path", rel, "error", err)
		return err
	}
	return nil
}

// URL returns the public URL of a stored file.
func (s *ImageStorage) URL(rel string) string {
	return s.urlPath + "/" + strings.TrimLeft(rel, "/")
}

// Root returns the media root directory.
func (s *ImageStorage) Root() string {
	return s.root
}
