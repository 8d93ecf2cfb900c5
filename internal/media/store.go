// Package media stores uploaded blobs on disk and hands the core an opaque
// reference. The core never inspects file bytes.
package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"harnect/internal/middleware"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // register WebP decoder
)

const thumbnailMaxSize = 256

var allowedExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
	"mp4": {}, "webm": {}, "ogg": {}, "avi": {},
}

var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
}

// Store is a disk-backed blob store for uploaded media.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir string, maxUploadMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		maxBytes: int64(maxUploadMB) * 1024 * 1024,
	}, nil
}

// Dir returns the directory blobs are stored under, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// ValidateUpload checks the original filename and declared content type
// against the allow-lists. Returns the lowercase extension on success.
func ValidateUpload(filename, contentType string) (string, error) {
	dot := strings.LastIndexByte(filename, '.')
	if dot < 0 || dot == len(filename)-1 {
		return "", fmt.Errorf("file has no extension")
	}
	ext := strings.ToLower(filename[dot+1:])
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("file extension %q not allowed", ext)
	}

	ct := strings.ToLower(contentType)
	if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "video/") {
		return "", fmt.Errorf("unexpected content type %q", contentType)
	}
	return ext, nil
}

// Save writes the upload under a collision-resistant name and returns the
// stable reference. Image uploads also get a webp thumbnail next to the
// original; thumbnail failures are logged, never fatal.
func (s *Store) Save(filename, contentType string, r io.Reader) (string, error) {
	ext, err := ValidateUpload(filename, contentType)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("upload exceeds %d MB limit", s.maxBytes/(1024*1024))
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}

	ref := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}

	if _, isImage := imageExtensions[ext]; isImage {
		if err := s.writeThumbnail(ref, data); err != nil {
			middleware.Logger.Warn("thumbnail generation failed",
				slog.String("ref", ref),
				slog.String("error", err.Error()),
			)
		}
	}

	return ref, nil
}

// Remove deletes the blob and its thumbnail if present. Callers treat
// removal as best-effort; a missing blob is not an error.
func (s *Store) Remove(ref string) error {
	// Refs are generated by Save; reject anything path-like.
	if ref == "" || ref != filepath.Base(ref) {
		return fmt.Errorf("invalid media ref %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	_ = os.Remove(filepath.Join(s.dir, thumbnailRef(ref)))
	return nil
}

func thumbnailRef(ref string) string {
	return strings.TrimSuffix(ref, filepath.Ext(ref)) + ".thumb.webp"
}

func (s *Store) writeThumbnail(ref string, data []byte) error {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > h {
		h = h * thumbnailMaxSize / w
		w = thumbnailMaxSize
	} else {
		w = w * thumbnailMaxSize / h
		h = thumbnailMaxSize
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 70}); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, thumbnailRef(ref)), buf.Bytes(), 0o644)
}
