package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/sketch"
)

// WritePNG encodes the canvas as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.canvas); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file at path.
func (s *Surface) SavePNG(path string) error {
	return writePNG(path, s.canvas)
}

// Screenshot writes the canvas to ScreenshotDir with a timestamped,
// sanitized file name and returns the path written.
func (s *Surface) Screenshot(label string) (string, error) {
	if err := os.MkdirAll(s.opts.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("raster: screenshot: mkdir %s: %w", s.opts.ScreenshotDir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.opts.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := writePNG(path, s.canvas); err != nil {
		return "", err
	}
	sketch.Logger().Debug("screenshot", slog.String("path", path))
	return path, nil
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
