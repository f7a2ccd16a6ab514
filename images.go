package quill

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/tailtq/quill/internal/logger"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	variantSuffix = ".web.jpg"
)

// ResizeImage decodes an image from src, downscales it to maxImageWidth
// when wider, and encodes it as JPEG. Returns the encoded bytes and the
// final dimensions.
func ResizeImage(src io.Reader) ([]byte, int, int, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

// ProcessAssets walks dir and writes a web-sized JPEG variant next to
// every image asset, preserving the originals. Variants that are already
// newer than their source are skipped. Returns the number of variants
// written.
func ProcessAssets(dir string) (int, error) {
	written := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImageFile(d.Name()) || strings.HasSuffix(d.Name(), variantSuffix) {
			return nil
		}
		out := variantPath(path)
		if fresh, err := isFresh(out, path); err == nil && fresh {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		encoded, w, h, err := ResizeImage(f)
		f.Close()
		if err != nil {
			// Not every .png in an asset tree decodes; leave it alone.
			logger.Error("skipping asset", "path", path, "error", err)
			return nil
		}
		if err := os.WriteFile(out, encoded, 0o644); err != nil {
			return err
		}
		logger.Info("asset variant written", "path", out, "width", w, "height", h)
		written++
		return nil
	})
	return written, err
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func variantPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + variantSuffix
}

func isFresh(variant, source string) (bool, error) {
	vi, err := os.Stat(variant)
	if err != nil {
		return false, err
	}
	si, err := os.Stat(source)
	if err != nil {
		return false, err
	}
	return vi.ModTime().After(si.ModTime()), nil
}
