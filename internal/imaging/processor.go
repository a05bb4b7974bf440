// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging manages professor profile pictures: ingesting uploaded
// image files into the pictures directory and generating the default avatar.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/mozillazg/go-unidecode"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/profdir/profdir/internal/model"
)

// MaxPictureSize bounds the longer edge of a stored profile picture.
const MaxPictureSize = 512

// DefaultAvatarName is the filename of the generated placeholder image.
const DefaultAvatarName = "default_avatar.png"

// jpegQuality is used when re-encoding ingested pictures.
const jpegQuality = 90

// Processor stores processed profile pictures under a dedicated directory.
type Processor struct {
	picturesDir string
}

// NewProcessor creates a picture processor rooted at picturesDir.
func NewProcessor(picturesDir string) *Processor {
	return &Processor{picturesDir: picturesDir}
}

// Ingest reads the image at srcPath, corrects EXIF orientation, downscales
// it to fit MaxPictureSize (never upscaling), and stores it in the pictures
// directory under a name derived from the professor plus a Unix-timestamp
// suffix, so repeated uploads never collide or hit stale caches. The file is
// written to a temp name first and renamed into place. Returns the stored
// path.
func (p *Processor) Ingest(srcPath, professorName string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("reading picture: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding picture: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	if bounds.Dx() > MaxPictureSize || bounds.Dy() > MaxPictureSize {
		img = imaging.Fit(img, MaxPictureSize, MaxPictureSize, imaging.Lanczos)
	}

	// PNG stays PNG to preserve transparency; everything else (jpeg, gif,
	// webp) is stored as JPEG since pure Go cannot encode webp.
	ext := ".jpg"
	if format == "png" {
		ext = ".png"
	}

	encoded, err := encodeImage(img, ext)
	if err != nil {
		return "", fmt.Errorf("encoding picture: %w", err)
	}

	if err := os.MkdirAll(p.picturesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating pictures directory: %w", err)
	}

	name := fmt.Sprintf("%s_%d%s", slugifyName(professorName), time.Now().Unix(), ext)
	dest := filepath.Join(p.picturesDir, name)

	tmp := filepath.Join(p.picturesDir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return "", fmt.Errorf("writing temp picture: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("storing picture: %w", err)
	}

	return dest, nil
}

// EnsureDefaultAvatar generates the placeholder avatar once per installation
// and returns its path. An existing file is left as is.
func (p *Processor) EnsureDefaultAvatar() (string, error) {
	path := filepath.Join(p.picturesDir, DefaultAvatarName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(p.picturesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating pictures directory: %w", err)
	}

	img := defaultAvatarImage(256)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding default avatar: %w", err)
	}

	tmp := filepath.Join(p.picturesDir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing default avatar: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("storing default avatar: %w", err)
	}

	return path, nil
}

// Remove deletes a stored picture file. The sentinel value, the default
// avatar and already-missing files are ignored.
func (p *Processor) Remove(path string) error {
	if path == "" || path == model.NoPicture || filepath.Base(path) == DefaultAvatarName {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing picture: %w", err)
	}
	return nil
}

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// slugifyName produces a filesystem-safe ASCII stem from a professor name.
func slugifyName(name string) string {
	s := strings.ToLower(unidecode.Unidecode(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "professor"
	}
	return s
}

// defaultAvatarImage draws a flat-color placeholder with a lighter disc,
// the usual anonymous-profile look.
func defaultAvatarImage(size int) image.Image {
	bg := color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	fg := color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}

	img := imaging.New(size, size, bg)
	cx, cy := size/2, size*2/5
	r := size / 5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, fg)
			}
		}
	}
	return img
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	switch ext {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
