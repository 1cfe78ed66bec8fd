package sketch

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	// Registered decoders for FileLoader.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageLoader resolves an image source into a decoded bitmap. done must be
// called exactly once, on the goroutine that owns the scene graph. Loaders
// may call it before LoadImage returns.
type ImageLoader interface {
	LoadImage(source string, done func(image.Image, error))
}

// FileLoader loads images synchronously from the local filesystem. PNG,
// JPEG, GIF, BMP and WebP are supported.
type FileLoader struct{}

// LoadImage implements ImageLoader.
func (FileLoader) LoadImage(source string, done func(image.Image, error)) {
	done(DecodeFile(source))
}

// DecodeFile opens and decodes an image file.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sketch: open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sketch: decode image %s: %w", path, err)
	}
	return img, nil
}

// Image displays a bitmap scaled into its frame. Until the bitmap has loaded
// the frame has the size given by SetSize, or zero.
type Image struct {
	object
	box
	source  string
	bitmap  image.Image
	loaded  bool
	sized   bool
	loadErr error

	onLoad  []func()
	onError []func(error)
}

// NewImage creates an image at (x, y) and starts loading source through
// loader. A nil loader selects FileLoader.
func NewImage(loader ImageLoader, source string, x, y float64) (*Image, error) {
	if source == "" {
		return nil, fmt.Errorf("sketch: new image: empty source: %w", ErrInvalidGeometry)
	}
	if !finite(x, y) {
		return nil, fmt.Errorf("sketch: new image (%v, %v): %w", x, y, ErrInvalidGeometry)
	}
	if loader == nil {
		loader = FileLoader{}
	}
	img := &Image{source: source}
	img.init(img, img, x, y)
	loader.LoadImage(source, img.complete)
	return img, nil
}

// NewImageFromPixels creates a loaded image from rows of 0xAARRGGBB pixels.
// Every row must have the same length.
func NewImageFromPixels(pixels [][]uint32, x, y float64) (*Image, error) {
	if !finite(x, y) {
		return nil, fmt.Errorf("sketch: new image (%v, %v): %w", x, y, ErrInvalidGeometry)
	}
	h := len(pixels)
	w := 0
	if h > 0 {
		w = len(pixels[0])
	}
	bitmap := image.NewNRGBA(image.Rect(0, 0, w, h))
	for row, line := range pixels {
		if len(line) != w {
			return nil, fmt.Errorf("sketch: new image: row %d has %d pixels, want %d: %w", row, len(line), w, ErrInvalidGeometry)
		}
		for col, p := range line {
			a, r, g, b := UnpackPixel(p)
			bitmap.SetNRGBA(col, row, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	img := &Image{source: "pixels"}
	img.init(img, img, x, y)
	img.complete(bitmap, nil)
	return img, nil
}

func (img *Image) complete(bitmap image.Image, err error) {
	if err != nil {
		img.loadErr = err
		Logger().Warn("image load failed", slog.String("source", img.source), slog.Any("error", err))
		for _, fn := range img.onError {
			fn(err)
		}
		return
	}
	img.bitmap = bitmap
	img.loaded = true
	if !img.sized {
		b := bitmap.Bounds()
		img.width = float64(b.Dx())
		img.height = float64(b.Dy())
	}
	img.changed()
	for _, fn := range img.onLoad {
		fn()
	}
}

// Source returns the source identifier the image was created from.
func (img *Image) Source() string { return img.source }

// Loaded reports whether the bitmap is available.
func (img *Image) Loaded() bool { return img.loaded }

// Bitmap returns the decoded bitmap, or nil before it has loaded.
func (img *Image) Bitmap() image.Image { return img.bitmap }

// OnLoad registers fn to run when the bitmap finishes loading. If it has
// already loaded fn runs immediately.
func (img *Image) OnLoad(fn func()) {
	if img.loaded {
		fn()
		return
	}
	img.onLoad = append(img.onLoad, fn)
}

// OnError registers fn to run when loading fails. If it has already failed
// fn runs immediately.
func (img *Image) OnError(fn func(error)) {
	if img.loadErr != nil {
		fn(img.loadErr)
		return
	}
	img.onError = append(img.onError, fn)
}

// SetSize scales the image to the given size.
func (img *Image) SetSize(width, height float64) error {
	return img.SetBounds(img.x, img.y, width, height)
}

// SetBounds moves the image and scales it to the given size.
func (img *Image) SetBounds(x, y, width, height float64) error {
	if err := validateBox("image set bounds", x, y, width, height); err != nil {
		return err
	}
	img.width = width
	img.height = height
	img.x = x
	img.y = y
	img.sized = true
	img.changed()
	return nil
}

// PixelArray returns the bitmap at its natural size as rows of 0xAARRGGBB
// pixels, or nil before it has loaded.
func (img *Image) PixelArray() [][]uint32 {
	if !img.loaded {
		return nil
	}
	b := img.bitmap.Bounds()
	rows := make([][]uint32, b.Dy())
	for y := range rows {
		row := make([]uint32, b.Dx())
		for x := range row {
			c := color.NRGBAModel.Convert(img.bitmap.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = PackPixel(c.A, c.R, c.G, c.B)
		}
		rows[y] = row
	}
	return rows
}

func (img *Image) extentUnder(m Transform) Rectangle {
	return m.TransformRect(img.frame())
}

func (img *Image) containsLocal(x, y float64) bool {
	return img.frame().Contains(x, y)
}

func (img *Image) appendCommands(dst []DrawCommand, world Transform) []DrawCommand {
	if !img.loaded {
		return dst
	}
	cmd := img.command(KindImage, world)
	cmd.Frame = img.frame()
	cmd.Image = img.bitmap
	return append(dst, cmd)
}

// --- Pixel helpers ---

// PackPixel packs components into a 0xAARRGGBB pixel.
func PackPixel(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// CreateRGBPixel returns an opaque pixel with the given components.
func CreateRGBPixel(r, g, b uint8) uint32 {
	return PackPixel(0xff, r, g, b)
}

// UnpackPixel splits a 0xAARRGGBB pixel into its components.
func UnpackPixel(p uint32) (a, r, g, b uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// PixelAlpha returns the alpha component of p.
func PixelAlpha(p uint32) uint8 { return uint8(p >> 24) }

// PixelRed returns the red component of p.
func PixelRed(p uint32) uint8 { return uint8(p >> 16) }

// PixelGreen returns the green component of p.
func PixelGreen(p uint32) uint8 { return uint8(p >> 8) }

// PixelBlue returns the blue component of p.
func PixelBlue(p uint32) uint8 { return uint8(p) }
