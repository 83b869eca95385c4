package imageio

import (
	"encoding/binary"
	"errors"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Loader turns an image file into a sample grid
type Loader interface {
	Load(path string) (*Grid, error)
}

// FileLoader decodes images from the local filesystem.
// TIFF is registered by importing golang.org/x/image/tiff; PNG is also accepted.
type FileLoader struct{}

// NewFileLoader creates a new filesystem image loader
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the image at path. Every failure is a *models.DecodeError.
func (l *FileLoader) Load(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &models.DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &models.DecodeError{Path: path, Err: err}
	}

	grid, err := FromImage(img)
	if err != nil {
		return nil, &models.DecodeError{Path: path, Err: err}
	}
	return grid, nil
}

// errEmptyImage is returned for images with no pixels
var errEmptyImage = errors.New("image has no pixels")

// FromImage extracts raw samples from a decoded image.
// Gray images keep a single channel; everything else is read as RGBA.
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errEmptyImage
	}

	switch m := img.(type) {
	case *image.Gray:
		g := newGrid(w, h, 1)
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+w]
			for x, v := range row {
				g.Samples[y*w+x] = float64(v)
			}
		}
		return g, nil

	case *image.Gray16:
		g := newGrid(w, h, 1)
		for y := 0; y < h; y++ {
			row := m.Pix[y*m.Stride : y*m.Stride+2*w]
			for x := 0; x < w; x++ {
				g.Samples[y*w+x] = float64(binary.BigEndian.Uint16(row[2*x:]))
			}
		}
		return g, nil

	case *image.RGBA:
		return fromPix8(m.Pix, m.Stride, w, h), nil

	case *image.NRGBA:
		return fromPix8(m.Pix, m.Stride, w, h), nil
	}

	// Paletted, CMYK and 16-bit color images go through the generic color model
	g := newGrid(w, h, 4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, gr, bl, a := img.At(x, y).RGBA()
			g.Samples[i] = float64(r)
			g.Samples[i+1] = float64(gr)
			g.Samples[i+2] = float64(bl)
			g.Samples[i+3] = float64(a)
			i += 4
		}
	}
	return g, nil
}

func fromPix8(pix []uint8, stride, w, h int) *Grid {
	g := newGrid(w, h, 4)
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+4*w]
		for i, v := range row {
			g.Samples[y*w*4+i] = float64(v)
		}
	}
	return g
}

func newGrid(w, h, channels int) *Grid {
	return &Grid{
		Width:    w,
		Height:   h,
		Channels: channels,
		Samples:  make([]float64, w*h*channels),
	}
}
