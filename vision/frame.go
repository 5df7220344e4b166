package vision

import (
	"image"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"taxifit/models"
)

// Frame is a decoded photo as a packed RGB byte buffer, the representation
// the dirt heuristics operate on. Width and height are the original image
// dimensions, not the resized tensor dimensions.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel, row-major
}

// Load decodes the image at path into a Frame.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.ImageDecodeError{Source: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &models.ImageDecodeError{Source: path, Err: err}
	}
	return FromImage(img), nil
}

// Decode reads one JPEG or PNG image from r.
func Decode(r io.Reader) (*Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &models.ImageDecodeError{Err: err}
	}
	return FromImage(img), nil
}

// FromImage flattens any image.Image into an RGB Frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	frame := &Frame{Width: w, Height: h, Pix: make([]uint8, w*h*3)}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			frame.Pix[i] = uint8(r >> 8)
			frame.Pix[i+1] = uint8(g >> 8)
			frame.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return frame
}

// RGB returns the pixel at (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Pixels returns the total pixel count.
func (f *Frame) Pixels() int {
	return f.Width * f.Height
}

// Grayscale converts the frame to 8-bit luminance using the ITU-R 601 weights.
func (f *Frame) Grayscale() []uint8 {
	gray := make([]uint8, f.Pixels())
	for i := range gray {
		p := i * 3
		l := (299*int(f.Pix[p]) + 587*int(f.Pix[p+1]) + 114*int(f.Pix[p+2]) + 500) / 1000
		gray[i] = uint8(l)
	}
	return gray
}

// SaturationChannel returns the 8-bit HSV saturation channel.
func (f *Frame) SaturationChannel() []uint8 {
	sat := make([]uint8, f.Pixels())
	for i := range sat {
		p := i * 3
		maxC := max8(f.Pix[p], f.Pix[p+1], f.Pix[p+2])
		minC := min8(f.Pix[p], f.Pix[p+1], f.Pix[p+2])
		if maxC == 0 {
			continue
		}
		sat[i] = uint8(int(maxC-minC) * 255 / int(maxC))
	}
	return sat
}

func max8(a, b, c uint8) uint8 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min8(a, b, c uint8) uint8 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
