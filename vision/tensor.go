package vision

import (
	"image"

	"golang.org/x/image/draw"
)

// Tensor side length and normalization constants expected by the damage
// oracle: 224x224 input with ImageNet channel statistics.
const TensorSize = 224

var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Tensor is a normalized CHW float32 image ready for the oracle boundary.
type Tensor struct {
	Data []float32 // 3 * TensorSize * TensorSize, channel-major
}

// At returns the normalized value for channel c at (x, y).
func (t *Tensor) At(c, x, y int) float32 {
	return t.Data[c*TensorSize*TensorSize+y*TensorSize+x]
}

// Preprocess resizes the frame to TensorSize x TensorSize with CatmullRom
// resampling and applies ImageNet mean/std normalization per channel.
func Preprocess(f *Frame) *Tensor {
	src := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * 3
			o := src.PixOffset(x, y)
			src.Pix[o] = f.Pix[i]
			src.Pix[o+1] = f.Pix[i+1]
			src.Pix[o+2] = f.Pix[i+2]
			src.Pix[o+3] = 0xff
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, TensorSize, TensorSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	plane := TensorSize * TensorSize
	t := &Tensor{Data: make([]float32, 3*plane)}
	for y := 0; y < TensorSize; y++ {
		for x := 0; x < TensorSize; x++ {
			o := dst.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := float32(dst.Pix[o+c]) / 255
				t.Data[c*plane+y*TensorSize+x] = (v - imagenetMean[c]) / imagenetStd[c]
			}
		}
	}
	return t
}
