// Package imaging normalizes raster card images before OCR.
//
// Scanned identity cards carry uneven illumination and security patterns in
// the background, so a Gaussian-weighted local threshold is used instead of a
// global one. The pipeline is fixed: grayscale, adaptive binarization,
// median denoise, minimal dilation.
package imaging

import (
	"image"
	"image/draw"
	"math"
)

const (
	// Adaptive threshold parameters tuned for card scans.
	thresholdBlock  = 11
	thresholdOffset = 2

	medianWindow = 3
	dilateWindow = 1
)

// Preprocess converts an image into a binarized grayscale raster suitable
// for character recognition. It always succeeds on a valid raster input.
func Preprocess(src image.Image) *image.Gray {
	g := Grayscale(src)
	g = AdaptiveThreshold(g, thresholdBlock, thresholdOffset)
	g = Median(g, medianWindow)
	g = Dilate(g, dilateWindow, 1)
	return g
}

// Grayscale converts any image to a single-channel grayscale raster.
func Grayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, src, b.Min, draw.Src)
	return g
}

// AdaptiveThreshold binarizes g against a Gaussian-weighted local mean over
// a block×block neighborhood: pixels brighter than the local mean minus
// offset become white, the rest black.
func AdaptiveThreshold(g *image.Gray, block int, offset float64) *image.Gray {
	mean := gaussianBlur(g, block)

	b := g.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(g.GrayAt(x, y).Y)
			if v > mean.at(x-b.Min.X, y-b.Min.Y)-offset {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}

// Median applies a size×size median filter, which removes scan speckle
// without smearing character edges the way a mean filter would.
func Median(g *image.Gray, size int) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	r := size / 2
	window := make([]uint8, 0, size*size)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			window = window[:0]
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					window = append(window, g.GrayAt(clamp(x+dx, b.Min.X, b.Max.X-1), clamp(y+dy, b.Min.Y, b.Max.Y-1)).Y)
				}
			}
			out.Pix[out.PixOffset(x, y)] = median(window)
		}
	}
	return out
}

// Dilate applies iterations of a max filter with a size×size structuring
// element. A 1×1 element leaves isolated pixels alone while preserving the
// tuned pipeline shape.
func Dilate(g *image.Gray, size, iterations int) *image.Gray {
	b := g.Bounds()
	r := size / 2
	cur := g
	for it := 0; it < iterations; it++ {
		out := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				maxV := uint8(0)
				for dy := -r; dy <= r; dy++ {
					for dx := -r; dx <= r; dx++ {
						v := cur.GrayAt(clamp(x+dx, b.Min.X, b.Max.X-1), clamp(y+dy, b.Min.Y, b.Max.Y-1)).Y
						if v > maxV {
							maxV = v
						}
					}
				}
				out.Pix[out.PixOffset(x, y)] = maxV
			}
		}
		cur = out
	}
	return cur
}

// gaussianBlur computes a separable Gaussian blur with a kernel of the
// given size, replicating edge pixels at the borders.
func gaussianBlur(g *image.Gray, size int) *grayF64 {
	kernel := gaussianKernel(size)
	r := size / 2
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()

	// Horizontal pass.
	tmp := newGrayF64(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -r; k <= r; k++ {
				sum += kernel[k+r] * float64(g.GrayAt(b.Min.X+clamp(x+k, 0, w-1), b.Min.Y+y).Y)
			}
			tmp.set(x, y, sum)
		}
	}

	// Vertical pass.
	out := newGrayF64(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -r; k <= r; k++ {
				sum += kernel[k+r] * tmp.at(x, clamp(y+k, 0, h-1))
			}
			out.set(x, y, sum)
		}
	}
	return out
}

// gaussianKernel builds a normalized 1-D Gaussian kernel whose sigma is
// derived from the kernel size the same way OpenCV derives it.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	r := size / 2
	kernel := make([]float64, size)
	var sum float64
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// grayF64 is a float64 plane used for intermediate blur results.
type grayF64 struct {
	bounds image.Rectangle
	pix    []float64
}

func newGrayF64(b image.Rectangle) *grayF64 {
	return &grayF64{bounds: b, pix: make([]float64, b.Dx()*b.Dy())}
}

func (p *grayF64) set(x, y int, v float64) {
	p.pix[y*p.bounds.Dx()+x] = v
}

func (p *grayF64) at(x, y int) float64 {
	return p.pix[y*p.bounds.Dx()+x]
}

func median(window []uint8) uint8 {
	// Insertion sort; windows are tiny.
	for i := 1; i < len(window); i++ {
		for j := i; j > 0 && window[j] < window[j-1]; j-- {
			window[j], window[j-1] = window[j-1], window[j]
		}
	}
	return window[len(window)/2]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
