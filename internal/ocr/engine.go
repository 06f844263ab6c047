// Package ocr wraps the Tesseract engine for card-image recognition.
//
// Tesseract must be installed on the host together with the language data
// for every configured script (eng and tam for Tamil-region cards).
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/idkit/aadhaar-extract/internal/imaging"
)

// Engine performs OCR on raster page images. It is safe for concurrent
// use; each recognition run gets its own Tesseract client.
type Engine struct {
	languages string
}

// NewEngine creates an engine recognizing the given "+"-separated Tesseract
// languages, e.g. "eng+tam".
func NewEngine(languages string) *Engine {
	if languages == "" {
		languages = "eng+tam"
	}
	return &Engine{languages: languages}
}

// Recognize binarizes the image and extracts its text. The image is treated
// as a single uniform block of text, which matches card layouts better than
// full page segmentation.
func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pre := imaging.Preprocess(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, pre); err != nil {
		return "", fmt.Errorf("failed to encode preprocessed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages); err != nil {
		return "", fmt.Errorf("failed to set OCR languages %q: %w", e.languages, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}
