package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Rasterizer renders one page of a PDF file to a raster image.
type Rasterizer interface {
	RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error)
}

// PopplerRasterizer renders pages with poppler's pdftoppm. The binary
// location comes from configuration and is resolved once at construction,
// so a missing tool fails at startup instead of on the first scanned page.
type PopplerRasterizer struct {
	binPath string
	dpi     int
}

// NewPopplerRasterizer resolves binPath (a name looked up on PATH or an
// absolute path) and returns a rasterizer rendering at the given DPI.
func NewPopplerRasterizer(binPath string, dpi int) (*PopplerRasterizer, error) {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm not available at %q: %w", binPath, err)
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &PopplerRasterizer{binPath: resolved, dpi: dpi}, nil
}

// RenderPage renders a single 1-based page to a PNG image. All temporary
// render output lives in a per-call directory removed on every exit path.
func (r *PopplerRasterizer) RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "aadhaar-raster-")
	if err != nil {
		return nil, fmt.Errorf("failed to create raster dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageArg := strconv.Itoa(page)

	cmd := exec.CommandContext(ctx, r.binPath,
		"-png",
		"-r", strconv.Itoa(r.dpi),
		"-f", pageArg,
		"-l", pageArg,
		pdfPath, prefix)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	// pdftoppm pads the page number in the output name depending on the
	// document's page count, so glob instead of reconstructing it.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	sort.Strings(matches)

	f, err := os.Open(matches[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered page: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}
	return img, nil
}
