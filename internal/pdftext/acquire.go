// Package pdftext turns raw PDF bytes into a single text blob.
//
// Native text-layer extraction is tried first for every page; image-only
// pages are rasterized and routed through OCR. Acquisition fails fast and
// whole: a single page failure aborts the document, and no partial text is
// ever returned.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// Recognizer extracts text from a raster page image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Acquirer extracts the combined text of a PDF document.
type Acquirer struct {
	raster     Rasterizer
	recognizer Recognizer
	logger     *logrus.Logger
}

// NewAcquirer wires a rasterizer and an OCR recognizer into an acquirer.
func NewAcquirer(raster Rasterizer, recognizer Recognizer, logger *logrus.Logger) *Acquirer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Acquirer{
		raster:     raster,
		recognizer: recognizer,
		logger:     logger,
	}
}

// ExtractText returns the newline-joined text of all pages, in page order.
// The input bytes are never mutated; repeated calls with the same input
// yield the same text.
func (a *Acquirer) ExtractText(ctx context.Context, data []byte, password string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyInput
	}

	working, err := a.prepare(data, password)
	if err != nil {
		return "", err
	}

	tmpPath, cleanup, err := writeTempPDF(working)
	if err != nil {
		return "", &AcquisitionError{Err: err}
	}
	defer cleanup()

	f, reader, err := pdf.Open(tmpPath)
	if err != nil {
		return "", &FormatError{Err: err}
	}
	defer f.Close()

	pageTexts := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", &AcquisitionError{Err: err}
		}

		text := nativePageText(reader, pageNum)
		if strings.TrimSpace(text) == "" {
			a.logger.WithField("page", pageNum).Debug("no text layer, falling back to OCR")
			text, err = a.recognizePage(ctx, tmpPath, pageNum)
			if err != nil {
				return "", &PageError{Page: pageNum, Err: err}
			}
		}
		pageTexts = append(pageTexts, text)
	}

	combined := strings.Join(pageTexts, "\n")
	if strings.TrimSpace(combined) == "" {
		return "", ErrNoTextFound
	}
	return combined, nil
}

// prepare validates the container and resolves encryption, returning the
// bytes of a readable, unencrypted document.
func (a *Acquirer) prepare(data []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil && !isPasswordError(err) {
		return nil, &FormatError{Err: err}
	}

	encrypted := err != nil || pdfCtx.Encrypt != nil
	if !encrypted {
		if password != "" {
			return nil, ErrPasswordNotNeeded
		}
		if err := pdfCtx.EnsurePageCount(); err != nil {
			return nil, &FormatError{Err: err}
		}
		return data, nil
	}

	if password == "" {
		return nil, ErrPasswordRequired
	}
	return a.decrypt(data, password)
}

// decrypt writes a decrypted copy of the document authenticated with the
// given password.
func (a *Acquirer) decrypt(data []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = password
	conf.OwnerPW = password

	var buf bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &buf, conf); err != nil {
		if isPasswordError(err) {
			return nil, ErrInvalidPassword
		}
		return nil, &FormatError{Err: err}
	}
	a.logger.Debug("decrypted PDF for extraction")
	return buf.Bytes(), nil
}

// recognizePage rasterizes one page and runs it through OCR.
func (a *Acquirer) recognizePage(ctx context.Context, pdfPath string, pageNum int) (string, error) {
	img, err := a.raster.RenderPage(ctx, pdfPath, pageNum)
	if err != nil {
		return "", err
	}
	return a.recognizer.Recognize(ctx, img)
}

// nativePageText extracts the embedded text layer of one page. The reader
// panics on some malformed content streams; any failure means the page is
// treated as image-only.
func nativePageText(reader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

// writeTempPDF persists working bytes for the file-based PDF readers and
// the rasterizer. The returned cleanup removes the file.
func writeTempPDF(data []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "aadhaar-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp PDF: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to write temp PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to close temp PDF: %w", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// isPasswordError reports whether err is an authentication failure.
func isPasswordError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return true
	}
	// Older pdfcpu releases surface authentication failures only through
	// the error text.
	return strings.Contains(strings.ToLower(err.Error()), "password")
}
