package pdftext

import (
	"errors"
	"fmt"
)

// Acquisition failures are user-facing: callers are expected to retry with
// a correct password or a valid file, so each carries a readable reason.
var (
	// ErrEmptyInput is returned for a zero-length PDF stream.
	ErrEmptyInput = errors.New("empty PDF stream provided")

	// ErrPasswordRequired is returned when the document is encrypted and
	// no password was supplied.
	ErrPasswordRequired = errors.New("password required for encrypted PDF")

	// ErrInvalidPassword is returned when the supplied password does not
	// authenticate against the document.
	ErrInvalidPassword = errors.New("invalid password provided for PDF")

	// ErrPasswordNotNeeded is returned when a password was supplied for an
	// unencrypted document. The mismatch is reported rather than ignored
	// so callers cannot blindly send a placeholder password.
	ErrPasswordNotNeeded = errors.New("PDF is not encrypted, password not required")

	// ErrNoTextFound is returned when neither the text layer nor OCR
	// yielded any text for the whole document.
	ErrNoTextFound = errors.New("no text could be extracted from the PDF")
)

// FormatError wraps the underlying parse error for a malformed PDF container.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid PDF format: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// PageError reports a failure to extract text from a single page. Page
// numbers are 1-based. Any page failure fails the whole acquisition; no
// partial document text is returned.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("error extracting text from page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// AcquisitionError wraps an unanticipated failure during text acquisition.
type AcquisitionError struct {
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("failed to process PDF: %v", e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// IsUserError reports whether err is one of the acquisition failures whose
// message is safe and useful to show to the caller. Page-level failures are
// excluded: they carry output from external tools and are not actionable by
// the caller.
func IsUserError(err error) bool {
	if errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrPasswordNotNeeded) ||
		errors.Is(err, ErrNoTextFound) {
		return true
	}
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}
