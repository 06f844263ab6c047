package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idkit/aadhaar-extract/internal/aadhaar"
	"github.com/idkit/aadhaar-extract/internal/pdftext"
)

const invalidNumberWarning = "Invalid Aadhaar number detected"

// extractResponse is the success payload for /extract.
type extractResponse struct {
	Warning string          `json:"warning,omitempty"`
	Data    *aadhaar.Record `json:"data"`
}

// errorResponse is the payload for all failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.config.ServiceName,
		"version": s.config.Version,
	})
}

// handleExtract accepts a multipart PDF upload and returns the parsed record.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)

	if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing form field 'file'")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	password := r.FormValue("password")
	if strings.TrimSpace(password) == "" {
		writeError(w, http.StatusBadRequest, "password must not be empty")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	digest := sha256.Sum256(data)
	requestLog := s.logger.WithFields(logrus.Fields{
		"filename": header.Filename,
		"size":     len(data),
		"sha256":   hex.EncodeToString(digest[:]),
	})
	requestLog.Info("processing document")

	text, err := s.extractor.ExtractText(r.Context(), data, password)
	if err != nil {
		if pdftext.IsUserError(err) {
			requestLog.WithError(err).Warn("document rejected")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		requestLog.WithError(err).Error("text acquisition failed")
		writeError(w, http.StatusInternalServerError, "internal error while processing document")
		return
	}

	record := aadhaar.Parse(text)

	resp := extractResponse{Data: &record}
	if record.AadhaarNumber != "" && !aadhaar.IsValidNumber(record.AadhaarNumber) {
		resp.Warning = invalidNumberWarning
	}

	requestLog.WithField("has_number", record.AadhaarNumber != "").Info("document processed")
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
