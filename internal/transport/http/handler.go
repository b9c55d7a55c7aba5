// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package http provides the HTTP transport layer for the QR card service.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-card-generator/internal/card"
)

// multipartMemory is the part of a multipart body kept in memory before
// net/http spills file parts to disk.
const multipartMemory = 1 << 20

type Handler struct {
	svc         card.Service
	logger      *zap.Logger
	maxBodySize int64
	tempDir     string
}

// NewHandler creates a new HTTP handler for QR card generation.
// Uploaded logos are spooled to tempDir, or os.TempDir() when empty.
func NewHandler(svc card.Service, logger *zap.Logger, maxBodySize int64, tempDir string) *Handler {
	return &Handler{
		svc:         svc,
		logger:      logger,
		maxBodySize: maxBodySize,
		tempDir:     tempDir,
	}
}

// Generate handles POST /generate_qr/ with form fields url, text, an optional
// logo file and an optional radius_ratio. It responds with the card as PNG.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With(zap.String("request_id", RequestID(r.Context())))

	// Fast fail for obvious oversized requests
	if r.ContentLength > h.maxBodySize {
		log.Warn("Request body too large (ContentLength check)",
			zap.Int64("content_length", r.ContentLength),
			zap.Int64("max_allowed", h.maxBodySize),
		)
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("Request body hit size limit", zap.Int64("max_allowed", h.maxBodySize))
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		log.Warn("Failed to parse form", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	req, err := h.parseRequest(r)
	if err != nil {
		log.Warn("Invalid generate request", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logo, cleanup := h.readLogo(r, log)
	defer cleanup()
	req.Logo = logo

	log.Debug("Calling QR card service",
		zap.Int("url_length", len(req.URL)),
		zap.Int("caption_length", len(req.Caption)),
		zap.Int("logo_bytes", len(req.Logo)),
		zap.Float64("radius_ratio", req.RadiusRatio),
	)

	png, err := h.svc.Generate(req)
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("Failed to generate QR card", zap.Error(err))
		} else {
			log.Warn("QR card request rejected", zap.Error(err))
		}
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Error("Failed to write response", zap.Error(err), zap.Int("png_size", len(png)))
		return
	}

	log.Info("QR card request completed successfully",
		zap.Int("url_length", len(req.URL)),
		zap.Bool("logo", len(req.Logo) > 0),
		zap.Int("output_size", len(png)),
	)
}

// HealthCheck handles GET /health requests for liveness/readiness probes.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) parseRequest(r *http.Request) (card.Request, error) {
	url := r.FormValue("url")
	if url == "" {
		return card.Request{}, errors.New("url is required")
	}
	if _, ok := r.Form["text"]; !ok {
		return card.Request{}, errors.New("text is required")
	}

	req := card.Request{URL: url, Caption: r.FormValue("text")}
	if s := strings.TrimSpace(r.FormValue("radius_ratio")); s != "" {
		ratio, err := strconv.ParseFloat(s, 64)
		if err != nil || ratio <= 0 || ratio > 1 {
			return card.Request{}, fmt.Errorf("radius_ratio must be a number in (0, 1], got %q", s)
		}
		req.RadiusRatio = ratio
	}
	return req, nil
}

// readLogo returns the uploaded logo bytes, or nil when there is none or it
// cannot be stored. The returned cleanup always removes the temporary file.
func (h *Handler) readLogo(r *http.Request, log *zap.Logger) ([]byte, func()) {
	noop := func() {}

	file, header, err := r.FormFile("logo")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			log.Warn("Logo upload unreadable, continuing without logo", zap.Error(err))
		}
		return nil, noop
	}
	defer file.Close()

	path, cleanup, err := spoolLogo(file, h.tempDir)
	if err != nil {
		log.Warn("Logo upload could not be stored, continuing without logo", zap.Error(err))
		return nil, noop
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Logo temp file unreadable, continuing without logo", zap.Error(err))
		return nil, cleanup
	}

	log.Debug("Logo upload stored",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)
	return data, cleanup
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, card.ErrEmptyURL):
		return http.StatusBadRequest, "url is required"
	case errors.Is(err, card.ErrInvalidRadius):
		return http.StatusBadRequest, "radius_ratio must be in (0, 1]"
	case errors.Is(err, card.ErrEncoding):
		return http.StatusUnprocessableEntity, "url is too long to encode as a QR code"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
