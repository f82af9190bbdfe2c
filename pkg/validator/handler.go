// Copyright (c) 2025, SeismicData.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"

	"github.com/seismicdata/asdf-validate/pkg/defaults"
	apperrors "github.com/seismicdata/asdf-validate/pkg/errors"
	"github.com/seismicdata/asdf-validate/pkg/schema"
	"github.com/seismicdata/asdf-validate/pkg/serializer"
	"github.com/seismicdata/asdf-validate/pkg/server"
)

// uploadField is the multipart form field carrying the candidate file.
const uploadField = "file"

// Handler exposes the validation pipeline over HTTP. Uploads are spooled
// to a temporary file so the introspector sees a regular on-disk container,
// exactly as it would from the CLI.
type Handler struct {
	v         *Validator
	maxUpload int64
}

// NewHandler creates an HTTP handler around the given validator.
func NewHandler(v *Validator) *Handler {
	return &Handler{
		v:         v,
		maxUpload: defaults.MaxUploadBytes,
	}
}

// handlerError is the JSON body returned when no verdict could be produced.
type handlerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleValidations processes POST /v1/validations requests. The candidate
// container arrives either as a multipart upload (field "file") or as the
// raw request body; the full report is returned for valid and invalid
// files alike, since violations are findings rather than request failures.
func (h *Handler) HandleValidations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidationHandlerTimeout)
	defer cancel()

	path, cleanup, err := h.spool(w, r)
	if err != nil {
		slog.Error("failed to spool upload",
			"requestID", server.RequestIDFrom(r.Context()),
			"error", err)
		http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
		return
	}
	defer cleanup()

	rep, err := h.v.Validate(ctx, path)
	if err != nil {
		code := apperrors.CodeOf(err)
		slog.Error("validation produced no verdict",
			"requestID", server.RequestIDFrom(r.Context()),
			"code", code,
			"error", err)
		serializer.RespondJSON(w, statusFor(code), handlerError{
			Code:    string(code),
			Message: err.Error(),
		})
		return
	}

	// The upload path is a server-side spool file; report the name the
	// client supplied instead.
	if name := uploadName(r); name != "" {
		rep.File = name
	}

	serializer.RespondJSON(w, http.StatusOK, rep)
}

// HandleVersions processes GET /v1/versions requests, listing the format
// versions a schema document is registered for.
func (h *Handler) HandleVersions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := struct {
		Versions []string `json:"versions"`
	}{
		Versions: schema.Versions(),
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// spool writes the uploaded container to a temporary file and returns its
// path with a cleanup function. The request body is capped at the upload
// limit before any bytes are read.
func (h *Handler) spool(w http.ResponseWriter, r *http.Request) (string, func(), error) {
	src, err := h.uploadReader(w, r)
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "asdf-upload-*.h5")
	if err != nil {
		return "", nil, fmt.Errorf("creating spool file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil {
			slog.Warn("failed to remove spool file", "file", tmp.Name(), "error", err)
		}
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("spooling upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing spool file: %w", err)
	}
	return tmp.Name(), cleanup, nil
}

// uploadReader selects the candidate byte stream: the named multipart part
// when the client sent a form, the raw body otherwise.
func (h *Handler) uploadReader(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	f, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("multipart field %q: %w", uploadField, err)
	}
	return f, nil
}

// uploadName returns the client-side file name of a multipart upload,
// or "" when the body was raw.
func uploadName(r *http.Request) string {
	if r.MultipartForm == nil {
		return ""
	}
	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		return ""
	}
	return headers[0].Filename
}

// statusFor maps a precheck or pipeline error code to the HTTP status of
// the validation endpoint. Defects in the uploaded file are unprocessable
// content; everything else is on the server.
func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotContainer,
		apperrors.ErrCodeMissingFormat,
		apperrors.ErrCodeMissingVersion,
		apperrors.ErrCodeUnsupportedVersion:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
