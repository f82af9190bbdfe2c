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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, ErrCodeInvalidRequest,
		"bad input", false, map[string]interface{}{"field": "file"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Code != ErrCodeInvalidRequest {
		t.Errorf("unexpected code: %s", resp.Code)
	}
	if resp.Message != "bad input" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Errorf("expected request ID from context, got %s", resp.RequestID)
	}
	if resp.Retryable {
		t.Error("expected a non-retryable error")
	}
	if resp.Details["field"] != "file" {
		t.Errorf("unexpected details: %v", resp.Details)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestWriteErrorGeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusInternalServerError, ErrCodeInternalError,
		"boom", true, nil)

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if _, err := uuid.Parse(resp.RequestID); err != nil {
		t.Errorf("expected a generated UUID request ID, got %q", resp.RequestID)
	}
	if !resp.Retryable {
		t.Error("expected a retryable error")
	}
}
