// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

// RespondJSON encodes data and writes it with the given status code.
// Encoding failures produce a plain 500 and nothing of data is sent.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err, "type", typeName(data))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respond(w, statusCode, contentTypeJSON, buf.Bytes())
}

// RespondHTML writes an already rendered HTML body. HTML responses are
// never cached since they reflect the current UI state.
func RespondHTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Cache-Control", "no-store")
	respond(w, statusCode, contentTypeHTML, body)
}

func respond(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "error", err, "status", statusCode)
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
