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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "HTTP error! status: 404")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "HTTP error! status: 404" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeUnavailable, "request failed", cause)

	if err.Code != ErrCodeUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeUnavailable, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("deadline exceeded")
	ctx := map[string]any{
		"endpoint": "pizzas",
		"status":   504,
	}

	err := WrapWithContext(ErrCodeTimeout, "fetch failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["endpoint"] != "pizzas" {
		t.Errorf("expected endpoint to be pizzas")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "HTTP error! status: 404"),
			expected: "[NOT_FOUND] HTTP error! status: 404",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrCodeUnknown},
		{"plain error", errors.New("boom"), ErrCodeUnknown},
		{"structured", New(ErrCodeNotFound, "missing"), ErrCodeNotFound},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeTimeout, "slow")), ErrCodeTimeout},
		{"outermost wins", Wrap(ErrCodeUnavailable, "outer", New(ErrCodeInternal, "inner")), ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("get pizza: %w", NewWithContext(ErrCodeNotFound, "HTTP error! status: 404",
		map[string]any{"status": 404}))

	if !errors.Is(err, New(ErrCodeNotFound, "")) {
		t.Error("expected match on code")
	}
	if !errors.Is(err, New(ErrCodeNotFound, "HTTP error! status: 404")) {
		t.Error("expected match on code and message")
	}
	if errors.Is(err, New(ErrCodeNotFound, "HTTP error! status: 410")) {
		t.Error("expected no match on a different message")
	}
	if errors.Is(err, New(ErrCodeTimeout, "")) {
		t.Error("expected no match on a different code")
	}
}

func TestSummary(t *testing.T) {
	if got := New(ErrCodeUnavailable, "HTTP error! status: 503").Summary(); got != "HTTP error! status: 503" {
		t.Errorf("Summary() = %q", got)
	}
	got := Wrap(ErrCodeTimeout, "request to pizzas failed", errors.New("context deadline exceeded")).Summary()
	if got != "request to pizzas failed: context deadline exceeded" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeUnavailable, true},
		{ErrCodeRateLimitExceeded, true},
		{ErrCodeInternal, true},
		{ErrCodeNotFound, false},
		{ErrCodeInvalidRequest, false},
		{ErrCodeMethodNotAllowed, false},
		{ErrCodeUnknown, false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.code); got != tt.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
