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

package server

import (
	"net/http"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/serializer"
)

// Probe states.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// HealthResponse is the body of the health and readiness probes.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (s *Server) probe(status string) HealthResponse {
	now := time.Now()
	return HealthResponse{
		Status:    status,
		Name:      s.config.Name,
		Version:   s.config.Version,
		Uptime:    now.Sub(s.created).Truncate(time.Second).String(),
		Timestamp: now.UTC(),
	}
}

// handleHealth reports liveness: the process answers.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, s.probe(StatusHealthy))
}

// handleReady reports readiness: the listener is up and shutdown has not
// started.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.isReady() {
		resp := s.probe(StatusNotReady)
		resp.Reason = "server is not accepting requests"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.probe(StatusReady))
}
