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

// Package server provides the HTTP server used by the pizza tester web UI.
//
// # Architecture
//
// Every handler registered through WithHandler is wrapped in the same
// middleware chain:
//
//   - Prometheus request metrics (pizza_http_*)
//   - API version negotiation through the Accept header
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Debug request logging through log/slog
//
// The probes and the metrics endpoint bypass the chain.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("pizzad"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /{$}": page,
//	        "POST /click/{element}": click,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT or SIGTERM and then drains in-flight requests for
// up to Config.ShutdownTimeout.
//
// # System Endpoints
//
// GET /health - liveness, always 200 with status, name, version and uptime
//
// GET /ready - readiness, 200 while serving and 503 before Start or after
// Shutdown
//
// GET /metrics - Prometheus exposition
//
// GET / - name, version and registered routes, unless the caller registers
// its own root handler
//
// # Errors
//
// Errors are returned as ErrorResponse JSON with a request ID. Status codes
// come from the pkg/errors code via HTTPStatusFromCode.
//
// # Environment
//
//   - PORT: listen port (default 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown timeout (default 30)
package server
