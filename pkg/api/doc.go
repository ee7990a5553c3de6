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

// Package api runs the tester web UI as a long running service.
//
// It configures structured logging, reads its settings from the environment
// and hands over to pkg/webui, which in turn uses pkg/server for the HTTP
// lifecycle.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /               - tester page
//   - POST /click/{id}    - button click
//   - POST /keypress/{id} - key press in an input field
//   - GET /region         - output region fragment
//   - GET /v1/state       - controller state as JSON
//
// System endpoints:
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
//   - PORT: HTTP server port (default: 8080)
//   - ADDRESS: bind address (default: all interfaces)
//   - PIZZA_API_URL: pizza API base URL
//   - PIZZA_TIMEOUT: per request timeout
//   - PIZZA_MIN_DELAY: minimum loading delay, "800ms" or "800" (default: 800ms)
//   - PIZZA_ACTION_TIMEOUT: timeout of a whole UI action
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown timeout
//   - LOG_LEVEL: debug, info, warn, error
//
// A .env file in the working directory is loaded first when present.
package api
