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

package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/logging"
	"github.com/pizzalab/pizza-tester/pkg/webui"
)

const (
	name           = "pizzad"
	versionDefault = "dev"
)

// Environment variables read by Serve. PORT and SHUTDOWN_TIMEOUT_SECONDS are
// read by the server config.
const (
	EnvAPIURL        = "PIZZA_API_URL"
	EnvTimeout       = "PIZZA_TIMEOUT"
	EnvMinDelay      = "PIZZA_MIN_DELAY"
	EnvActionTimeout = "PIZZA_ACTION_TIMEOUT"
	EnvAddress       = "ADDRESS"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/pizzalab/pizza-tester/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the web UI server and blocks until shutdown.
// Returns an error if the configuration is invalid or the server fails.
func Serve() error {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	opts, err := optionsFromEnv(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	if err := webui.Serve(ctx, opts); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func optionsFromEnv(getenv func(string) string) (webui.Options, error) {
	opts := webui.Options{
		Name:     name,
		Version:  version,
		Address:  getenv(EnvAddress),
		BaseURL:  getenv(EnvAPIURL),
		MinDelay: defaults.MinLoadingDelay,
	}

	var err error
	if opts.Timeout, err = durationFromEnv(getenv, EnvTimeout, 0); err != nil {
		return opts, err
	}
	if opts.MinDelay, err = durationFromEnv(getenv, EnvMinDelay, defaults.MinLoadingDelay); err != nil {
		return opts, err
	}
	if opts.ActionTimeout, err = durationFromEnv(getenv, EnvActionTimeout, defaults.ActionTimeout); err != nil {
		return opts, err
	}
	return opts, nil
}

// durationFromEnv reads key with defaults.ParseDuration, falling back to def when unset.
func durationFromEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := defaults.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
