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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/logging"
	"github.com/pizzalab/pizza-tester/pkg/pizza"
	"github.com/pizzalab/pizza-tester/pkg/query"
	"github.com/pizzalab/pizza-tester/pkg/serializer"
)

const (
	name           = "pizza"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func queryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "JMESPath expression applied to the response before it is printed",
	}
}

// Execute runs the CLI with the process arguments and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// flag sources are read during parsing, so .env has to be loaded first
	if err := loadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Pizza catalog API tester",
		Description: `Query the pizza catalog API from the terminal or serve the tester web UI.

Catalog commands print the unwrapped response data in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Base URL of the pizza API",
				Sources: cli.EnvVars("PIZZA_API_URL"),
				Value:   defaults.APIBaseURL,
			},
			&cli.StringFlag{
				Name:    "timeout",
				Usage:   "Timeout of a single API request (Go duration or milliseconds)",
				Sources: cli.EnvVars("PIZZA_TIMEOUT"),
				Value:   defaults.HTTPClientTimeout.String(),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			listCmd(),
			getCmd(),
			withPricesCmd(),
			ingredientPricesCmd(),
			searchCmd(),
			priceCmd(),
			computeCmd(),
			serveCmd(),
		},
	}
}

// loadDotEnv reads .env from the working directory. A missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

func newClient(cmd *cli.Command) (*pizza.Client, error) {
	timeout, err := durationFlag(cmd, "timeout")
	if err != nil {
		return nil, err
	}
	return pizza.NewClient(
		pizza.WithBaseURL(cmd.String("base-url")),
		pizza.WithTimeout(timeout),
		pizza.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
	), nil
}

// durationFlag parses a duration flag the same way pizzad parses its
// environment, so bare milliseconds work for both.
func durationFlag(cmd *cli.Command, flag string) (time.Duration, error) {
	d, err := defaults.ParseDuration(cmd.String(flag))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --"+flag, err)
	}
	return d, nil
}

// output holds the validated output settings of a catalog command.
type output struct {
	format serializer.Format
	path   string
	query  string
}

// parseOutput validates format and query before any request is made.
func parseOutput(cmd *cli.Command) (*output, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return nil, err
	}
	expr := cmd.String("query")
	if expr != "" {
		if _, err := query.Compile(expr); err != nil {
			return nil, err
		}
	}
	return &output{format: format, path: cmd.String("output"), query: expr}, nil
}

func (o *output) write(ctx context.Context, v any) error {
	if o.query != "" {
		filtered, err := query.Apply(v, o.query)
		if err != nil {
			return err
		}
		v = filtered
	}

	ser := serializer.NewFileWriterOrStdout(o.format, o.path)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}
