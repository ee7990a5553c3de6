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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/webui"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tester web UI",
		Description: `Start the web UI. It exposes the page on / plus /health, /ready and /metrics,
and stops gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
				Value:   8080,
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to bind (default: all interfaces)",
			},
			&cli.StringFlag{
				Name:    "min-delay",
				Usage:   "Minimum time the loading state stays visible, Go duration or milliseconds (0 disables it)",
				Sources: cli.EnvVars("PIZZA_MIN_DELAY"),
				Value:   defaults.MinLoadingDelay.String(),
			},
			&cli.StringFlag{
				Name:    "action-timeout",
				Usage:   "Timeout of a whole UI action, Go duration or milliseconds",
				Sources: cli.EnvVars("PIZZA_ACTION_TIMEOUT"),
				Value:   defaults.ActionTimeout.String(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := serveOptions(cmd)
			if err != nil {
				return err
			}
			return webui.Serve(ctx, opts)
		},
	}
}

func serveOptions(cmd *cli.Command) (webui.Options, error) {
	port := cmd.Int("port")
	if port < 1 || port > 65535 {
		return webui.Options{}, fmt.Errorf("invalid port: %d", port)
	}
	minDelay, err := durationFlag(cmd, "min-delay")
	if err != nil {
		return webui.Options{}, err
	}
	timeout, err := durationFlag(cmd, "timeout")
	if err != nil {
		return webui.Options{}, err
	}
	actionTimeout, err := durationFlag(cmd, "action-timeout")
	if err != nil {
		return webui.Options{}, err
	}
	return webui.Options{
		Name:          name,
		Version:       version,
		Address:       cmd.String("address"),
		Port:          port,
		BaseURL:       cmd.String("base-url"),
		Timeout:       timeout,
		MinDelay:      minDelay,
		ActionTimeout: actionTimeout,
	}, nil
}
