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

// Package cli implements the pizza command-line tool.
//
// # Commands
//
//	pizza list                      all pizzas
//	pizza get <id>                  one pizza
//	pizza with-prices               all pizzas with prices
//	pizza ingredient-prices         unit price per ingredient
//	pizza search <🍅,🧀>            pizzas containing the ingredients
//	pizza price <id>                price of one pizza
//	pizza compute <🍅,🧀,🍄>        price of a custom pizza
//	pizza serve                     tester web UI
//
// Catalog commands print the unwrapped response data. Missing or blank
// arguments fail with an input required error before any request is sent.
//
// # Flags
//
//	--base-url      API base URL (env PIZZA_API_URL)
//	--timeout       per request timeout (env PIZZA_TIMEOUT)
//	--log-level     debug, info, warn, error (env LOG_LEVEL)
//	--output, -o    output file path (default: stdout)
//	--format, -t    json, yaml, table (default: json)
//	--query, -q     JMESPath expression applied to the result
//
// serve adds --port (env PORT), --address, --min-delay (env PIZZA_MIN_DELAY)
// and --action-timeout.
//
// A .env file in the working directory is loaded before flags are parsed.
//
// # Exit Codes
//
//	0  Success
//	1  General error
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/pizzalab/pizza-tester/pkg/cli.version=1.0.0'"
package cli
